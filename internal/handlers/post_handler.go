package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/cache"
	"github.com/ndemidov/inkwell/internal/middleware"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/pagination"
	"github.com/ndemidov/inkwell/internal/repositories"
	"github.com/ndemidov/inkwell/validators"
)

// authorization is the result of an explicit access check
type authorization int

const (
	authorizationAllowed authorization = iota
	authorizationDenied
)

// canEditPost allows only the post's author to edit it
func canEditPost(userID uint, post *models.Post) authorization {
	if userID == post.AuthorID {
		return authorizationAllowed
	}
	return authorizationDenied
}

// PostHandler handles post listing, detail and authoring HTTP requests
type PostHandler struct {
	postRepository    repositories.PostRepository
	groupRepository   repositories.GroupRepository
	userRepository    repositories.UserRepository
	commentRepository repositories.CommentRepository
	followRepository  repositories.FollowRepository
	pageCache         *cache.PageCache
	sessions          *scs.SessionManager
	mediaDir          string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	commentRepo repositories.CommentRepository,
	followRepo repositories.FollowRepository,
	pageCache *cache.PageCache,
	sessions *scs.SessionManager,
	mediaDir string,
) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		groupRepository:   groupRepo,
		userRepository:    userRepo,
		commentRepository: commentRepo,
		followRepository:  followRepo,
		pageCache:         pageCache,
		sessions:          sessions,
		mediaDir:          mediaDir,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, authed echo.MiddlewareFunc) {
	e.GET("/", h.Index)
	e.GET("/group/:slug/", h.GroupPosts)
	e.GET("/profile/:username/", h.Profile)
	e.GET("/posts/:id/", h.PostDetail)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/create/", h.CreatePost, authed)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/posts/:id/edit/", h.EditPost, authed)
}

// Index returns the global post listing. This is the only cached listing:
// the rendered body is stored per request URI for the cache's TTL, so reads
// inside the window may be stale.
func (h *PostHandler) Index(c echo.Context) error {
	key := c.Request().RequestURI
	if body, ok := h.pageCache.Get(key); ok {
		return c.JSONBlob(http.StatusOK, body)
	}

	page := pagination.ParseNumber(c.QueryParam("page"))
	size := pagination.DefaultPageSize
	posts, err := h.postRepository.ListPosts(pagination.Offset(page, size), size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	body, err := json.Marshal(postListing(nil, pagination.New(posts, page, size, total)))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.pageCache.Set(key, body)
	return c.JSONBlob(http.StatusOK, body)
}

// GroupPosts returns the posts filed under one group
func (h *PostHandler) GroupPosts(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}

	page := pagination.ParseNumber(c.QueryParam("page"))
	size := pagination.DefaultPageSize
	posts, err := h.postRepository.ListPostsByGroup(group.ID, pagination.Offset(page, size), size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountPostsByGroup(group.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, postListing(echo.Map{"group": group}, pagination.New(posts, page, size, total)))
}

// Profile returns an author's posts plus the caller's follow status
func (h *PostHandler) Profile(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	page := pagination.ParseNumber(c.QueryParam("page"))
	size := pagination.DefaultPageSize
	posts, err := h.postRepository.ListPostsByAuthor(author.ID, pagination.Offset(page, size), size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountPostsByAuthor(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following := false
	if currentUserID := middleware.CurrentUserID(c, h.sessions); currentUserID != 0 && currentUserID != author.ID {
		following, err = h.followRepository.IsFollowing(currentUserID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	followersCount, _ := h.followRepository.GetFollowersCount(author.ID)
	followingCount, _ := h.followRepository.GetFollowingCount(author.ID)

	data := echo.Map{
		"author":          author,
		"full_name":       author.FullName(),
		"following":       following,
		"posts_count":     total,
		"followers_count": followersCount,
		"following_count": followingCount,
	}
	return c.JSON(http.StatusOK, postListing(data, pagination.New(posts, page, size, total)))
}

// PostDetail returns one post with its comments and the author's post count
func (h *PostHandler) PostDetail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	comments, err := h.commentRepository.GetCommentsByPostID(post.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	authorPostCount, err := h.postRepository.CountPostsByAuthor(post.AuthorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"post":              post,
			"comments":          comments,
			"author_post_count": authorPostCount,
		},
	})
}

// CreatePost renders the form data on GET and creates a post on POST,
// redirecting to the author's profile on success
func (h *PostHandler) CreatePost(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c, h.sessions)

	if c.Request().Method == http.MethodGet {
		groups, err := h.groupRepository.ListGroups()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data": echo.Map{
				"fields": []string{"text", "group", "image"},
				"groups": groups,
			},
		})
	}

	var req models.PostFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return formErrors(c, validators.FieldErrors(err), req)
	}

	groupID, ferr := h.resolveGroup(req.Group)
	if ferr != nil {
		return formErrors(c, ferr, req)
	}
	image, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	post := &models.Post{
		Text:     req.Text,
		GroupID:  groupID,
		Image:    image,
		AuthorID: currentUserID,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	author, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, profilePath(author.Username))
}

// EditPost updates a post's text, group and image. Only the author may edit;
// anyone else is sent back to the read-only detail view. CreatedAt never
// changes.
func (h *PostHandler) EditPost(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c, h.sessions)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	if canEditPost(currentUserID, post) == authorizationDenied {
		return c.Redirect(http.StatusFound, postDetailPath(post.ID))
	}

	if c.Request().Method == http.MethodGet {
		groups, err := h.groupRepository.ListGroups()
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"data": echo.Map{
				"post":    post,
				"groups":  groups,
				"is_edit": true,
			},
		})
	}

	var req models.PostFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return formErrors(c, validators.FieldErrors(err), req)
	}

	groupID, ferr := h.resolveGroup(req.Group)
	if ferr != nil {
		return formErrors(c, ferr, req)
	}
	image, err := h.saveImage(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	post.Text = req.Text
	post.GroupID = groupID
	if image != "" {
		post.Image = image
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Redirect(http.StatusFound, postDetailPath(post.ID))
}

// resolveGroup maps the raw form value to a group ID. Empty means no group;
// an unknown group is a field error on the re-rendered form.
func (h *PostHandler) resolveGroup(raw string) (*uint, map[string]string) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, map[string]string{"group": "invalid group"}
	}
	group, err := h.groupRepository.GetGroupByID(uint(id))
	if err != nil {
		return nil, map[string]string{"group": "unknown group"}
	}
	return &group.ID, nil
}

// saveImage stores an optional uploaded image under the media dir with a
// fresh uuid name and returns that name; no upload returns "".
func (h *PostHandler) saveImage(c echo.Context) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.copyUpload(file)
}

func (h *PostHandler) copyUpload(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(h.mediaDir, 0o755); err != nil {
		return "", err
	}
	name := uuid.New().String() + filepath.Ext(file.Filename)
	dst, err := os.Create(filepath.Join(h.mediaDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return name, nil
}
