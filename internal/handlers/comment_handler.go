package handlers

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/middleware"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/repositories"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
	sessions          *scs.SessionManager
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, sessions *scs.SessionManager) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		sessions:          sessions,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, authed echo.MiddlewareFunc) {
	e.POST("/posts/:id/comment/", h.AddComment, authed)
}

// AddComment creates a comment on a post and redirects to the detail view.
// The comment's author is always the session user. Empty text saves nothing
// and still redirects.
func (h *CommentHandler) AddComment(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c, h.sessions)

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return c.Redirect(http.StatusFound, postDetailPath(post.ID))
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: currentUserID,
		Text:     req.Text,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postDetailPath(post.ID))
}
