package handlers

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/middleware"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/pagination"
	"github.com/ndemidov/inkwell/internal/repositories"
)

// FollowHandler handles the follow feed and follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	postRepository   repositories.PostRepository
	sessions         *scs.SessionManager
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	postRepo repositories.PostRepository,
	sessions *scs.SessionManager,
) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		postRepository:   postRepo,
		sessions:         sessions,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(e *echo.Echo, authed echo.MiddlewareFunc) {
	e.Match([]string{http.MethodGet, http.MethodPost}, "/follow/", h.FollowIndex, authed)
	e.POST("/profile/:username/follow/", h.FollowAuthor, authed)
	e.POST("/profile/:username/unfollow/", h.UnfollowAuthor, authed)
}

// FollowIndex returns the feed: posts by authors the caller follows,
// newest first. Never cached.
func (h *FollowHandler) FollowIndex(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c, h.sessions)

	authorIDs, err := h.followRepository.GetFollowedAuthorIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page := pagination.ParseNumber(c.QueryParam("page"))
	size := pagination.DefaultPageSize
	posts, err := h.postRepository.ListPostsByAuthors(authorIDs, pagination.Offset(page, size), size)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	total, err := h.postRepository.CountPostsByAuthors(authorIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, postListing(nil, pagination.New(posts, page, size, total)))
}

// FollowAuthor creates a follow edge toward the named author. Following
// yourself or someone you already follow is a silent no-op; either way the
// caller lands back on the profile.
func (h *FollowHandler) FollowAuthor(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c, h.sessions)

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if currentUserID != author.ID {
		following, err := h.followRepository.IsFollowing(currentUserID, author.ID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !following {
			follow := &models.Follow{FollowerID: currentUserID, AuthorID: author.ID}
			if err := h.followRepository.CreateFollow(follow); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
	}

	return c.Redirect(http.StatusFound, profilePath(author.Username))
}

// UnfollowAuthor removes the follow edge toward the named author, if any
func (h *FollowHandler) UnfollowAuthor(c echo.Context) error {
	currentUserID := middleware.CurrentUserID(c, h.sessions)

	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if currentUserID != author.ID {
		if err := h.followRepository.DeleteFollow(currentUserID, author.ID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Redirect(http.StatusFound, profilePath(author.Username))
}
