package handlers

import (
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/ndemidov/inkwell/internal/middleware"
	"github.com/ndemidov/inkwell/internal/models"
	"github.com/ndemidov/inkwell/internal/repositories"
	"github.com/ndemidov/inkwell/validators"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles signup, login and logout
type AuthHandler struct {
	userRepository repositories.UserRepository
	sessions       *scs.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, sessions *scs.SessionManager) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		sessions:       sessions,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/signup/", h.SignupForm)
	g.POST("/signup/", h.Signup)
	g.GET("/login/", h.LoginForm)
	g.POST("/login/", h.Login)
	g.POST("/logout/", h.Logout)
}

// SignupForm returns the field set the signup form expects
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"fields": []string{"username", "first_name", "last_name", "email", "password"},
		},
	})
}

// Signup registers a local account and starts a session for it
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return formErrors(c, validators.FieldErrors(err), req)
	}

	if _, err := h.userRepository.GetUserByUsername(req.Username); err == nil {
		return formErrors(c, map[string]string{"username": "already taken"}, req)
	}
	if _, err := h.userRepository.GetUserByEmail(req.Email); err == nil {
		return formErrors(c, map[string]string{"email": "already registered"}, req)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.startSession(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session")
	}
	return c.Redirect(http.StatusFound, "/")
}

// LoginForm returns the field set the login form expects
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"fields": []string{"username", "password"},
			"next":   c.QueryParam("next"),
		},
	})
}

// Login authenticates a user and redirects to the next parameter's path
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return formErrors(c, validators.FieldErrors(err), req)
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		return formErrors(c, map[string]string{"username": "unknown username or wrong password"}, req)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return formErrors(c, map[string]string{"username": "unknown username or wrong password"}, req)
	}

	if err := h.startSession(c, user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to start session")
	}
	return c.Redirect(http.StatusFound, safeNext(c))
}

// Logout destroys the session
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Destroy(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to end session")
	}
	return c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c echo.Context, user *models.User) error {
	ctx := c.Request().Context()
	if err := h.sessions.RenewToken(ctx); err != nil {
		return err
	}
	h.sessions.Put(ctx, middleware.SessionUserKey, int(user.ID))
	return nil
}

// safeNext returns the post-login destination. Only same-site absolute paths
// are honored; anything else falls back to the index.
func safeNext(c echo.Context) string {
	next := c.QueryParam("next")
	if next == "" {
		next = c.FormValue("next")
	}
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
