package middleware

import (
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"
	"github.com/labstack/echo/v4"
)

// SessionUserKey is the session key holding the authenticated user's ID.
const SessionUserKey = "userID"

// LoginPath is where anonymous requests to protected routes are sent.
const LoginPath = "/auth/login/"

// RequireLogin redirects anonymous requests to the login route, carrying the
// original path in the next parameter so login can return the user there.
func RequireLogin(sessions *scs.SessionManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.GetInt(c.Request().Context(), SessionUserKey) == 0 {
				q := url.Values{}
				q.Set("next", c.Request().URL.Path)
				return c.Redirect(http.StatusFound, LoginPath+"?"+q.Encode())
			}
			return next(c)
		}
	}
}

// CurrentUserID returns the authenticated user's ID, or zero for anonymous
// requests.
func CurrentUserID(c echo.Context, sessions *scs.SessionManager) uint {
	return uint(sessions.GetInt(c.Request().Context(), SessionUserKey))
}
