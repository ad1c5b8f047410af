package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasko-app/tasko-api/internal/core/domain"
)

// currentUser extracts the user injected by the session middleware. Handlers
// behind RequireAuth can rely on it being present; the check guards against
// routes wired without the middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get("user").(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

// sessionToken returns the raw token of the current session, or "".
func sessionToken(c echo.Context) string {
	token, _ := c.Get("session_token").(string)
	return token
}
