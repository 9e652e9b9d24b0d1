package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/holidaydesk/vacation-system/internal/core/ports"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - role must be non-empty (presence proves the middleware ran).
//   - a token without a subject is structurally valid but operationally
//     unusable — reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token missing user identity")
	}

	return ports.Actor{UserID: userID, Role: role}, nil
}
