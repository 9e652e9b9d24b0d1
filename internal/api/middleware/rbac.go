package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/holidaydesk/vacation-system/internal/core/domain"
)

// RequireAction enforces role-based access control at the transport edge
// using the same permission table the use cases consult. The service layer
// re-checks, so this is a fast 403 before any body parsing, not the source
// of truth.
func RequireAction(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if !domain.CanPerform(role, action) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
