package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RequireRole returns middleware that checks if the signed-in user holds at
// least one of the given role names. ADMIN passes every check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, user := FromContext(c.Request().Context())
			if !sess.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "Please login first")
			}
			if user.HasRole("ADMIN") {
				return next(c)
			}
			for _, required := range roles {
				if user.HasRole(required) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
