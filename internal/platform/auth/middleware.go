package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Middleware attaches the caller's Session and User to the request context.
// It never rejects a request: a missing or unreadable token produces a
// signed-out session and the flows decide what that means. The tenant is
// published as "tenant_id" for the rate limiter only when the token's
// signature was checked; unverified claims would let a client pick a fresh
// bucket per request.
func Middleware(signingKey []byte, logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var (
				sess Session
				user User
			)

			if token := bearerToken(c.Request().Header.Get("Authorization")); token != "" {
				s, u, _, err := ParseToken(token, signingKey, time.Now())
				if err != nil {
					logger.Debug().Err(err).Msg("ignoring unreadable access token")
				} else {
					sess, user = s, u
				}
			}

			if len(signingKey) > 0 && user.TenantID != "" {
				c.Set("tenant_id", user.TenantID)
			}
			c.SetRequest(c.Request().WithContext(NewContext(c.Request().Context(), sess, user)))
			return next(c)
		}
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Require returns the caller's session and user, or a 401 when the caller
// is not signed in. Handlers that proxy reads call it first.
func Require(c echo.Context) (Session, User, error) {
	sess, user := FromContext(c.Request().Context())
	if !sess.Authenticated() {
		return Session{}, User{}, echo.NewHTTPError(http.StatusUnauthorized, "Please login first")
	}
	return sess, user, nil
}
