package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionInfo is what the console shows about the current sign-in.
type SessionInfo struct {
	SignedIn bool      `json:"signedIn"`
	User     *User     `json:"user,omitempty"`
	Token    TokenInfo `json:"token"`
}

// Info describes token at now. An empty or unreadable token is reported as
// signed out rather than as an error.
func Info(token string, signingKey []byte, now time.Time) SessionInfo {
	sess, user, info, err := ParseToken(token, signingKey, now)
	if err != nil {
		return SessionInfo{}
	}
	out := SessionInfo{SignedIn: sess.Authenticated(), Token: info}
	if out.SignedIn {
		out.User = &user
	}
	return out
}

// InfoHandler serves GET /session for the caller's bearer token.
func InfoHandler(signingKey []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get("Authorization"))
		return c.JSON(http.StatusOK, Info(token, signingKey, time.Now()))
	}
}
