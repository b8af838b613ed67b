package websocket

import (
	"net/http"
	"net/url"
	"time"

	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// SearcherFactory builds the Searcher for one connection, usually from the
// caller's session. An error is returned to the client before the upgrade.
type SearcherFactory func(c echo.Context) (Searcher, error)

// NewUpgrader accepts connections from the listed origins and from clients
// that send no Origin header at all.
func NewUpgrader(origins []string) *gorillawebsocket.Upgrader {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &gorillawebsocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			if _, ok := allowed["*"]; ok {
				return true
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false
			}
			_, ok := allowed[u.Scheme+"://"+u.Host]
			return ok
		},
	}
}

// Handler upgrades the request and runs a SearchSession on it until the
// client goes away.
func Handler(upgrader *gorillawebsocket.Upgrader, newSearcher SearcherFactory, delay time.Duration, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		searcher, err := newSearcher(c)
		if err != nil {
			return err
		}
		ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade has already answered the client.
			logger.Debug().Err(err).Msg("websocket upgrade failed")
			return nil
		}
		defer ws.Close()

		session := NewSearchSession(ws, searcher, delay, logger)
		err = session.Run(c.Request().Context())
		if gorillawebsocket.IsUnexpectedCloseError(err, gorillawebsocket.CloseNormalClosure, gorillawebsocket.CloseGoingAway) {
			logger.Warn().Err(err).Msg("search socket closed unexpectedly")
		}
		return nil
	}
}
