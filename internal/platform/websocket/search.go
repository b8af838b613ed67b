// Package websocket serves live catalog search over a WebSocket. Each
// connection is a SearchSession: the client sends one frame per keystroke
// and gets back results for the last query of each burst.
package websocket

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// MinQueryLen is the shortest query that reaches the Searcher.
const MinQueryLen = 2

// Searcher answers one query of the given kind ("medicine" or "disease").
type Searcher interface {
	Search(ctx context.Context, kind, query string) (any, error)
}

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Request is an inbound search frame.
type Request struct {
	Kind  string `json:"kind"`
	Query string `json:"query"`
}

// Result is an outbound frame. Query echoes the request so clients can
// discard answers to text they have since replaced.
type Result struct {
	Kind    string `json:"kind"`
	Query   string `json:"query"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

type SearchSession struct {
	conn     Conn
	searcher Searcher
	delay    time.Duration
	logger   zerolog.Logger

	writeMu sync.Mutex

	mu         sync.Mutex
	debouncers map[string]*Debouncer
	latest     map[string]uint64
}

func NewSearchSession(conn Conn, searcher Searcher, delay time.Duration, logger zerolog.Logger) *SearchSession {
	return &SearchSession{
		conn:       conn,
		searcher:   searcher,
		delay:      delay,
		logger:     logger,
		debouncers: make(map[string]*Debouncer),
		latest:     make(map[string]uint64),
	}
}

// Run reads frames until the connection fails or ctx ends, and returns
// the read error. Pending searches are dropped on return.
func (s *SearchSession) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.stop()

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			return err
		}
		var req Request
		if err := json.Unmarshal(msg, &req); err != nil {
			s.logger.Debug().Err(err).Msg("ignoring malformed search frame")
			continue
		}
		s.handle(ctx, req)
	}
}

func (s *SearchSession) handle(ctx context.Context, req Request) {
	kind := strings.ToLower(strings.TrimSpace(req.Kind))
	if kind == "" {
		s.write(Result{Kind: req.Kind, Query: req.Query, Results: []any{}, Error: "kind required"})
		return
	}

	s.mu.Lock()
	s.latest[kind]++
	gen := s.latest[kind]
	d, ok := s.debouncers[kind]
	if !ok {
		d = NewDebouncer(s.delay)
		s.debouncers[kind] = d
	}
	s.mu.Unlock()

	if utf8.RuneCountInString(strings.TrimSpace(req.Query)) < MinQueryLen {
		d.Stop()
		s.write(Result{Kind: kind, Query: req.Query, Results: []any{}})
		return
	}
	d.Trigger(func() { s.search(ctx, kind, req.Query, gen) })
}

func (s *SearchSession) search(ctx context.Context, kind, query string, gen uint64) {
	results, err := s.searcher.Search(ctx, kind, query)
	if ctx.Err() != nil || !s.current(kind, gen) {
		return
	}
	res := Result{Kind: kind, Query: query, Results: results}
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("live search failed")
		res.Results = []any{}
		res.Error = "search failed"
	}
	s.write(res)
}

// current reports whether gen is still the newest query of its kind.
func (s *SearchSession) current(kind string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest[kind] == gen
}

func (s *SearchSession) write(res Result) {
	b, err := json.Marshal(res)
	if err != nil {
		s.logger.Error().Err(err).Msg("encode search result")
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteMessage(gorillawebsocket.TextMessage, b); err != nil {
		s.logger.Debug().Err(err).Msg("write search result")
	}
}

func (s *SearchSession) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.debouncers {
		d.Stop()
	}
}
