package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// fakeConn feeds frames from in and records writes on out.
type fakeConn struct {
	in  chan []byte
	out chan Result
}

func newFakeConn() *fakeConn {
	return &fakeConn{in: make(chan []byte, 16), out: make(chan Result, 16)}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	msg, ok := <-c.in
	if !ok {
		return 0, nil, io.EOF
	}
	return gorillawebsocket.TextMessage, msg, nil
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	c.out <- r
	return nil
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) send(kind, query string) {
	b, _ := json.Marshal(Request{Kind: kind, Query: query})
	c.in <- b
}

func (c *fakeConn) next(t *testing.T) Result {
	t.Helper()
	select {
	case r := <-c.out:
		return r
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a result")
		return Result{}
	}
}

type fakeSearcher struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *fakeSearcher) Search(_ context.Context, kind, query string) (any, error) {
	s.mu.Lock()
	s.calls = append(s.calls, kind+":"+query)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return []string{strings.ToUpper(query)}, nil
}

func (s *fakeSearcher) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func runSession(t *testing.T, searcher Searcher) *fakeConn {
	t.Helper()
	conn := newFakeConn()
	session := NewSearchSession(conn, searcher, 20*time.Millisecond, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		_ = session.Run(context.Background())
		close(done)
	}()
	t.Cleanup(func() {
		close(conn.in)
		<-done
	})
	return conn
}

func TestSearchSession_DebouncesBurst(t *testing.T) {
	searcher := &fakeSearcher{}
	conn := runSession(t, searcher)

	for _, q := range []string{"pa", "par", "para"} {
		conn.send("medicine", q)
	}
	got := conn.next(t)
	if got.Kind != "medicine" || got.Query != "para" {
		t.Fatalf("unexpected result %+v", got)
	}
	if calls := searcher.Calls(); len(calls) != 1 || calls[0] != "medicine:para" {
		t.Errorf("expected one search for the last query, got %v", calls)
	}
}

func TestSearchSession_ShortQueryAnswersEmpty(t *testing.T) {
	searcher := &fakeSearcher{}
	conn := runSession(t, searcher)

	conn.send("disease", "d")
	got := conn.next(t)
	results, ok := got.Results.([]any)
	if !ok || len(results) != 0 {
		t.Errorf("expected empty results, got %#v", got.Results)
	}
	time.Sleep(50 * time.Millisecond)
	if len(searcher.Calls()) != 0 {
		t.Errorf("expected no search, got %v", searcher.Calls())
	}
}

func TestSearchSession_ShortQueryCancelsPending(t *testing.T) {
	searcher := &fakeSearcher{}
	conn := runSession(t, searcher)

	conn.send("disease", "dia")
	conn.send("disease", "")
	conn.next(t)
	time.Sleep(50 * time.Millisecond)
	if len(searcher.Calls()) != 0 {
		t.Errorf("expected pending search dropped, got %v", searcher.Calls())
	}
}

func TestSearchSession_KindsDebounceSeparately(t *testing.T) {
	searcher := &fakeSearcher{}
	conn := runSession(t, searcher)

	conn.send("medicine", "dolo")
	conn.send("disease", "fever")
	seen := map[string]string{}
	for i := 0; i < 2; i++ {
		r := conn.next(t)
		seen[r.Kind] = r.Query
	}
	if seen["medicine"] != "dolo" || seen["disease"] != "fever" {
		t.Errorf("unexpected results %v", seen)
	}
}

func TestSearchSession_SearchError(t *testing.T) {
	conn := runSession(t, &fakeSearcher{err: errors.New("upstream down")})

	conn.send("medicine", "dolo")
	got := conn.next(t)
	if got.Error != "search failed" {
		t.Errorf("expected error frame, got %+v", got)
	}
}

func TestSearchSession_IgnoresMalformedFrames(t *testing.T) {
	conn := runSession(t, &fakeSearcher{})

	conn.in <- []byte("{not json")
	conn.send("", "dolo")
	if got := conn.next(t); got.Error != "kind required" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestHandler_Search(t *testing.T) {
	e := echo.New()
	e.GET("/ws/search", Handler(NewUpgrader(nil), func(echo.Context) (Searcher, error) {
		return &fakeSearcher{}, nil
	}, 10*time.Millisecond, zerolog.Nop()))
	srv := httptest.NewServer(e)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/search"
	ws, _, err := gorillawebsocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	if err := ws.WriteJSON(Request{Kind: "medicine", Query: "dolo"}); err != nil {
		t.Fatal(err)
	}
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Result
	if err := ws.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got.Query != "dolo" || got.Error != "" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestHandler_FactoryErrorBeforeUpgrade(t *testing.T) {
	h := Handler(NewUpgrader(nil), func(echo.Context) (Searcher, error) {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Please login first")
	}, time.Millisecond, zerolog.Nop())

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/ws/search", nil), httptest.NewRecorder())
	err := h(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestNewUpgrader_CheckOrigin(t *testing.T) {
	up := NewUpgrader([]string{"http://localhost:3000"})
	tests := map[string]bool{
		"":                       true,
		"http://localhost:3000":  true,
		"http://evil.example":    false,
		"http://localhost:3000/": true,
	}
	for origin, want := range tests {
		r := httptest.NewRequest(http.MethodGet, "/ws/search", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		if got := up.CheckOrigin(r); got != want {
			t.Errorf("origin %q: got %v, want %v", origin, got, want)
		}
	}
}
