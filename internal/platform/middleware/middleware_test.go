package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

func newTestContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestRequestID(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
	}{
		{"minted", ""},
		{"kept", "req-from-browser"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/api/v1/roles")
			if tt.inbound != "" {
				c.Request().Header.Set(RequestIDHeader, tt.inbound)
			}

			var seen, forwarded string
			h := RequestID()(func(c echo.Context) error {
				seen, _ = c.Get("request_id").(string)
				forwarded = apiclient.RequestIDFromContext(c.Request().Context())
				return nil
			})
			if err := h(c); err != nil {
				t.Fatal(err)
			}

			if seen == "" || forwarded != seen {
				t.Errorf("request id %q not forwarded (got %q)", seen, forwarded)
			}
			if tt.inbound != "" && seen != tt.inbound {
				t.Errorf("expected inbound id kept, got %q", seen)
			}
			if got := rec.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("response header %q, want %q", got, seen)
			}
		})
	}
}

func TestLogger_IncludesSessionFields(t *testing.T) {
	var buf bytes.Buffer
	c, _ := newTestContext(http.MethodGet, "/api/v1/pincode/560001")
	c.Set("request_id", "rid-1")

	h := Logger(zerolog.New(&buf))(func(c echo.Context) error {
		ctx := auth.NewContext(c.Request().Context(), auth.Session{AccessToken: "tok", SignedIn: true},
			auth.User{Username: "reception", TenantID: "t-1"})
		c.SetRequest(c.Request().WithContext(ctx))
		return ok(c)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	for k, want := range map[string]any{
		"request_id": "rid-1",
		"path":       "/api/v1/pincode/560001",
		"tenant_id":  "t-1",
		"user":       "reception",
		"status":     float64(200),
	} {
		if line[k] != want {
			t.Errorf("%s = %v, want %v", k, line[k], want)
		}
	}
}

func TestRecovery_CatchesPanic(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/panic")
	err := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})(c)

	httpErr, isHTTP := err.(*echo.HTTPError)
	if !isHTTP || httpErr.Code != http.StatusInternalServerError {
		t.Fatalf("expected a 500 error, got %v", err)
	}
}

func TestSecurityHeaders(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/v1/patients")
	if err := SecurityHeaders()(ok)(c); err != nil {
		t.Fatal(err)
	}
	for _, kv := range jsonAPIHeaders {
		if got := rec.Header().Get(kv[0]); got != kv[1] {
			t.Errorf("%s = %q, want %q", kv[0], got, kv[1])
		}
	}
}

func TestRequestTimeout_CompletesWithinDeadline(t *testing.T) {
	c, rec := newTestContext(http.MethodPost, "/api/v1/clinics")
	var deadline bool
	h := RequestTimeout(5 * time.Second)(func(c echo.Context) error {
		_, deadline = c.Request().Context().Deadline()
		return ok(c)
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if !deadline || rec.Code != http.StatusOK {
		t.Errorf("expected a deadline and 200, got %v %d", deadline, rec.Code)
	}
}

func TestRequestTimeout_ReturnsTimeoutOnExpiry(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/api/v1/visits")
	h := RequestTimeout(50 * time.Millisecond)(func(c echo.Context) error {
		select {
		case <-time.After(5 * time.Second):
			return nil
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != false || body["message"] != "Request timed out. Please try again." {
		t.Errorf("unexpected body %v", body)
	}
}

func TestRequestTimeout_NoDeadline(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		timeout time.Duration
	}{
		{"websocket", "/ws/search", time.Millisecond},
		{"disabled", "/api/v1/visits", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestContext(http.MethodGet, tt.target)
			h := RequestTimeout(tt.timeout)(func(c echo.Context) error {
				if _, ok := c.Request().Context().Deadline(); ok {
					t.Error("expected no deadline")
				}
				return nil
			})
			_ = h(c)
		})
	}
}
