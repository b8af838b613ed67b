// Package apiclient is the single outgoing path to the clinic REST API. It
// wraps resty, forwards the caller's bearer token and request id, and
// unwraps the API's common response envelope.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestIDHeader is forwarded on every outgoing call.
const RequestIDHeader = "X-Request-ID"

var (
	// ErrUnauthorized matches any *Error carrying HTTP 401.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrUnsuccessful is returned when the API answers 2xx with success=false.
	ErrUnsuccessful = errors.New("api reported failure")
	// ErrDecode wraps envelopes or payloads that cannot be parsed.
	ErrDecode = errors.New("decode response")
)

// Envelope is the wrapper every clinic API response uses.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Method    string          `json:"method,omitempty"`
	Path      string          `json:"path,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// Error is a non-2xx answer from the API.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// API is the subset of Client the domain services depend on.
type API interface {
	Get(ctx context.Context, token, path string, query map[string]string, out any) error
	Post(ctx context.Context, token, path string, body, out any) error
	Put(ctx context.Context, token, path string, body, out any) error
	Delete(ctx context.Context, token, path string) error
}

// Client talks to the clinic API. It never retries.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: rc, logger: logger}
}

// Request describes one API call. Out, when non-nil, receives the envelope's
// data field.
type Request struct {
	Method string
	Path   string
	Token  string
	Query  map[string]string
	Body   any
	Out    any
}

// Do performs exactly one HTTP call.
func (c *Client) Do(ctx context.Context, r Request) (*Envelope, error) {
	rid := RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.NewString()
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, rid)
	if r.Token != "" {
		req.SetAuthToken(r.Token)
	}
	if len(r.Query) > 0 {
		req.SetQueryParams(r.Query)
	}
	if r.Body != nil {
		req.SetBody(r.Body)
	}

	start := time.Now()
	resp, err := req.Execute(r.Method, r.Path)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("request_id", rid).
			Str("method", r.Method).
			Str("path", r.Path).
			Msg("api call failed")
		return nil, fmt.Errorf("%s %s: %w", r.Method, r.Path, err)
	}

	c.logger.Debug().
		Str("request_id", rid).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", resp.StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("api call")

	var env Envelope
	body := resp.Body()
	if resp.IsError() {
		_ = json.Unmarshal(body, &env)
		return nil, &Error{Status: resp.StatusCode(), Message: env.Message}
	}

	if len(body) == 0 {
		return &Envelope{Success: true}, nil
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrDecode, r.Method, r.Path, err)
	}
	if !env.Success {
		if env.Message != "" {
			return &env, fmt.Errorf("%w: %s", ErrUnsuccessful, env.Message)
		}
		return &env, ErrUnsuccessful
	}

	if r.Out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, r.Out); err != nil {
			return &env, fmt.Errorf("%w: %s %s data: %v", ErrDecode, r.Method, r.Path, err)
		}
	}
	return &env, nil
}

func (c *Client) Get(ctx context.Context, token, path string, query map[string]string, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Token: token, Query: query, Out: out})
	return err
}

func (c *Client) Post(ctx context.Context, token, path string, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPost, Path: path, Token: token, Body: body, Out: out})
	return err
}

func (c *Client) Put(ctx context.Context, token, path string, body, out any) error {
	_, err := c.Do(ctx, Request{Method: http.MethodPut, Path: path, Token: token, Body: body, Out: out})
	return err
}

func (c *Client) Delete(ctx context.Context, token, path string) error {
	_, err := c.Do(ctx, Request{Method: http.MethodDelete, Path: path, Token: token})
	return err
}

// Message extracts the server-provided message from err, if any.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

type ctxKey struct{}

// WithRequestID makes Do forward rid instead of minting a new one.
func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKey{}, rid)
}

func RequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKey{}).(string)
	return rid
}

// HTTPError converts a failed call into the echo error a proxying handler
// returns. The server's message is kept; transport details are not.
func HTTPError(err error) *echo.HTTPError {
	var apiErr *Error
	switch {
	case errors.Is(err, ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication failed. Please login again.")
	case errors.As(err, &apiErr):
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(apiErr.Status)
		}
		return echo.NewHTTPError(apiErr.Status, msg)
	case errors.Is(err, ErrUnsuccessful):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "request was not accepted")
	default:
		return echo.NewHTTPError(http.StatusBadGateway, "upstream request failed")
	}
}
