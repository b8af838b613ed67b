package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrIncompletePincode is returned without any network call when the pin
	// is not exactly six digits.
	ErrIncompletePincode = errors.New("pincode must be 6 digits")
	// ErrLookupFailed wraps transport, status and decode failures.
	ErrLookupFailed = errors.New("pincode lookup failed")
)

// Lookuper resolves a pincode to its geography records.
type Lookuper interface {
	Lookup(ctx context.Context, pin string) ([]GeographyRecord, error)
}

// ValidPincode reports whether pin is exactly six ASCII digits.
func ValidPincode(pin string) bool {
	if len(pin) != 6 {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

type lookupResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Status string            `json:"status"`
		Data   []GeographyRecord `json:"data"`
	} `json:"data"`
	Message string `json:"message"`
}

// Client calls the unauthenticated pincode endpoint. It never retries.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	return &Client{http: rc, logger: logger}
}

// Lookup fetches the records for pin. An API answer of success=false is an
// empty result, not a failure.
func (c *Client) Lookup(ctx context.Context, pin string) ([]GeographyRecord, error) {
	if !ValidPincode(pin) {
		return nil, ErrIncompletePincode
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("pin", pin).
		Get("/o/pincode/{pin}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrLookupFailed, resp.StatusCode())
	}

	var body lookupResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrLookupFailed, err)
	}
	if !body.Success {
		c.logger.Debug().Str("pin", pin).Str("message", body.Message).Msg("pincode lookup unsuccessful")
		return nil, nil
	}
	return body.Data.Data, nil
}
