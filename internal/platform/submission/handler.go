package submission

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/validation"
)

// CreateHandler binds an F from the request body and runs one submission
// with the caller's session. The body is the Outcome.
func CreateHandler[F, P, R any](entity Entity[F, P], api Poster, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var form F
		if err := c.Bind(&form); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		sess, user := auth.FromContext(c.Request().Context())

		sub := New[F, P, R](entity, api, logger)
		out := sub.Submit(c.Request().Context(), sess, user, form)
		if out.Success {
			return c.JSON(http.StatusCreated, out)
		}
		return c.JSON(StatusCode(out.Err), out)
	}
}

// StatusCode maps a submission failure to the HTTP status the BFF answers
// with.
func StatusCode(err error) int {
	var (
		apiErr *apiclient.Error
		rej    *Rejection
		verr   *validation.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, apiclient.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &rej), errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		return apiErr.Status
	default:
		return http.StatusBadGateway
	}
}
