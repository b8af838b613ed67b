package location

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handler struct {
	lookup Lookuper
	logger zerolog.Logger
}

func NewHandler(lookup Lookuper, logger zerolog.Logger) *Handler {
	return &Handler{lookup: lookup, logger: logger}
}

// RegisterRoutes mounts the lookup endpoints. They are public, like the
// pincode API behind them.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/pincode/:pin", h.Lookup)
	api.GET("/pincode/:pin/options", h.Options)
}

type lookupReply struct {
	Result  LookupResult      `json:"result"`
	Records []GeographyRecord `json:"records"`
	Address AddressFields     `json:"address"`
	Options Options           `json:"options"`
}

// Lookup answers with the records for a pin and the values a form would
// auto-fill. A failed lookup is a 200 with result "failed" and empty
// fields, matching what the form shows.
func (h *Handler) Lookup(c echo.Context) error {
	var fields AddressFields
	form := NewAddressForm(h.lookup, &fields, h.logger)

	result := form.ChangePincode(c.Request().Context(), c.Param("pin"))
	if result == Reset {
		return echo.NewHTTPError(http.StatusBadRequest, "PIN must be 6 digits")
	}
	return c.JSON(http.StatusOK, lookupReply{
		Result:  result,
		Records: form.Records(),
		Address: form.Fields(),
		Options: form.Options(),
	})
}

// Options applies district, subDistrict and town query selections in order
// and returns the resulting address and options.
func (h *Handler) Options(c echo.Context) error {
	var fields AddressFields
	form := NewAddressForm(h.lookup, &fields, h.logger)

	result := form.ChangePincode(c.Request().Context(), c.Param("pin"))
	if result == Reset {
		return echo.NewHTTPError(http.StatusBadRequest, "PIN must be 6 digits")
	}

	steps := []struct {
		param string
		apply func(string) error
	}{
		{"district", form.SelectDistrict},
		{"subDistrict", form.SelectSubDistrict},
		{"town", form.SelectTown},
	}
	for _, s := range steps {
		v := c.QueryParam(s.param)
		if v == "" {
			break
		}
		if err := s.apply(v); err != nil {
			if errors.Is(err, ErrNotAnOption) {
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, lookupReply{
		Result:  result,
		Records: form.Records(),
		Address: form.Fields(),
		Options: form.Options(),
	})
}
