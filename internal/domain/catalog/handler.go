package catalog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/catalog/medicines", h.Medicines)
	api.POST("/catalog/medicines/reload", h.Reload)
	api.GET("/catalog/diseases", h.Diseases)
}

func (h *Handler) Medicines(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	if err := h.svc.EnsureMedicines(c.Request().Context(), sess.AccessToken); err != nil {
		h.logger.Error().Err(err).Msg("medicine list unavailable")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "medicine list unavailable")
	}
	return c.JSON(http.StatusOK, h.svc.SearchMedicines(c.QueryParam("q")))
}

func (h *Handler) Reload(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	n, fallback, err := h.svc.LoadMedicines(c.Request().Context(), sess.AccessToken)
	if err != nil {
		h.logger.Error().Err(err).Msg("medicine reload failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "medicine list unavailable")
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n, "fallback": fallback})
}

// Diseases searches the master for the clinicType query parameter, or the
// signed-in user's clinic type when it is absent.
func (h *Handler) Diseases(c echo.Context) error {
	sess, user, err := auth.Require(c)
	if err != nil {
		return err
	}
	clinicType := c.QueryParam("clinicType")
	if clinicType == "" {
		clinicType = user.ClinicType()
	}
	out, err := h.svc.SearchDiseases(c.Request().Context(), sess.AccessToken, clinicType, c.QueryParam("q"))
	if err != nil {
		h.logger.Error().Err(err).Msg("disease search failed")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "disease list unavailable")
	}
	return c.JSON(http.StatusOK, out)
}
