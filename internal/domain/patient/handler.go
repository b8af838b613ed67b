package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients", submission.CreateHandler[FormData, CreatePayload, Patient](Registration(), h.svc.api, h.logger))
	api.GET("/patients", h.List)
	api.GET("/patients/:id", h.Get)
	api.PUT("/patients/:id", h.Update)

	admin := api.Group("", auth.RequireRole("ADMIN"))
	admin.DELETE("/patients/:id", h.Delete)
}

// List defaults to the signed-in user's clinic when no clinicId is given.
func (h *Handler) List(c echo.Context) error {
	sess, user, err := auth.Require(c)
	if err != nil {
		return err
	}
	clinicID := c.QueryParam("clinicId")
	if clinicID == "" {
		clinicID = user.ClinicID
	}
	out, err := h.svc.List(c.Request().Context(), sess.AccessToken, clinicID)
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Get(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Get(c.Request().Context(), sess.AccessToken, c.Param("id"))
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Update(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	var p UpdatePayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	out, err := h.svc.Update(c.Request().Context(), sess.AccessToken, c.Param("id"), p)
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Delete(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), sess.AccessToken, c.Param("id")); err != nil {
		return apiclient.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
