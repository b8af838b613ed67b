package doctor

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
	api.POST("/doctors", submission.CreateHandler[FormData, CreatePayload, Created](Registration(), h.svc.api, h.logger))
	api.GET("/doctors", h.List)
	api.GET("/doctors/:id", h.Get)
	api.GET("/clinics/:id/doctors", h.ByClinic)

	admin := api.Group("", auth.RequireRole("ADMIN"))
	admin.PUT("/doctors/:id", h.Update)
	admin.DELETE("/doctors/:id", h.Delete)
}

func (h *Handler) List(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	out, err := h.svc.List(c.Request().Context(), sess.AccessToken, c.QueryParam("clinicId"))
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) ByClinic(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	out, err := h.svc.ByClinic(c.Request().Context(), sess.AccessToken, c.Param("id"))
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
