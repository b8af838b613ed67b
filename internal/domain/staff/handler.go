package staff

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
	api.GET("/roles", h.Roles)

	admin := api.Group("", auth.RequireRole("ADMIN"))
	admin.POST("/staff", submission.CreateHandler[FormData, CreatePayload, Member](Registration(), h.svc.api, h.logger))
	admin.GET("/staff", h.List)
	admin.GET("/staff/:id", h.Get)
	admin.PUT("/staff/:id", h.Update)
	admin.DELETE("/staff/:id", h.Delete)
}

// Roles is public like the API endpoint behind it; a token is forwarded
// when there is one.
func (h *Handler) Roles(c echo.Context) error {
	sess, _ := auth.FromContext(c.Request().Context())
	out, err := h.svc.Roles(c.Request().Context(), sess.AccessToken)
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
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
