package clinic

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
	"github.com/onehealth/clinicdesk/pkg/pagination"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/clinics", submission.CreateHandler[FormData, CreatePayload, Clinic](Registration(), h.svc.api, h.logger))
	api.GET("/clinics", h.List)
	api.GET("/clinics/page", h.ByTenant)
	api.GET("/clinics/:id", h.Get)

	admin := api.Group("", auth.RequireRole("ADMIN"))
	admin.PUT("/clinics/:id", h.Update)
	admin.DELETE("/clinics/:id", h.Delete)
}

// List accepts ?active=true and ?search= for the clinic picker.
func (h *Handler) List(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	active, _ := strconv.ParseBool(c.QueryParam("active"))
	out, err := h.svc.List(c.Request().Context(), sess.AccessToken, ListFilter{
		ActiveOnly: active,
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

// ByTenant pages the signed-in user's tenant clinics.
func (h *Handler) ByTenant(c echo.Context) error {
	sess, user, err := auth.Require(c)
	if err != nil {
		return err
	}
	if user.TenantID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant information not available. Please login again.")
	}
	page, err := h.svc.ByTenant(c.Request().Context(), sess.AccessToken, user.TenantID, pagination.FromContext(c))
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, page)
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
