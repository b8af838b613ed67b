package visit

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/domain/catalog"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
)

// DiagnosisFailedMessage replaces every non-401 failure of a diagnosis save.
const DiagnosisFailedMessage = "Failed to save diagnosis and prescription"

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/visits", submission.CreateHandler[FormData, CreatePayload, Visit](Registration(), h.svc.api, h.logger))
	api.GET("/visits", h.List)
	api.GET("/visits/ongoing", h.Ongoing)
	api.GET("/visits/options", h.Options)
	api.GET("/visits/export", h.Export)
	api.GET("/visits/:id", h.Get)
	api.PUT("/visits/:id", h.Update)
	api.GET("/icd-codes/search", h.SearchICD)

	api.POST("/visits/:id/diagnosis", h.SubmitDiagnosis, auth.RequireRole("DOCTOR"))
	api.DELETE("/visits/:id", h.Delete, auth.RequireRole("ADMIN"))
}

func (h *Handler) List(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	f := ListFilter{ClinicID: c.QueryParam("clinicId"), PatientID: c.QueryParam("patientId")}
	out, err := h.svc.List(c.Request().Context(), sess.AccessToken, f)
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Ongoing(c echo.Context) error {
	sess, user, err := auth.Require(c)
	if err != nil {
		return err
	}
	if user.ClinicID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "No clinic ID available")
	}
	out, err := h.svc.Ongoing(c.Request().Context(), sess.AccessToken, user.ClinicID)
	if errors.Is(err, ErrInvalidResponse) {
		return echo.NewHTTPError(http.StatusBadGateway, ErrInvalidResponse.Error())
	}
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Options(c echo.Context) error {
	sess, user, err := auth.Require(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Options(c.Request().Context(), sess.AccessToken, user)
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

// Export downloads the user's ongoing visits, or the visits matching
// clinicId/patientId when either is given, as a workbook.
func (h *Handler) Export(c echo.Context) error {
	sess, user, err := auth.Require(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	f := ListFilter{ClinicID: c.QueryParam("clinicId"), PatientID: c.QueryParam("patientId")}

	var visits []Visit
	if f == (ListFilter{}) {
		if user.ClinicID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "No clinic ID available")
		}
		visits, err = h.svc.Ongoing(ctx, sess.AccessToken, user.ClinicID)
	} else {
		visits, err = h.svc.List(ctx, sess.AccessToken, f)
	}
	if errors.Is(err, ErrInvalidResponse) {
		return echo.NewHTTPError(http.StatusBadGateway, ErrInvalidResponse.Error())
	}
	if err != nil {
		return apiclient.HTTPError(err)
	}

	b, err := ExportXLSX(visits)
	if err != nil {
		h.logger.Error().Err(err).Msg("visit export failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	name := "visits-" + time.Now().Format("20060102") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+strconv.Quote(name))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", b)
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

func (h *Handler) SearchICD(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	out, err := h.svc.SearchICD(c.Request().Context(), sess.AccessToken, c.QueryParam("q"))
	if err != nil {
		return apiclient.HTTPError(err)
	}
	return c.JSON(http.StatusOK, out)
}

// DiagnosisRequest replays a diagnosis form: the picked codes in order, an
// optional primary, and the prescriptions.
type DiagnosisRequest struct {
	Diagnoses     []catalog.Disease `json:"diagnoses"`
	Primary       string            `json:"primary,omitempty"`
	Prescriptions []Prescription    `json:"prescriptions"`
	DiagnosisNotes
}

// Draft builds the DiagnosisDraft the request describes.
func (r DiagnosisRequest) Draft(visitID string) (*DiagnosisDraft, error) {
	d := NewDiagnosisDraft(visitID)
	for _, code := range r.Diagnoses {
		d.AddDiagnosis(code)
	}
	if r.Primary != "" {
		d.TogglePrimary(r.Primary)
	}
	for _, p := range r.Prescriptions {
		d.SelectMedicine(p.Medicine)
		if err := d.AddPrescription(p.Dose, p.Frequency, p.Duration); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (h *Handler) SubmitDiagnosis(c echo.Context) error {
	sess, _, err := auth.Require(c)
	if err != nil {
		return err
	}
	var req DiagnosisRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	draft, err := req.Draft(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	body, err := draft.Submission(req.DiagnosisNotes)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.svc.SubmitDiagnosis(c.Request().Context(), sess.AccessToken, body); err != nil {
		h.logger.Warn().Err(err).Str("visit_id", body.VisitID).Msg("diagnosis submit failed")
		httpErr := apiclient.HTTPError(err)
		if httpErr.Code != http.StatusUnauthorized {
			httpErr.Message = DiagnosisFailedMessage
		}
		return httpErr
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": SavedMessage(len(body.ICDCodes)),
	})
}
