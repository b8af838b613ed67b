package visit

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/onehealth/clinicdesk/internal/domain/catalog"
	"github.com/onehealth/clinicdesk/internal/domain/doctor"
	"github.com/onehealth/clinicdesk/internal/domain/patient"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

// ErrInvalidResponse is returned when the ongoing-visit list does not have
// its nested success envelope.
var ErrInvalidResponse = errors.New("Invalid response format")

// ICDSearchLimit is how many codes an ICD search asks for.
const ICDSearchLimit = 20

type Service struct {
	api      apiclient.API
	patients *patient.Service
	doctors  *doctor.Service
}

func NewService(api apiclient.API) *Service {
	return &Service{
		api:      api,
		patients: patient.NewService(api),
		doctors:  doctor.NewService(api),
	}
}

// ListFilter narrows List; empty fields are not sent.
type ListFilter struct {
	ClinicID  string
	PatientID string
}

func (s *Service) List(ctx context.Context, token string, f ListFilter) ([]Visit, error) {
	q := map[string]string{}
	if f.ClinicID != "" {
		q["clinicId"] = f.ClinicID
	}
	if f.PatientID != "" {
		q["patientId"] = f.PatientID
	}
	if len(q) == 0 {
		q = nil
	}
	var out []Visit
	if err := s.api.Get(ctx, token, "/patients/visits", q, &out); err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	return out, nil
}

// Ongoing lists a clinic's open visits. This endpoint wraps the list in a
// second {success, message, data} envelope.
func (s *Service) Ongoing(ctx context.Context, token, clinicID string) ([]Visit, error) {
	var out struct {
		Success bool    `json:"success"`
		Message string  `json:"message"`
		Data    []Visit `json:"data"`
	}
	path := "/patients/visits/clinic/" + url.PathEscape(clinicID) + "/ongoing"
	if err := s.api.Get(ctx, token, path, nil, &out); err != nil {
		return nil, fmt.Errorf("ongoing visits of %s: %w", clinicID, err)
	}
	if !out.Success || out.Data == nil {
		return nil, fmt.Errorf("ongoing visits of %s: %w", clinicID, ErrInvalidResponse)
	}
	return out.Data, nil
}

func (s *Service) Get(ctx context.Context, token, id string) (*Visit, error) {
	var out Visit
	if err := s.api.Get(ctx, token, "/patients/visits/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get visit %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, token, id string, p UpdatePayload) (*Visit, error) {
	var out Visit
	if err := s.api.Put(ctx, token, "/patients/visits/"+url.PathEscape(id), p, &out); err != nil {
		return nil, fmt.Errorf("update visit %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.api.Delete(ctx, token, "/patients/visits/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete visit %s: %w", id, err)
	}
	return nil
}

// FormOptions are the choices offered by the consultation form.
type FormOptions struct {
	Patients []patient.Patient `json:"patients"`
	Doctors  []doctor.Doctor   `json:"doctors"`
	// DefaultDoctorID preselects the signed-in user when they are one of
	// the clinic's doctors.
	DefaultDoctorID string `json:"defaultDoctorId,omitempty"`
}

// Options loads the patients and doctors of the user's clinic.
func (s *Service) Options(ctx context.Context, token string, user auth.User) (FormOptions, error) {
	pats, err := s.patients.List(ctx, token, user.ClinicID)
	if err != nil {
		return FormOptions{}, err
	}
	docs, err := s.doctors.ByClinic(ctx, token, user.ClinicID)
	if err != nil {
		return FormOptions{}, err
	}
	opts := FormOptions{Patients: pats, Doctors: docs}
	if user.HasRole("DOCTOR") {
		for _, d := range docs {
			if d.User.Username == user.Username {
				opts.DefaultDoctorID = d.User.ID
				break
			}
		}
	}
	return opts, nil
}

// SearchICD queries the ICD code index.
func (s *Service) SearchICD(ctx context.Context, token, q string) ([]catalog.Disease, error) {
	q, ok := catalog.Query(q)
	if !ok {
		return []catalog.Disease{}, nil
	}
	var out []catalog.Disease
	query := map[string]string{"q": q, "limit": strconv.Itoa(ICDSearchLimit)}
	if err := s.api.Get(ctx, token, "/icd-codes/search", query, &out); err != nil {
		return nil, fmt.Errorf("search icd codes: %w", err)
	}
	return out, nil
}

// SubmitDiagnosis posts a diagnosis built by a DiagnosisDraft.
func (s *Service) SubmitDiagnosis(ctx context.Context, token string, sub DiagnosisSubmission) error {
	if err := s.api.Post(ctx, token, "/diagnosis", sub, nil); err != nil {
		return fmt.Errorf("submit diagnosis for %s: %w", sub.VisitID, err)
	}
	return nil
}
