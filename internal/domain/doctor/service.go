package doctor

import (
	"context"
	"fmt"
	"net/url"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
)

type Service struct {
	api apiclient.API
}

func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// List returns doctors, optionally only those of one clinic.
func (s *Service) List(ctx context.Context, token, clinicID string) ([]Doctor, error) {
	var q map[string]string
	if clinicID != "" {
		q = map[string]string{"clinicId": clinicID}
	}
	var out []Doctor
	if err := s.api.Get(ctx, token, "/clinics/doctors", q, &out); err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return out, nil
}

// ByClinic uses the clinic-scoped endpoint the consultation form reads.
func (s *Service) ByClinic(ctx context.Context, token, clinicID string) ([]Doctor, error) {
	var out []Doctor
	if err := s.api.Get(ctx, token, "/clinics/"+url.PathEscape(clinicID)+"/doctors", nil, &out); err != nil {
		return nil, fmt.Errorf("doctors of clinic %s: %w", clinicID, err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, token, id string) (*Doctor, error) {
	var out Doctor
	if err := s.api.Get(ctx, token, "/clinics/doctors/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get doctor %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, token, id string, p UpdatePayload) (*Doctor, error) {
	var out Doctor
	if err := s.api.Put(ctx, token, "/clinics/doctors/"+url.PathEscape(id), p, &out); err != nil {
		return nil, fmt.Errorf("update doctor %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.api.Delete(ctx, token, "/clinics/doctors/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete doctor %s: %w", id, err)
	}
	return nil
}
