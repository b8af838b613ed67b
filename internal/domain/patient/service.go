package patient

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

// List returns patients, optionally only those of one clinic.
func (s *Service) List(ctx context.Context, token, clinicID string) ([]Patient, error) {
	var q map[string]string
	if clinicID != "" {
		q = map[string]string{"clinicId": clinicID}
	}
	var out []Patient
	if err := s.api.Get(ctx, token, "/patients", q, &out); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, token, id string) (*Patient, error) {
	var out Patient
	if err := s.api.Get(ctx, token, "/patients/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get patient %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, token, id string, p UpdatePayload) (*Patient, error) {
	var out Patient
	if err := s.api.Put(ctx, token, "/patients/"+url.PathEscape(id), p, &out); err != nil {
		return nil, fmt.Errorf("update patient %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.api.Delete(ctx, token, "/patients/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete patient %s: %w", id, err)
	}
	return nil
}
