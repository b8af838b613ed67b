package clinic

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/pkg/pagination"
)

type Service struct {
	api apiclient.API
}

func NewService(api apiclient.API) *Service {
	return &Service{api: api}
}

// ListFilter narrows List. The zero value lists every clinic.
type ListFilter struct {
	ActiveOnly bool
	Search     string
}

func (s *Service) List(ctx context.Context, token string, f ListFilter) ([]Clinic, error) {
	var q map[string]string
	if f.ActiveOnly || strings.TrimSpace(f.Search) != "" {
		q = map[string]string{}
		if f.ActiveOnly {
			q["isActive"] = "true"
		}
		if search := strings.TrimSpace(f.Search); search != "" {
			q["search"] = search
		}
	}
	var out []Clinic
	if err := s.api.Get(ctx, token, "/clinics", q, &out); err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	return out, nil
}

// ByTenant pages through a tenant's clinics.
func (s *Service) ByTenant(ctx context.Context, token, tenantID string, p pagination.Params) (pagination.Page[Clinic], error) {
	q := p.Query()
	q["tenantId"] = tenantID
	var out pagination.Page[Clinic]
	if err := s.api.Get(ctx, token, "/clinics/page", q, &out); err != nil {
		return out, fmt.Errorf("clinics of tenant %s: %w", tenantID, err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, token, id string) (*Clinic, error) {
	var out Clinic
	if err := s.api.Get(ctx, token, "/clinics/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get clinic %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, token, id string, p UpdatePayload) (*Clinic, error) {
	var out Clinic
	if err := s.api.Put(ctx, token, "/clinics/"+url.PathEscape(id), p, &out); err != nil {
		return nil, fmt.Errorf("update clinic %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.api.Delete(ctx, token, "/clinics/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete clinic %s: %w", id, err)
	}
	return nil
}
