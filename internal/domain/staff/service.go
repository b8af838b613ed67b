package staff

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

// Roles lists the roles a staff member can be given. The endpoint is open.
func (s *Service) Roles(ctx context.Context, token string) ([]Role, error) {
	var out []Role
	if err := s.api.Get(ctx, token, "/o/role", nil, &out); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return out, nil
}

func (s *Service) List(ctx context.Context, token, clinicID string) ([]Member, error) {
	var q map[string]string
	if clinicID != "" {
		q = map[string]string{"clinicId": clinicID}
	}
	var out []Member
	if err := s.api.Get(ctx, token, "/users/staff", q, &out); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, token, id string) (*Member, error) {
	var out Member
	if err := s.api.Get(ctx, token, "/users/staff/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("get staff %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Update(ctx context.Context, token, id string, p UpdatePayload) (*Member, error) {
	var out Member
	if err := s.api.Put(ctx, token, "/users/staff/"+url.PathEscape(id), p, &out); err != nil {
		return nil, fmt.Errorf("update staff %s: %w", id, err)
	}
	return &out, nil
}

func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.api.Delete(ctx, token, "/users/staff/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete staff %s: %w", id, err)
	}
	return nil
}
