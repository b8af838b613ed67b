package catalog

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/websocket"
)

const (
	KindMedicine = "medicine"
	KindDisease  = "disease"
)

// LiveSearch answers live search frames for one signed-in caller.
type LiveSearch struct {
	svc        *Service
	token      string
	clinicType string
}

func (s *Service) LiveSearch(token, clinicType string) LiveSearch {
	return LiveSearch{svc: s, token: token, clinicType: clinicType}
}

func (l LiveSearch) Search(ctx context.Context, kind, q string) (any, error) {
	switch kind {
	case KindMedicine:
		if err := l.svc.EnsureMedicines(ctx, l.token); err != nil {
			return nil, err
		}
		return l.svc.SearchMedicines(q), nil
	case KindDisease:
		return l.svc.SearchDiseases(ctx, l.token, l.clinicType, q)
	default:
		return nil, fmt.Errorf("unknown search kind %q", kind)
	}
}

// Searcher builds the live search for the caller of a /ws/search upgrade.
// clinicType defaults to the user's current clinic.
func (h *Handler) Searcher(c echo.Context) (websocket.Searcher, error) {
	sess, user, err := auth.Require(c)
	if err != nil {
		return nil, err
	}
	clinicType := c.QueryParam("clinicType")
	if clinicType == "" {
		clinicType = user.ClinicType()
	}
	return h.svc.LiveSearch(sess.AccessToken, clinicType), nil
}
