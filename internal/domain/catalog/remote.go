package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
)

// Source is where the masters normally come from.
type Source interface {
	Medicines(ctx context.Context, token string) ([]Medicine, error)
	SearchDiseases(ctx context.Context, token, collection, q string) ([]Disease, error)
}

// Remote reads the masters through the clinic API.
type Remote struct {
	api apiclient.API
}

func NewRemote(api apiclient.API) *Remote {
	return &Remote{api: api}
}

// Medicines fetches the whole medicine master. The endpoint has answered
// with a bare list, a nested data list, and medicines or items keys, so all
// four are read.
func (r *Remote) Medicines(ctx context.Context, token string) ([]Medicine, error) {
	var raw json.RawMessage
	if err := r.api.Get(ctx, token, "/master/medicine_master", nil, &raw); err != nil {
		return nil, fmt.Errorf("fetch medicine master: %w", err)
	}
	return decodeMedicines(raw)
}

func decodeMedicines(raw json.RawMessage) ([]Medicine, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var list []Medicine
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var wrapped struct {
		Data      []Medicine `json:"data"`
		Medicines []Medicine `json:"medicines"`
		Items     []Medicine `json:"items"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: medicine master: %v", apiclient.ErrDecode, err)
	}
	switch {
	case len(wrapped.Data) > 0:
		return wrapped.Data, nil
	case len(wrapped.Medicines) > 0:
		return wrapped.Medicines, nil
	default:
		return wrapped.Items, nil
	}
}

// SearchDiseases queries one disease master collection.
func (r *Remote) SearchDiseases(ctx context.Context, token, collection, q string) ([]Disease, error) {
	var out struct {
		Items []Disease `json:"items"`
	}
	path := "/master/" + url.PathEscape(collection) + "/search"
	if err := r.api.Get(ctx, token, path, map[string]string{"q": q}, &out); err != nil {
		return nil, fmt.Errorf("search %s: %w", collection, err)
	}
	return out.Items, nil
}
