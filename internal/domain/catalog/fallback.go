package catalog

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Fallback supplies the masters when the API cannot.
type Fallback interface {
	Medicines(ctx context.Context) ([]Medicine, error)
	Diseases(ctx context.Context, collection string) ([]Disease, error)
}

//go:embed fallback.yaml
var fallbackYAML []byte

// StaticFallback is a small built-in master, enough to keep the diagnosis
// screen usable offline.
type StaticFallback struct {
	medicines []Medicine
	diseases  map[string][]Disease
}

type staticDoc struct {
	Medicines []Medicine           `yaml:"medicines"`
	Diseases  map[string][]Disease `yaml:"diseases"`
}

func NewStaticFallback() (*StaticFallback, error) {
	return ParseStaticFallback(fallbackYAML)
}

// ParseStaticFallback reads a fallback document in the embedded format.
func ParseStaticFallback(b []byte) (*StaticFallback, error) {
	var doc staticDoc
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse fallback catalog: %w", err)
	}
	return &StaticFallback{medicines: doc.Medicines, diseases: doc.Diseases}, nil
}

func (f *StaticFallback) Medicines(context.Context) ([]Medicine, error) {
	return append([]Medicine(nil), f.medicines...), nil
}

// Diseases returns the human master for collections it does not know.
func (f *StaticFallback) Diseases(_ context.Context, collection string) ([]Disease, error) {
	list, ok := f.diseases[collection]
	if !ok {
		list = f.diseases[HumanDiseases]
	}
	return append([]Disease(nil), list...), nil
}
