package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Service keeps the medicine master in memory for local search and runs
// disease searches against the API. Whenever the API fails or answers with
// nothing, the fallback is used and the failure is only logged.
type Service struct {
	source   Source
	fallback Fallback
	logger   zerolog.Logger

	// loadMu serializes first loads so concurrent searches fetch once.
	loadMu    sync.Mutex
	mu        sync.RWMutex
	medicines []Medicine
	loaded    bool
}

func NewService(source Source, fallback Fallback, logger zerolog.Logger) *Service {
	return &Service{source: source, fallback: fallback, logger: logger}
}

// LoadMedicines replaces the in-memory medicine list. It reports how many
// medicines were loaded and whether they came from the fallback.
func (s *Service) LoadMedicines(ctx context.Context, token string) (int, bool, error) {
	list, err := s.source.Medicines(ctx, token)
	fromFallback := false
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Msg("medicine master unavailable, using fallback")
		fromFallback = true
	case len(list) == 0:
		s.logger.Warn().Msg("medicine master empty, using fallback")
		fromFallback = true
	}
	if fromFallback {
		list, err = s.fallback.Medicines(ctx)
		if err != nil {
			return 0, true, fmt.Errorf("load fallback medicines: %w", err)
		}
	}

	s.mu.Lock()
	s.medicines = list
	s.loaded = true
	s.mu.Unlock()
	return len(list), fromFallback, nil
}

// EnsureMedicines loads the list on first use.
func (s *Service) EnsureMedicines(ctx context.Context, token string) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	_, _, err := s.LoadMedicines(ctx, token)
	return err
}

// SearchMedicines filters the loaded list. Nothing is fetched.
func (s *Service) SearchMedicines(q string) []Medicine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterMedicines(s.medicines, q)
}

// SearchDiseases looks q up in the disease master for clinicType. Short
// queries answer empty without a call.
func (s *Service) SearchDiseases(ctx context.Context, token, clinicType, q string) ([]Disease, error) {
	q, ok := Query(q)
	if !ok {
		return []Disease{}, nil
	}
	collection := Collection(clinicType)

	items, err := s.source.SearchDiseases(ctx, token, collection, q)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("collection", collection).Msg("disease search failed, using fallback")
	} else {
		s.logger.Debug().Str("collection", collection).Str("q", q).Msg("no disease matches, using fallback")
	}

	list, ferr := s.fallback.Diseases(ctx, collection)
	if ferr != nil {
		return nil, fmt.Errorf("load fallback diseases: %w", ferr)
	}
	return FilterDiseases(list, q), nil
}
