package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PGStore reads a locally maintained copy of the masters from Postgres.
// It is used in place of StaticFallback when DATABASE_URL is set.
type PGStore struct {
	db querier
}

// NewPGStore accepts a *pgxpool.Pool or anything else that can Query.
func NewPGStore(db querier) *PGStore {
	return &PGStore{db: db}
}

const medicineCols = `id, sub_category, product_name, salt_composition, product_price,
	product_manufactured, medicine_desc, side_effects, drug_interactions`

func (s *PGStore) Medicines(ctx context.Context) ([]Medicine, error) {
	rows, err := s.db.Query(ctx, `SELECT `+medicineCols+` FROM medicine_master ORDER BY product_name`)
	if err != nil {
		return nil, fmt.Errorf("query medicine_master: %w", err)
	}
	defer rows.Close()

	var out []Medicine
	for rows.Next() {
		var m Medicine
		if err := rows.Scan(&m.ID, &m.SubCategory, &m.ProductName, &m.SaltComposition, &m.ProductPrice,
			&m.ProductManufactured, &m.MedicineDesc, &m.SideEffects, &m.DrugInteractions); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PGStore) Diseases(ctx context.Context, collection string) ([]Disease, error) {
	rows, err := s.db.Query(ctx, `
		SELECT value, label, snomed_id, icd_code, disease_type
		FROM disease_master
		WHERE collection = $1
		ORDER BY label`, collection)
	if err != nil {
		return nil, fmt.Errorf("query disease_master: %w", err)
	}
	defer rows.Close()

	var out []Disease
	for rows.Next() {
		var d Disease
		if err := rows.Scan(&d.Value, &d.Label, &d.SnomedID, &d.ICDCode, &d.DiseaseType); err != nil {
			return nil, fmt.Errorf("scan disease: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
