package catalog

import (
	"strings"
	"unicode/utf8"
)

const (
	// MinQueryLen is the shortest query that produces results.
	MinQueryLen = 2
	// MaxResults caps every local search.
	MaxResults = 10
)

// Query trims q and reports whether it is long enough to search. Length
// is counted in characters.
func Query(q string) (string, bool) {
	q = strings.TrimSpace(q)
	return q, utf8.RuneCountInString(q) >= MinQueryLen
}

// FilterMedicines matches q case-insensitively against the product name,
// salt composition and sub-category.
func FilterMedicines(list []Medicine, q string) []Medicine {
	q, ok := Query(q)
	if !ok {
		return []Medicine{}
	}
	q = strings.ToLower(q)
	out := make([]Medicine, 0, MaxResults)
	for _, m := range list {
		if containsFold(m.ProductName, q) || containsFold(m.SaltComposition, q) || containsFold(m.SubCategory, q) {
			out = append(out, m)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

// FilterDiseases matches the label and ICD code case-insensitively and the
// SNOMED id as a plain substring.
func FilterDiseases(list []Disease, q string) []Disease {
	q, ok := Query(q)
	if !ok {
		return []Disease{}
	}
	lower := strings.ToLower(q)
	out := make([]Disease, 0, MaxResults)
	for _, d := range list {
		if containsFold(d.Label, lower) || strings.Contains(d.SnomedID, q) || containsFold(d.ICDCode, lower) {
			out = append(out, d)
			if len(out) == MaxResults {
				break
			}
		}
	}
	return out
}

// lowerQ must already be lower case.
func containsFold(s, lowerQ string) bool {
	return strings.Contains(strings.ToLower(s), lowerQ)
}
