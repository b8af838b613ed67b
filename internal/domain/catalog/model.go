// Package catalog serves the medicine and disease masters used while
// diagnosing a visit. Lists come from the clinic API; when the API fails or
// returns nothing, a Fallback supplies them instead.
package catalog

import "strings"

// Medicine is one medicine_master row. Field names follow the master's
// snake_case columns.
type Medicine struct {
	ID                  string `json:"id" yaml:"id"`
	SubCategory         string `json:"sub_category" yaml:"sub_category"`
	ProductName         string `json:"product_name" yaml:"product_name"`
	SaltComposition     string `json:"salt_composition" yaml:"salt_composition"`
	ProductPrice        string `json:"product_price" yaml:"product_price"`
	ProductManufactured string `json:"product_manufactured" yaml:"product_manufactured"`
	MedicineDesc        string `json:"medicine_desc" yaml:"medicine_desc"`
	SideEffects         string `json:"side_effects" yaml:"side_effects"`
	DrugInteractions    string `json:"drug_interactions" yaml:"drug_interactions"`
}

// Disease is a disease-master entry with its ICD-10 and SNOMED codes.
type Disease struct {
	Value       string `json:"value" yaml:"value"`
	Label       string `json:"label" yaml:"label"`
	SnomedID    string `json:"snomedId" yaml:"snomedId"`
	ICDCode     string `json:"icdCode" yaml:"icdCode"`
	DiseaseType string `json:"diseaseType" yaml:"diseaseType"`
	IsPrimary   bool   `json:"isPrimary,omitempty" yaml:"-"`
}

const (
	HumanDiseases     = "human_disease_master"
	PetDiseases       = "pet_disease_master"
	LivestockDiseases = "livestock_disease_master"
)

// Collection names the disease master for a clinic type. Unknown and empty
// types use the human master. Both livestock spellings in use by the API
// are accepted.
func Collection(clinicType string) string {
	switch strings.ToUpper(clinicType) {
	case "PET":
		return PetDiseases
	case "LIVESTOCK", "LIVE_STOCK":
		return LivestockDiseases
	default:
		return HumanDiseases
	}
}
