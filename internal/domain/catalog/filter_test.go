package catalog

import (
	"fmt"
	"testing"
)

var testMedicines = []Medicine{
	{ID: "1", SubCategory: "Human Insulin Basal", ProductName: "Huminsulin N 40IU/ml Injection", SaltComposition: "Insulin Isophane (40IU)"},
	{ID: "2", SubCategory: "Antibiotics", ProductName: "Amoxicillin 500mg Capsules", SaltComposition: "Amoxicillin (500mg)"},
	{ID: "3", SubCategory: "Pain Relief", ProductName: "Paracetamol 500mg Tablets", SaltComposition: "Paracetamol (500mg)"},
	{ID: "4", SubCategory: "Antiseptics", ProductName: "Crème Antiseptique", SaltComposition: "Chlorhexidine (1%)"},
}

func ids(ms []Medicine) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestFilterMedicines(t *testing.T) {
	tests := []struct {
		q    string
		want string
	}{
		{"", "[]"},
		{"a", "[]"},
		{"è", "[]"},
		{" a ", "[]"},
		{"èm", "[4]"},
		{"  relief ", "[3]"},
		{"am", "[2 3]"},
		{"INSULIN", "[1]"},
		{"500mg", "[2 3]"},
		{"relief", "[3]"},
		{"zz", "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := fmt.Sprint(ids(FilterMedicines(testMedicines, tt.q)))
			if got != tt.want {
				t.Errorf("FilterMedicines(%q) = %s, want %s", tt.q, got, tt.want)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"è", "è", false},
		{"èé", "èé", true},
		{"  x  ", "x", false},
		{" ab\t", "ab", true},
	}
	for _, tt := range tests {
		got, ok := Query(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Query(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterMedicines_CapsAtTen(t *testing.T) {
	var list []Medicine
	for i := 0; i < 25; i++ {
		list = append(list, Medicine{ID: fmt.Sprint(i), ProductName: "Cetirizine 10mg"})
	}
	got := FilterMedicines(list, "cet")
	if len(got) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(got))
	}
	if got[0].ID != "0" || got[9].ID != "9" {
		t.Errorf("expected the first ten in order, got %v", ids(got))
	}
}

func TestFilterDiseases(t *testing.T) {
	list := []Disease{
		{Value: "hypertension", Label: "Essential Hypertension", SnomedID: "59621000", ICDCode: "I10"},
		{Value: "fever", Label: "Fever Unspecified", SnomedID: "386661006", ICDCode: "R50.9"},
		{Value: "gastritis", Label: "Gastritis", SnomedID: "4556007", ICDCode: "K29.70"},
		{Value: "eczema", Label: "Eczéma", SnomedID: "43116000", ICDCode: "L30.9"},
	}
	tests := []struct {
		q    string
		want []string
	}{
		{"f", nil},
		{"é", nil},
		{" f ", nil},
		{"FEVER", []string{"fever"}},
		{"r50", []string{"fever"}},
		{"5962", []string{"hypertension"}},
		{"k29.7", []string{"gastritis"}},
		{"tension", []string{"hypertension"}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			got := FilterDiseases(list, tt.q)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterDiseases(%q) returned %d results, want %d", tt.q, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Value != tt.want[i] {
					t.Errorf("result %d = %s, want %s", i, got[i].Value, tt.want[i])
				}
			}
		})
	}
}

func TestCollection(t *testing.T) {
	tests := map[string]string{
		"":           HumanDiseases,
		"HUMAN":      HumanDiseases,
		"PET":        PetDiseases,
		"LIVESTOCK":  LivestockDiseases,
		"LIVE_STOCK": LivestockDiseases,
		"pet":        PetDiseases,
		"AQUATIC":    HumanDiseases,
	}
	for in, want := range tests {
		if got := Collection(in); got != want {
			t.Errorf("Collection(%q) = %s, want %s", in, got, want)
		}
	}
}
