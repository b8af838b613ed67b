package visit

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/onehealth/clinicdesk/internal/domain/catalog"
)

var (
	diabetes     = catalog.Disease{Value: "type_2_diabetes", Label: "Type 2 Diabetes Mellitus", SnomedID: "44054006", ICDCode: "E11", DiseaseType: "Metabolic"}
	hypertension = catalog.Disease{Value: "hypertension", Label: "Essential Hypertension", SnomedID: "59621000", ICDCode: "I10", DiseaseType: "Circulatory"}
	headache     = catalog.Disease{Value: "headache", Label: "Headache", SnomedID: "25064002", ICDCode: "R51", DiseaseType: "Symptoms"}
	paracetamol  = catalog.Medicine{ID: "6", SubCategory: "Pain Relief", ProductName: "Paracetamol 500mg Tablets", SaltComposition: "Paracetamol (500mg)", ProductPrice: "₹25.00", ProductManufactured: "Cipla Ltd"}
)

func primaries(d *DiagnosisDraft) []string {
	var out []string
	for _, code := range d.Diagnoses() {
		if code.IsPrimary {
			out = append(out, code.Value)
		}
	}
	return out
}

func TestDraft_AddDiagnosis(t *testing.T) {
	d := NewDiagnosisDraft("v-1")
	if !d.AddDiagnosis(diabetes) || !d.AddDiagnosis(hypertension) {
		t.Fatal("expected both diagnoses to be added")
	}
	if d.AddDiagnosis(diabetes) {
		t.Error("expected duplicate to be ignored")
	}
	if n := len(d.Diagnoses()); n != 2 {
		t.Errorf("expected 2 diagnoses, got %d", n)
	}
	if diff := cmp.Diff([]string{"type_2_diabetes"}, primaries(d)); diff != "" {
		t.Errorf("primary (-want +got):\n%s", diff)
	}
}

func TestDraft_AddDiagnosisIgnoresIncomingPrimaryFlag(t *testing.T) {
	d := NewDiagnosisDraft("v-1")
	d.AddDiagnosis(diabetes)
	flagged := hypertension
	flagged.IsPrimary = true
	d.AddDiagnosis(flagged)
	if diff := cmp.Diff([]string{"type_2_diabetes"}, primaries(d)); diff != "" {
		t.Errorf("primary (-want +got):\n%s", diff)
	}
}

func TestDraft_RemoveDiagnosis(t *testing.T) {
	tests := []struct {
		name   string
		remove string
		want   []string
	}{
		{"primary promotes first remaining", "type_2_diabetes", []string{"hypertension"}},
		{"secondary keeps primary", "headache", []string{"type_2_diabetes"}},
		{"unknown is a no-op", "gout", []string{"type_2_diabetes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDiagnosisDraft("v-1")
			d.AddDiagnosis(diabetes)
			d.AddDiagnosis(hypertension)
			d.AddDiagnosis(headache)
			d.RemoveDiagnosis(tt.remove)
			if diff := cmp.Diff(tt.want, primaries(d)); diff != "" {
				t.Errorf("primary (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDraft_RemoveLastDiagnosis(t *testing.T) {
	d := NewDiagnosisDraft("v-1")
	d.AddDiagnosis(diabetes)
	d.RemoveDiagnosis(diabetes.Value)
	if len(d.Diagnoses()) != 0 {
		t.Error("expected no diagnoses")
	}
	if _, ok := d.Primary(); ok {
		t.Error("expected no primary")
	}
	d.AddDiagnosis(headache)
	if p, _ := d.Primary(); p.Value != "headache" {
		t.Errorf("expected re-added diagnosis to be primary, got %q", p.Value)
	}
}

func TestDraft_TogglePrimary(t *testing.T) {
	d := NewDiagnosisDraft("v-1")
	d.AddDiagnosis(diabetes)
	d.AddDiagnosis(hypertension)

	if !d.TogglePrimary("hypertension") {
		t.Fatal("expected toggle to succeed")
	}
	if diff := cmp.Diff([]string{"hypertension"}, primaries(d)); diff != "" {
		t.Errorf("primary (-want +got):\n%s", diff)
	}
	if d.TogglePrimary("gout") {
		t.Error("expected unknown value to be rejected")
	}
	if diff := cmp.Diff([]string{"hypertension"}, primaries(d)); diff != "" {
		t.Errorf("primary after unknown toggle (-want +got):\n%s", diff)
	}
}

func TestDraft_Prescriptions(t *testing.T) {
	d := NewDiagnosisDraft("v-1")

	if err := d.AddPrescription("500mg", "TDS", "5 days"); !errors.Is(err, ErrIncompletePrescription) {
		t.Errorf("expected incomplete without a medicine, got %v", err)
	}

	d.SelectMedicine(paracetamol)
	if err := d.AddPrescription("500mg", " ", "5 days"); !errors.Is(err, ErrIncompletePrescription) {
		t.Errorf("expected incomplete without frequency, got %v", err)
	}
	if _, ok := d.Selected(); !ok {
		t.Error("a failed add must keep the selection")
	}

	if err := d.AddPrescription("500mg", "TDS", "5 days"); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Selected(); ok {
		t.Error("expected selection cleared after add")
	}
	d.SelectMedicine(paracetamol)
	if err := d.AddPrescription("650mg", "SOS", "3 days"); err != nil {
		t.Fatal(err)
	}
	if err := d.RemovePrescription(0); err != nil {
		t.Fatal(err)
	}
	got := d.Prescriptions()
	if len(got) != 1 || got[0].Dose != "650mg" {
		t.Errorf("unexpected prescriptions %+v", got)
	}
	if err := d.RemovePrescription(5); !errors.Is(err, ErrNoSuchPrescription) {
		t.Errorf("expected ErrNoSuchPrescription, got %v", err)
	}
}

func TestDraft_Submission(t *testing.T) {
	d := NewDiagnosisDraft("v-1")
	if _, err := d.Submission(DiagnosisNotes{}); !errors.Is(err, ErrNoDiagnosis) {
		t.Fatalf("expected ErrNoDiagnosis, got %v", err)
	}

	d.AddDiagnosis(headache)
	d.AddDiagnosis(hypertension)
	d.SelectMedicine(paracetamol)
	if err := d.AddPrescription("500mg", "TDS", "5 days"); err != nil {
		t.Fatal(err)
	}

	got, err := d.Submission(DiagnosisNotes{
		Prescription: "After food",
		LabOrders:    "<i>CBC</i>",
		FollowUpDate: " 2026-10-22 ",
		Instructions: "Rest & fluids",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := DiagnosisSubmission{
		VisitID: "v-1",
		ICDCodes: []DiagnosisCode{
			{Value: "headache", Label: "Headache", SnomedID: "25064002", ICDCode: "R51", DiseaseType: "Symptoms", IsPrimary: true},
			{Value: "hypertension", Label: "Essential Hypertension", SnomedID: "59621000", ICDCode: "I10", DiseaseType: "Circulatory"},
		},
		Prescriptions: []PrescriptionLine{{
			Medicine: PrescribedMedicine{
				ID:              "6",
				ProductName:     "Paracetamol 500mg Tablets",
				SaltComposition: "Paracetamol (500mg)",
				SubCategory:     "Pain Relief",
				ProductPrice:    "₹25.00",
			},
			Dose:      "500mg",
			Frequency: "TDS",
			Duration:  "5 days",
		}},
		PrescriptionNotes: "After food",
		LabOrders:         "CBC",
		FollowUpDate:      "2026-10-22",
		Instructions:      "Rest & fluids",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("submission (-want +got):\n%s", diff)
	}
	if msg := SavedMessage(len(got.ICDCodes)); msg != "Diagnosis saved successfully! 2 ICD codes added." {
		t.Errorf("unexpected message %q", msg)
	}
}
