package visit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/onehealth/clinicdesk/internal/domain/catalog"
	"github.com/onehealth/clinicdesk/internal/platform/sanitize"
)

var (
	ErrNoDiagnosis            = errors.New("Please select at least one diagnosis from the disease master")
	ErrIncompletePrescription = errors.New("medicine, dose, frequency and duration are required")
	ErrNoSuchPrescription     = errors.New("no prescription at that position")
)

// Prescription is one medicine line of a diagnosis.
type Prescription struct {
	Medicine  catalog.Medicine `json:"medicine"`
	Dose      string           `json:"dose"`
	Frequency string           `json:"frequency"`
	Duration  string           `json:"duration"`
}

// DiagnosisDraft collects diagnoses and prescriptions for one visit before
// they are submitted together. At most one diagnosis is primary, and when
// any diagnosis is present exactly one is. A draft belongs to a single form
// and is not safe for concurrent use.
type DiagnosisDraft struct {
	VisitID string

	diagnoses     []catalog.Disease
	prescriptions []Prescription
	selected      *catalog.Medicine
}

func NewDiagnosisDraft(visitID string) *DiagnosisDraft {
	return &DiagnosisDraft{VisitID: visitID}
}

// AddDiagnosis appends code unless a diagnosis with the same value is already
// present. The first diagnosis added becomes primary.
func (d *DiagnosisDraft) AddDiagnosis(code catalog.Disease) bool {
	for _, existing := range d.diagnoses {
		if existing.Value == code.Value {
			return false
		}
	}
	code.IsPrimary = len(d.diagnoses) == 0
	d.diagnoses = append(d.diagnoses, code)
	return true
}

// RemoveDiagnosis drops the diagnosis with value. When the primary one is
// removed the first remaining diagnosis is promoted.
func (d *DiagnosisDraft) RemoveDiagnosis(value string) {
	kept := d.diagnoses[:0]
	for _, code := range d.diagnoses {
		if code.Value != value {
			kept = append(kept, code)
		}
	}
	d.diagnoses = kept
	if len(kept) == 0 {
		return
	}
	for _, code := range kept {
		if code.IsPrimary {
			return
		}
	}
	d.diagnoses[0].IsPrimary = true
}

// TogglePrimary makes value the only primary diagnosis. Unknown values are
// ignored so the draft never ends up without a primary.
func (d *DiagnosisDraft) TogglePrimary(value string) bool {
	found := false
	for _, code := range d.diagnoses {
		if code.Value == value {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range d.diagnoses {
		d.diagnoses[i].IsPrimary = d.diagnoses[i].Value == value
	}
	return true
}

func (d *DiagnosisDraft) Diagnoses() []catalog.Disease {
	return append([]catalog.Disease(nil), d.diagnoses...)
}

// Primary returns the primary diagnosis, if any.
func (d *DiagnosisDraft) Primary() (catalog.Disease, bool) {
	for _, code := range d.diagnoses {
		if code.IsPrimary {
			return code, true
		}
	}
	return catalog.Disease{}, false
}

// SelectMedicine picks the medicine the next prescription is for.
func (d *DiagnosisDraft) SelectMedicine(m catalog.Medicine) {
	d.selected = &m
}

func (d *DiagnosisDraft) Selected() (catalog.Medicine, bool) {
	if d.selected == nil {
		return catalog.Medicine{}, false
	}
	return *d.selected, true
}

// AddPrescription records the selected medicine with its dosing and clears
// the selection. Nothing changes when any part is missing.
func (d *DiagnosisDraft) AddPrescription(dose, frequency, duration string) error {
	dose, frequency, duration = strings.TrimSpace(dose), strings.TrimSpace(frequency), strings.TrimSpace(duration)
	if d.selected == nil || dose == "" || frequency == "" || duration == "" {
		return ErrIncompletePrescription
	}
	d.prescriptions = append(d.prescriptions, Prescription{
		Medicine:  *d.selected,
		Dose:      dose,
		Frequency: frequency,
		Duration:  duration,
	})
	d.selected = nil
	return nil
}

func (d *DiagnosisDraft) RemovePrescription(i int) error {
	if i < 0 || i >= len(d.prescriptions) {
		return fmt.Errorf("%w: %d", ErrNoSuchPrescription, i)
	}
	d.prescriptions = append(d.prescriptions[:i], d.prescriptions[i+1:]...)
	return nil
}

func (d *DiagnosisDraft) Prescriptions() []Prescription {
	return append([]Prescription(nil), d.prescriptions...)
}

// DiagnosisNotes are the free-text parts of the diagnosis form.
type DiagnosisNotes struct {
	Prescription string `json:"prescription" yaml:"prescription"`
	LabOrders    string `json:"labOrders" yaml:"labOrders"`
	FollowUpDate string `json:"followUpDate" yaml:"followUpDate"`
	Instructions string `json:"instructions" yaml:"instructions"`
}

type DiagnosisCode struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	SnomedID    string `json:"snomedId"`
	ICDCode     string `json:"icdCode"`
	DiseaseType string `json:"diseaseType"`
	IsPrimary   bool   `json:"isPrimary"`
}

// PrescribedMedicine is the subset of the medicine master sent with a
// prescription.
type PrescribedMedicine struct {
	ID              string `json:"id"`
	ProductName     string `json:"product_name"`
	SaltComposition string `json:"salt_composition"`
	SubCategory     string `json:"sub_category"`
	ProductPrice    string `json:"product_price"`
}

type PrescriptionLine struct {
	Medicine  PrescribedMedicine `json:"medicine"`
	Dose      string             `json:"dose"`
	Frequency string             `json:"frequency"`
	Duration  string             `json:"duration"`
}

// DiagnosisSubmission is the body posted to /diagnosis.
type DiagnosisSubmission struct {
	VisitID           string             `json:"visitId"`
	ICDCodes          []DiagnosisCode    `json:"icdCodes"`
	Prescriptions     []PrescriptionLine `json:"prescriptions"`
	PrescriptionNotes string             `json:"prescriptionNotes"`
	LabOrders         string             `json:"labOrders"`
	FollowUpDate      string             `json:"followUpDate"`
	Instructions      string             `json:"instructions"`
}

// Submission builds the request body. At least one diagnosis is required.
func (d *DiagnosisDraft) Submission(notes DiagnosisNotes) (DiagnosisSubmission, error) {
	if len(d.diagnoses) == 0 {
		return DiagnosisSubmission{}, ErrNoDiagnosis
	}
	s := DiagnosisSubmission{
		VisitID:           d.VisitID,
		ICDCodes:          make([]DiagnosisCode, len(d.diagnoses)),
		Prescriptions:     make([]PrescriptionLine, len(d.prescriptions)),
		PrescriptionNotes: sanitize.Text(notes.Prescription),
		LabOrders:         sanitize.Text(notes.LabOrders),
		FollowUpDate:      strings.TrimSpace(notes.FollowUpDate),
		Instructions:      sanitize.Text(notes.Instructions),
	}
	for i, code := range d.diagnoses {
		s.ICDCodes[i] = DiagnosisCode{
			Value:       code.Value,
			Label:       code.Label,
			SnomedID:    code.SnomedID,
			ICDCode:     code.ICDCode,
			DiseaseType: code.DiseaseType,
			IsPrimary:   code.IsPrimary,
		}
	}
	for i, p := range d.prescriptions {
		s.Prescriptions[i] = PrescriptionLine{
			Medicine: PrescribedMedicine{
				ID:              p.Medicine.ID,
				ProductName:     p.Medicine.ProductName,
				SaltComposition: p.Medicine.SaltComposition,
				SubCategory:     p.Medicine.SubCategory,
				ProductPrice:    p.Medicine.ProductPrice,
			},
			Dose:      p.Dose,
			Frequency: p.Frequency,
			Duration:  p.Duration,
		}
	}
	return s, nil
}

// SavedMessage is shown after a diagnosis with n codes is stored.
func SavedMessage(n int) string {
	return fmt.Sprintf("Diagnosis saved successfully! %d ICD codes added.", n)
}
