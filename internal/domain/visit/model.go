// Package visit covers consultations: creating a visit, the ongoing visit
// list, and recording a diagnosis with prescriptions against a visit.
package visit

import (
	"strconv"
	"strings"
)

// FormData is the consultation form. Vitals are typed as text and are all
// optional.
type FormData struct {
	PatientID   string `json:"patientId" yaml:"patientId" validate:"required" label:"Patient"`
	DoctorID    string `json:"doctorId" yaml:"doctorId" validate:"required" label:"Doctor"`
	VisitType   string `json:"visitType" yaml:"visitType" validate:"required,oneof=CLINIC HOME ON_CALL FARM" label:"Visit type" msg:"Visit type must be CLINIC, HOME, ON_CALL or FARM"`
	Symptoms    string `json:"symptoms" yaml:"symptoms" validate:"required" label:"Symptoms"`
	Notes       string `json:"notes" yaml:"notes"`
	Temperature string `json:"temperature" yaml:"temperature" validate:"omitempty,numeric" label:"Temperature" msg:"Temperature must be a number"`
	Pulse       string `json:"pulse" yaml:"pulse" validate:"omitempty,numeric" label:"Pulse" msg:"Pulse must be a number"`
	Systolic    string `json:"systolic" yaml:"systolic" validate:"omitempty,numeric" label:"Systolic" msg:"Systolic must be a number"`
	Diastolic   string `json:"diastolic" yaml:"diastolic" validate:"omitempty,numeric" label:"Diastolic" msg:"Diastolic must be a number"`
	SpO2        string `json:"spo2" yaml:"spo2" validate:"omitempty,numeric" label:"SpO2" msg:"SpO2 must be a number"`
}

// NewForm starts a clinic visit.
func NewForm() FormData {
	return FormData{VisitType: "CLINIC"}
}

// Vitals as the API stores them. Unset readings are omitted.
type Vitals struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Pulse       *float64 `json:"pulse,omitempty"`
	BP          string   `json:"bp,omitempty"`
	SpO2        *float64 `json:"spo2,omitempty"`
}

// String renders the vitals the way the visit list shows them, skipping
// zero readings.
func (v Vitals) String() string {
	var parts []string
	if v.Temperature != nil && *v.Temperature != 0 {
		parts = append(parts, "Temp: "+num(*v.Temperature)+"°F")
	}
	if v.Pulse != nil && *v.Pulse != 0 {
		parts = append(parts, "Pulse: "+num(*v.Pulse)+" bpm")
	}
	if v.BP != "" {
		parts = append(parts, "BP: "+v.BP)
	}
	if v.SpO2 != nil && *v.SpO2 != 0 {
		parts = append(parts, "SpO2: "+num(*v.SpO2)+"%")
	}
	return strings.Join(parts, " | ")
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type CreatePayload struct {
	TenantID  string `json:"tenantId"`
	ClinicID  string `json:"clinicId"`
	PatientID string `json:"patientId"`
	DoctorID  string `json:"doctorId"`
	VisitType string `json:"visitType"`
	Vitals    Vitals `json:"vitals"`
	Symptoms  string `json:"symptoms"`
	Notes     string `json:"notes,omitempty"`
}

// UpdatePayload carries only the fields being changed.
type UpdatePayload struct {
	PatientID     *string `json:"patientId,omitempty"`
	DoctorID      *string `json:"doctorId,omitempty"`
	VisitType     *string `json:"visitType,omitempty"`
	Vitals        *Vitals `json:"vitals,omitempty"`
	Symptoms      *string `json:"symptoms,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	WorkflowState *string `json:"workflowState,omitempty"`
	NextVisitAt   *string `json:"nextVisitAt,omitempty"`
}

type PatientSummary struct {
	ID          string      `json:"id"`
	PseudonymID string      `json:"pseudonymId"`
	Type        string      `json:"type"`
	Age         int         `json:"age"`
	Sex         string      `json:"sex"`
	Species     string      `json:"species,omitempty"`
	Person      *PersonName `json:"person,omitempty"`
}

type PersonName struct {
	FullName string `json:"fullName"`
}

// Name is the patient's full name, or the pseudonym when the identity is
// not shared.
func (p PatientSummary) Name() string {
	if p.Person != nil && p.Person.FullName != "" {
		return p.Person.FullName
	}
	return p.PseudonymID
}

type DoctorSummary struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	EmailID  string     `json:"emailId"`
	Person   PersonName `json:"person"`
}

type ClinicSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClinicType string `json:"clinicType"`
}

// Visit is a consultation as the API returns it.
type Visit struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenantId"`
	ClinicID      string         `json:"clinicId"`
	PatientID     string         `json:"patientId"`
	DoctorID      string         `json:"doctorId"`
	VisitType     string         `json:"visitType"`
	StartedAt     string         `json:"startedAt,omitempty"`
	EndedAt       string         `json:"endedAt,omitempty"`
	Symptoms      string         `json:"symptoms"`
	Vitals        Vitals         `json:"vitals"`
	Notes         string         `json:"notes,omitempty"`
	WorkflowState string         `json:"workflowState,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
	NextVisitAt   string         `json:"nextVisitAt,omitempty"`
	Patient       PatientSummary `json:"patient"`
	Doctor        DoctorSummary  `json:"doctor"`
	Clinic        ClinicSummary  `json:"clinic"`
}
