package visit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/sanitize"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
)

const MissingTenantMessage = "Tenant and clinic information not available. Please login again."

// Registration creates a consultation for the user's current clinic.
func Registration() submission.Entity[FormData, CreatePayload] {
	return submission.Entity[FormData, CreatePayload]{
		Name:                "consultation",
		Path:                "/patients/visits",
		SuccessMessage:      "Consultation saved successfully!",
		FailureMessage:      "Failed to save consultation",
		UnsuccessfulMessage: "Failed to save consultation",
		LoginMessage:        "Please login first to create consultation",
		Guard: func(user auth.User, _ FormData) error {
			if user.TenantID == "" || user.ClinicID == "" {
				return submission.Reject(MissingTenantMessage)
			}
			return nil
		},
		Map: func(user auth.User, f FormData, _ time.Time) (CreatePayload, error) {
			return ToPayload(user, f)
		},
	}
}

func ToPayload(user auth.User, f FormData) (CreatePayload, error) {
	vitals, err := ParseVitals(f)
	if err != nil {
		return CreatePayload{}, submission.Reject(err.Error())
	}
	return CreatePayload{
		TenantID:  user.TenantID,
		ClinicID:  user.ClinicID,
		PatientID: f.PatientID,
		DoctorID:  f.DoctorID,
		VisitType: f.VisitType,
		Vitals:    vitals,
		Symptoms:  sanitize.Text(f.Symptoms),
		Notes:     sanitize.Text(f.Notes),
	}, nil
}

// ParseVitals reads the typed readings. Blank readings stay unset and the
// blood pressure is only recorded when both values are given.
func ParseVitals(f FormData) (Vitals, error) {
	var v Vitals
	var err error
	if v.Temperature, err = optionalFloat("Temperature", f.Temperature); err != nil {
		return Vitals{}, err
	}
	if v.Pulse, err = optionalFloat("Pulse", f.Pulse); err != nil {
		return Vitals{}, err
	}
	if v.SpO2, err = optionalFloat("SpO2", f.SpO2); err != nil {
		return Vitals{}, err
	}
	sys, dia := strings.TrimSpace(f.Systolic), strings.TrimSpace(f.Diastolic)
	if sys != "" && dia != "" {
		v.BP = sys + "/" + dia
	}
	return v, nil
}

func optionalFloat(label, s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s must be a number", label)
	}
	return &f, nil
}
