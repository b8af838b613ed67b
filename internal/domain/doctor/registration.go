package doctor

import (
	"time"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
	"github.com/onehealth/clinicdesk/pkg/formvalues"
)

func Registration() submission.Entity[FormData, CreatePayload] {
	return submission.Entity[FormData, CreatePayload]{
		Name:                "doctor",
		Path:                "/clinics/doctors",
		SuccessMessage:      "Doctor registered successfully!",
		FailureMessage:      "Failed to register doctor",
		UnsuccessfulMessage: "Registration failed",
		LoginMessage:        "Please login first to register a doctor",
		Guard: func(_ auth.User, f FormData) error {
			if f.Password != f.ConfirmPassword {
				return submission.Reject("Passwords do not match")
			}
			return nil
		},
		Map: func(user auth.User, f FormData, _ time.Time) (CreatePayload, error) {
			return ToPayload(user, f)
		},
	}
}

// ToPayload maps the form. The tenant comes from the selected clinic when
// the form has it, otherwise from the signed-in user.
func ToPayload(user auth.User, f FormData) (CreatePayload, error) {
	p := CreatePayload{
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		MiddleName: f.MiddleName,
		Phone:      f.Phone,
		Email:      f.Email,
		Username:   f.Username,
		Password:   f.Password,
		ClinicID:   f.ClinicID,
		TenantID:   f.TenantID,
		Sex:        f.Sex,
		Address:    f.AddressFields.Payload(),
	}
	if p.TenantID == "" {
		p.TenantID = user.TenantID
	}
	if f.DateOfBirth != "" {
		dob, err := formvalues.ISODate(f.DateOfBirth)
		if err != nil {
			return CreatePayload{}, submission.Reject("Invalid date of birth")
		}
		p.DateOfBirth = dob
	}
	return p, nil
}
