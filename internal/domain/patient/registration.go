package patient

import (
	"time"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
	"github.com/onehealth/clinicdesk/pkg/formvalues"
)

// MissingTenantMessage is shown when the session lacks tenant or clinic.
const MissingTenantMessage = "Tenant and clinic information not available. Please login again."

func Registration() submission.Entity[FormData, CreatePayload] {
	return submission.Entity[FormData, CreatePayload]{
		Name:                "patient",
		Path:                "/patients",
		SuccessMessage:      "Patient registered successfully!",
		FailureMessage:      "Failed to register patient",
		UnsuccessfulMessage: "Registration failed",
		LoginMessage:        "Please login first to register patient",
		Guard: func(user auth.User, _ FormData) error {
			if user.TenantID == "" || user.ClinicID == "" {
				return submission.Reject(MissingTenantMessage)
			}
			return nil
		},
		Map: ToPayload,
	}
}

// ToPayload maps the form for the user's current clinic. Age is the
// difference of calendar years between now and the date of birth.
func ToPayload(user auth.User, f FormData, now time.Time) (CreatePayload, error) {
	dob, err := formvalues.ParseDate(f.DateOfBirth)
	if err != nil {
		return CreatePayload{}, submission.Reject("Invalid date of birth")
	}
	iso, _ := formvalues.ISODate(f.DateOfBirth)

	clinicType := user.ClinicType()
	p := CreatePayload{
		TenantID:           user.TenantID,
		ClinicID:           user.ClinicID,
		Type:               clinicType,
		Age:                now.Year() - dob.Year(),
		Sex:                f.Gender,
		HasIdentifyingInfo: true,
		Address:            f.AddressFields.Payload().WithGeoLocation(),
		Person: Person{
			FullName:    f.FullName,
			Phone:       f.Phone,
			Email:       f.Email,
			DateOfBirth: iso,
			Sex:         f.Gender,
		},
	}
	if clinicType != auth.ClinicHuman {
		p.Species = f.Species
		p.Breed = f.Breed
		p.ExternalID = f.ExternalID
	}
	return p, nil
}
