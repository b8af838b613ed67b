package clinic

import (
	"time"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
)

// Registration describes clinic creation for the submitter.
func Registration() submission.Entity[FormData, CreatePayload] {
	return submission.Entity[FormData, CreatePayload]{
		Name:                "clinic",
		Path:                "/clinics",
		SuccessMessage:      "Clinic registered successfully!",
		FailureMessage:      "Failed to register clinic",
		UnsuccessfulMessage: "Registration failed",
		LoginMessage:        "Please login first to register a clinic",
		Map: func(_ auth.User, f FormData, _ time.Time) (CreatePayload, error) {
			return ToPayload(f), nil
		},
	}
}

// ToPayload maps the form. countryId falls back to IN and the address
// carries an empty geoLocation.
func ToPayload(f FormData) CreatePayload {
	addr := f.AddressFields.Payload().WithGeoLocation()
	if addr.CountryID == "" {
		addr.CountryID = DefaultCountryID
	}
	return CreatePayload{
		Name:       f.Name,
		ClinicType: f.ClinicType,
		IsActive:   f.IsActive,
		Phone:      f.Phone,
		Email:      f.Email,
		Address:    addr,
	}
}
