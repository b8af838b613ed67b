package staff

import (
	"time"

	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
)

const MissingTenantMessage = "Tenant information not available. Please login again."

func Registration() submission.Entity[FormData, CreatePayload] {
	return submission.Entity[FormData, CreatePayload]{
		Name:                "staff",
		Path:                "/users/staff",
		SuccessMessage:      "Staff registered successfully!",
		FailureMessage:      "Failed to register staff",
		UnsuccessfulMessage: "Registration failed",
		LoginMessage:        "Please login first to register staff",
		Guard: func(user auth.User, f FormData) error {
			if user.TenantID == "" {
				return submission.Reject(MissingTenantMessage)
			}
			if f.Password != f.ConfirmPassword {
				return submission.Reject("Passwords do not match")
			}
			return nil
		},
		Map: func(user auth.User, f FormData, _ time.Time) (CreatePayload, error) {
			return ToPayload(user, f), nil
		},
	}
}

func ToPayload(user auth.User, f FormData) CreatePayload {
	return CreatePayload{
		TenantID:    user.TenantID,
		ClinicID:    f.ClinicID,
		Name:        f.FullName,
		PhoneNumber: f.Phone,
		Email:       f.Email,
		Username:    f.Username,
		Password:    f.Password,
		Sex:         f.Gender,
		RoleID:      f.RoleID,
	}
}
