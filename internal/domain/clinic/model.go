package clinic

import (
	"github.com/onehealth/clinicdesk/internal/domain/location"
)

// Clinic types accepted by the API. Note the clinic form spells livestock
// with an underscore.
const (
	TypeHuman     = "HUMAN"
	TypePet       = "PET"
	TypeLivestock = "LIVE_STOCK"
)

// DefaultCountryID is used when the pincode lookup has not set one.
const DefaultCountryID = "IN"

// FormData is the clinic registration form.
type FormData struct {
	Name       string `json:"name" yaml:"name" validate:"required" label:"Clinic name"`
	ClinicType string `json:"clinicType" yaml:"clinicType" validate:"required" label:"Clinic type"`
	IsActive   bool   `json:"isActive" yaml:"isActive"`
	Phone      string `json:"phone" yaml:"phone" validate:"required,phone" label:"Phone" msg:"Invalid phone format"`
	Email      string `json:"email" yaml:"email" validate:"required,email" label:"Email"`

	location.AddressFields `yaml:",inline"`
}

// NewForm returns the initial form values.
func NewForm() FormData {
	return FormData{
		IsActive: true,
		AddressFields: location.AddressFields{
			CountryID:   DefaultCountryID,
			CountryName: location.DefaultCountryName,
		},
	}
}

type CreatePayload struct {
	Name       string           `json:"name"`
	ClinicType string           `json:"clinicType"`
	IsActive   bool             `json:"isActive"`
	Phone      string           `json:"phone"`
	Email      string           `json:"email"`
	Address    location.Payload `json:"address"`
}

// UpdatePayload carries only the fields being changed.
type UpdatePayload struct {
	Name       *string           `json:"name,omitempty"`
	ClinicType *string           `json:"clinicType,omitempty"`
	IsActive   *bool             `json:"isActive,omitempty"`
	Phone      *string           `json:"phone,omitempty"`
	Email      *string           `json:"email,omitempty"`
	Address    *location.Payload `json:"address,omitempty"`
}

type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Counts struct {
	Patients     int `json:"patients"`
	Appointments int `json:"appointments"`
	Visits       int `json:"visits"`
}

// Clinic is the API's clinic resource.
type Clinic struct {
	ID         string            `json:"id"`
	TenantID   string            `json:"tenantId"`
	Name       string            `json:"name"`
	ClinicType string            `json:"clinicType"`
	IsActive   bool              `json:"isActive"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	CreatedAt  string            `json:"createdAt,omitempty"`
	UpdatedAt  string            `json:"updatedAt,omitempty"`
	Tenant     *Tenant           `json:"tenant,omitempty"`
	Address    *location.Summary `json:"address,omitempty"`
	Count      *Counts           `json:"_count,omitempty"`
}
