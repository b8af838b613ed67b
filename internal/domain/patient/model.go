package patient

import (
	"github.com/onehealth/clinicdesk/internal/domain/location"
)

// FormData is the patient registration form. Species, breed and external
// id only apply to PET and LIVESTOCK clinics.
type FormData struct {
	FullName    string `json:"fullName" yaml:"fullName" validate:"required" label:"Full Name"`
	Phone       string `json:"phone" yaml:"phone" validate:"required,phone" label:"Phone" msg:"Invalid phone format"`
	Email       string `json:"email" yaml:"email" validate:"omitempty,email" label:"Email"`
	Gender      string `json:"gender" yaml:"gender" validate:"required" label:"Gender"`
	DateOfBirth string `json:"dateOfBirth" yaml:"dateOfBirth" validate:"required" label:"DOB"`

	location.AddressFields `yaml:",inline"`

	Species    string `json:"species" yaml:"species"`
	Breed      string `json:"breed" yaml:"breed"`
	ExternalID string `json:"externalId" yaml:"externalId"`
}

func NewForm() FormData {
	return FormData{}
}

type Person struct {
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth"`
	Sex         string `json:"sex"`
}

type CreatePayload struct {
	TenantID           string           `json:"tenantId"`
	ClinicID           string           `json:"clinicId"`
	Type               string           `json:"type"`
	Age                int              `json:"age"`
	Sex                string           `json:"sex"`
	Species            string           `json:"species,omitempty"`
	Breed              string           `json:"breed,omitempty"`
	HasIdentifyingInfo bool             `json:"hasIdentifyingInfo"`
	ExternalID         string           `json:"externalId,omitempty"`
	Address            location.Payload `json:"address"`
	Person             Person           `json:"person"`
}

// UpdatePayload carries only the fields being changed.
type UpdatePayload struct {
	Age        *int              `json:"age,omitempty"`
	Sex        *string           `json:"sex,omitempty"`
	Species    *string           `json:"species,omitempty"`
	Breed      *string           `json:"breed,omitempty"`
	ExternalID *string           `json:"externalId,omitempty"`
	Address    *location.Payload `json:"address,omitempty"`
	Person     *Person           `json:"person,omitempty"`
}

type IdentityPerson struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Email       string `json:"email,omitempty"`
	DateOfBirth string `json:"dateOfBirth"`
	Sex         string `json:"sex"`
	Type        string `json:"type"`
}

type Identity struct {
	ID        string         `json:"id"`
	PatientID string         `json:"patientId"`
	PersonID  string         `json:"personId"`
	CreatedAt string         `json:"createdAt,omitempty"`
	Person    IdentityPerson `json:"person"`
}

type ClinicRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClinicType string `json:"clinicType"`
}

// Patient is the API's patient resource.
type Patient struct {
	ID                 string            `json:"id"`
	TenantID           string            `json:"tenantId"`
	ClinicID           string            `json:"clinicId"`
	PseudonymID        string            `json:"pseudonymId"`
	Type               string            `json:"type"`
	Age                int               `json:"age"`
	Sex                string            `json:"sex"`
	Species            string            `json:"species,omitempty"`
	Breed              string            `json:"breed,omitempty"`
	HasIdentifyingInfo bool              `json:"hasIdentifyingInfo"`
	ExternalID         string            `json:"externalId,omitempty"`
	OwnerID            string            `json:"ownerId,omitempty"`
	CreatedAt          string            `json:"createdAt,omitempty"`
	UpdatedAt          string            `json:"updatedAt,omitempty"`
	AddressID          string            `json:"addressId,omitempty"`
	Clinic             *ClinicRef        `json:"clinic,omitempty"`
	Address            *location.Summary `json:"address,omitempty"`
	Identities         *Identity         `json:"identities,omitempty"`
}

// DisplayName is the identity's full name, or the pseudonym when the
// patient has no identifying information.
func (p Patient) DisplayName() string {
	if p.Identities != nil && p.Identities.Person.FullName != "" {
		return p.Identities.Person.FullName
	}
	return p.PseudonymID
}
