package doctor

import (
	"github.com/onehealth/clinicdesk/internal/domain/location"
)

// FormData is the doctor registration form. Qualifications, licence number
// and experience are collected but not sent.
type FormData struct {
	FirstName         string `json:"firstName" yaml:"firstName" validate:"required" label:"First name"`
	LastName          string `json:"lastName" yaml:"lastName" validate:"required" label:"Last name"`
	MiddleName        string `json:"middleName" yaml:"middleName"`
	Phone             string `json:"phone" yaml:"phone" validate:"required,phone" label:"Phone" msg:"Invalid phone format"`
	Email             string `json:"email" yaml:"email" validate:"required,email" label:"Email"`
	Username          string `json:"username" yaml:"username" validate:"required,min=3" label:"Username" msg:"Username must be at least 3 characters"`
	Password          string `json:"password" yaml:"password" validate:"required,min=6" label:"Password" msg:"Password must be at least 6 characters"`
	ConfirmPassword   string `json:"confirmPassword" yaml:"confirmPassword" validate:"required,eqfield=Password" label:"Confirm password" msg:"Passwords must match"`
	ClinicID          string `json:"clinicId" yaml:"clinicId" validate:"required" label:"Clinic"`
	TenantID          string `json:"tenantId" yaml:"tenantId"`
	Sex               string `json:"sex" yaml:"sex" validate:"required" label:"Gender"`
	DateOfBirth       string `json:"dateOfBirth" yaml:"dateOfBirth"`
	Qualifications    string `json:"qualifications" yaml:"qualifications"`
	LicenseNumber     string `json:"licenseNumber" yaml:"licenseNumber"`
	YearsOfExperience string `json:"yearsOfExperience" yaml:"yearsOfExperience"`

	location.AddressFields `yaml:",inline"`
}

func NewForm() FormData {
	return FormData{}
}

type CreatePayload struct {
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	MiddleName      string           `json:"middleName,omitempty"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Username        string           `json:"username"`
	Password        string           `json:"password"`
	ClinicID        string           `json:"clinicId"`
	TenantID        string           `json:"tenantId,omitempty"`
	Sex             string           `json:"sex"`
	DateOfBirth     string           `json:"dateOfBirth,omitempty"`
	Address         location.Payload `json:"address"`
	ExternalID      string           `json:"externalId,omitempty"`
	SignatureURL    string           `json:"signatureUrl,omitempty"`
	ProfileImageURL string           `json:"profileImageUrl,omitempty"`
}

// UpdatePayload carries only the fields being changed.
type UpdatePayload struct {
	FirstName   *string           `json:"firstName,omitempty"`
	LastName    *string           `json:"lastName,omitempty"`
	MiddleName  *string           `json:"middleName,omitempty"`
	Phone       *string           `json:"phone,omitempty"`
	Email       *string           `json:"email,omitempty"`
	Sex         *string           `json:"sex,omitempty"`
	DateOfBirth *string           `json:"dateOfBirth,omitempty"`
	ClinicID    *string           `json:"clinicId,omitempty"`
	Address     *location.Payload `json:"address,omitempty"`
}

type Account struct {
	ID                     string `json:"id"`
	Username               string `json:"username"`
	EmailID                string `json:"emailId"`
	MobileNumber           string `json:"mobileNumber"`
	EmailVerified          bool   `json:"emailVerified"`
	MobileValidationStatus bool   `json:"mobileValidationStatus"`
	IsLocked               bool   `json:"isLocked"`
	ProfilePictureURL      string `json:"profilePictureUrl,omitempty"`
	TenantID               string `json:"tenantId"`
	CreatedAt              string `json:"createdAt,omitempty"`
	UpdatedAt              string `json:"updatedAt,omitempty"`
}

type PersonMetadata struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	MiddleName      string `json:"middleName,omitempty"`
	ExternalID      string `json:"externalId,omitempty"`
	SignatureURL    string `json:"signatureUrl,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

type Person struct {
	ID          string            `json:"id"`
	TenantID    string            `json:"tenantId"`
	Type        string            `json:"type"`
	FullName    string            `json:"fullName"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	DateOfBirth string            `json:"dateOfBirth,omitempty"`
	Sex         string            `json:"sex"`
	Metadata    PersonMetadata    `json:"metadata"`
	AddressID   string            `json:"addressId,omitempty"`
	Address     *location.Summary `json:"address,omitempty"`
}

type ClinicRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ClinicType string `json:"clinicType"`
	IsActive   bool   `json:"isActive"`
}

// Doctor is a list entry: the login account, the person and the clinic.
type Doctor struct {
	User   Account   `json:"user"`
	Person Person    `json:"person"`
	Clinic ClinicRef `json:"clinic"`
}

// Created is the create response.
type Created struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	MiddleName  string            `json:"middleName,omitempty"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Username    string            `json:"username"`
	ClinicID    string            `json:"clinicId"`
	TenantID    string            `json:"tenantId"`
	Sex         string            `json:"sex"`
	DateOfBirth string            `json:"dateOfBirth,omitempty"`
	Address     *location.Summary `json:"address,omitempty"`
}
