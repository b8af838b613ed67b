package staff

// FormData is the staff registration form. The joining date is collected
// but not sent.
type FormData struct {
	FullName        string `json:"fullName" yaml:"fullName" validate:"required" label:"Full name"`
	Phone           string `json:"phone" yaml:"phone" validate:"required,phone" label:"Phone" msg:"Invalid phone format"`
	Email           string `json:"email" yaml:"email" validate:"required,email" label:"Email"`
	Username        string `json:"username" yaml:"username" validate:"required,min=3" label:"Username" msg:"Username must be at least 3 characters"`
	Password        string `json:"password" yaml:"password" validate:"required,min=6" label:"Password" msg:"Password must be at least 6 characters"`
	ConfirmPassword string `json:"confirmPassword" yaml:"confirmPassword" validate:"required,eqfield=Password" label:"Confirm password" msg:"Passwords must match"`
	Gender          string `json:"gender" yaml:"gender" validate:"required" label:"Gender"`
	RoleID          string `json:"roleId" yaml:"roleId" validate:"required" label:"Role"`
	ClinicID        string `json:"clinicId" yaml:"clinicId" validate:"required" label:"Clinic"`
	DateOfJoining   string `json:"dateOfJoining" yaml:"dateOfJoining"`
}

func NewForm() FormData {
	return FormData{}
}

type CreatePayload struct {
	TenantID    string `json:"tenantId"`
	ClinicID    string `json:"clinicId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Sex         string `json:"sex"`
	RoleID      string `json:"roleId"`
}

// UpdatePayload carries only the fields being changed.
type UpdatePayload struct {
	Name        *string `json:"name,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Email       *string `json:"email,omitempty"`
	Sex         *string `json:"sex,omitempty"`
	RoleID      *string `json:"roleId,omitempty"`
	ClinicID    *string `json:"clinicId,omitempty"`
}

// Role is an assignable staff role.
type Role struct {
	ID           string  `json:"id"`
	RoleName     string  `json:"roleName"`
	RoleCategory *string `json:"roleCategory"`
	Priority     int     `json:"priority"`
	IsActive     bool    `json:"isActive"`
	CreatedAt    string  `json:"createdAt,omitempty"`
	CreatedBy    string  `json:"createdBy,omitempty"`
	UpdatedAt    string  `json:"updatedAt,omitempty"`
	UpdatedBy    string  `json:"updatedBy,omitempty"`
}

type Account struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	EmailID      string `json:"emailId"`
	MobileNumber string `json:"mobileNumber"`
	TenantID     string `json:"tenantId"`
	PersonID     string `json:"personId"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type Person struct {
	ID        string `json:"id"`
	TenantID  string `json:"tenantId"`
	Type      string `json:"type"`
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Sex       string `json:"sex"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type UserRole struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	RoleID   string `json:"roleId"`
	Priority int    `json:"priority"`
}

type UserClinic struct {
	ID           string `json:"id"`
	UserID       string `json:"userId"`
	ClinicID     string `json:"clinicId"`
	RoleInClinic string `json:"roleInClinic"`
}

// Member is a staff account as the API returns it.
type Member struct {
	User       Account     `json:"user"`
	Person     Person      `json:"person"`
	UserRole   *UserRole   `json:"userRole,omitempty"`
	UserClinic *UserClinic `json:"userClinic,omitempty"`
}
