package validation

import (
	"errors"
	"testing"
)

type address struct {
	Pin   string `validate:"required,len=6,numeric" label:"PIN" msg:"PIN must be 6 digits"`
	State string `validate:"required" label:"State"`
}

type form struct {
	Name  string `validate:"required" label:"Clinic name"`
	Phone string `validate:"required,phone" label:"Phone" msg:"Invalid phone format"`
	Email string `validate:"required,email" label:"Email"`
	address
}

func validForm() form {
	return form{
		Name:    "Sunrise Vet",
		Phone:   "+91 (80) 1234-5678",
		Email:   "desk@sunrise.test",
		address: address{Pin: "560001", State: "Karnataka"},
	}
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(validForm()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_Messages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*form)
		want   string
	}{
		{"required", func(f *form) { f.Name = "" }, "Clinic name required"},
		{"email", func(f *form) { f.Email = "nope" }, "Invalid email"},
		{"phone", func(f *form) { f.Phone = "call me" }, "Invalid phone format"},
		{"embedded length", func(f *form) { f.Pin = "5600" }, "PIN must be 6 digits"},
		{"embedded required", func(f *form) { f.State = "" }, "State required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := Struct(&f)
			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if verr.Message != tt.want {
				t.Errorf("expected %q, got %q", tt.want, verr.Message)
			}
		})
	}
}
