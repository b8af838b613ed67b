package patient

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/domain/location"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient/apitest"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
)

func completeForm() FormData {
	return FormData{
		FullName:    "Ravi Patil",
		Phone:       "9822012345",
		Gender:      "MALE",
		DateOfBirth: "1990-11-30",
		AddressFields: location.AddressFields{
			Pin:         "411001",
			State:       "Maharashtra",
			District:    "Pune",
			SubDistrict: "Haveli",
			Town:        "Wagholi",
			Address:     "House 7",
			CountryID:   "IN",
		},
		Species:    "DOG",
		Breed:      "Indie",
		ExternalID: "TAG-42",
	}
}

func userWithClinic(clinicType string) auth.User {
	return auth.User{
		TenantID: "t-1",
		ClinicID: "cl-1",
		Clinics:  []auth.ClinicRef{{ID: "cl-1", ClinicType: clinicType}},
	}
}

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func TestToPayload_Human(t *testing.T) {
	p, err := ToPayload(userWithClinic(auth.ClinicHuman), completeForm(), now)
	if err != nil {
		t.Fatal(err)
	}
	if p.Type != "HUMAN" || p.Age != 36 {
		t.Errorf("unexpected type/age %s/%d", p.Type, p.Age)
	}
	if p.Species != "" || p.Breed != "" || p.ExternalID != "" {
		t.Errorf("human patients carry no animal fields, got %+v", p)
	}
	if p.Person.DateOfBirth != "1990-11-30T00:00:00.000Z" || p.Person.Sex != "MALE" {
		t.Errorf("unexpected person %+v", p.Person)
	}
	if p.Address.GeoLocation == nil {
		t.Error("expected geoLocation")
	}

	b, _ := json.Marshal(p)
	var raw map[string]any
	_ = json.Unmarshal(b, &raw)
	person := raw["person"].(map[string]any)
	if _, ok := person["email"]; ok {
		t.Error("expected empty email omitted")
	}
	for _, key := range []string{"species", "breed", "externalId"} {
		if _, ok := raw[key]; ok {
			t.Errorf("expected %s omitted", key)
		}
	}
}

func TestToPayload_Animal(t *testing.T) {
	p, err := ToPayload(userWithClinic(auth.ClinicPet), completeForm(), now)
	if err != nil {
		t.Fatal(err)
	}
	if p.Type != "PET" || p.Species != "DOG" || p.Breed != "Indie" || p.ExternalID != "TAG-42" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestToPayload_UnknownClinicIsHuman(t *testing.T) {
	u := auth.User{TenantID: "t-1", ClinicID: "cl-9"}
	p, err := ToPayload(u, completeForm(), now)
	if err != nil {
		t.Fatal(err)
	}
	if p.Type != auth.ClinicHuman || p.Species != "" {
		t.Errorf("unexpected payload %+v", p)
	}
}

func TestRegistration_MissingTenant(t *testing.T) {
	api := apitest.New()
	sub := submission.New[FormData, CreatePayload, Patient](Registration(), api, zerolog.Nop())
	sess := auth.Session{AccessToken: "tok", SignedIn: true}

	out := sub.Submit(context.Background(), sess, auth.User{TenantID: "t-1"}, completeForm())
	if out.Message != MissingTenantMessage {
		t.Errorf("expected %q, got %q", MissingTenantMessage, out.Message)
	}
	if api.Count() != 0 {
		t.Errorf("expected no calls, got %d", api.Count())
	}
}

func TestRegistration_InvalidEmail(t *testing.T) {
	f := completeForm()
	f.Email = "not-an-email"
	sub := submission.New[FormData, CreatePayload, Patient](Registration(), apitest.New(), zerolog.Nop())
	out := sub.Submit(context.Background(), auth.Session{AccessToken: "tok", SignedIn: true}, userWithClinic("HUMAN"), f)
	if out.Message != "Invalid email" {
		t.Errorf("expected Invalid email, got %q", out.Message)
	}
}
