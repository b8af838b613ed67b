package patient

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/onehealth/clinicdesk/internal/domain/location"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient/apitest"
)

func TestService_List(t *testing.T) {
	api := apitest.New().On(http.MethodGet, "/patients", []Patient{{ID: "p-1"}, {ID: "p-2"}})
	svc := NewService(api)

	out, err := svc.List(context.Background(), "tok", "cl-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 patients, got %d", len(out))
	}
	if diff := cmp.Diff(map[string]string{"clinicId": "cl-1"}, api.Last().Query); diff != "" {
		t.Errorf("query (-want +got):\n%s", diff)
	}

	if _, err := svc.List(context.Background(), "tok", ""); err != nil {
		t.Fatal(err)
	}
	if api.Last().Query != nil {
		t.Errorf("expected no query without a clinic, got %v", api.Last().Query)
	}
}

func TestService_GetEscapesID(t *testing.T) {
	api := apitest.New().On(http.MethodGet, "/patients/a%2Fb", Patient{ID: "a/b", PseudonymID: "PX-9"})

	p, err := NewService(api).Get(context.Background(), "tok", "a/b")
	if err != nil {
		t.Fatal(err)
	}
	if p.PseudonymID != "PX-9" {
		t.Errorf("unexpected patient %+v", p)
	}
	if got := api.Last(); got.Path != "/patients/a%2Fb" || got.Token != "tok" {
		t.Errorf("unexpected call %+v", got)
	}
}

func TestService_Update(t *testing.T) {
	api := apitest.New().On(http.MethodPut, "/patients/p-1", Patient{ID: "p-1", Breed: "Gir"})
	breed := "Gir"
	pin := location.Payload{Pin: "411001"}

	p, err := NewService(api).Update(context.Background(), "tok", "p-1", UpdatePayload{Breed: &breed, Address: &pin})
	if err != nil {
		t.Fatal(err)
	}
	if p.Breed != "Gir" {
		t.Errorf("unexpected patient %+v", p)
	}
	body, ok := api.Last().Body.(UpdatePayload)
	if !ok || body.Breed == nil || *body.Breed != "Gir" || body.Sex != nil {
		t.Errorf("unexpected body %+v", api.Last().Body)
	}
}

func TestService_Delete(t *testing.T) {
	api := apitest.New()
	if err := NewService(api).Delete(context.Background(), "tok", "p-1"); err != nil {
		t.Fatal(err)
	}
	if got := api.Last(); got.Method != http.MethodDelete || got.Path != "/patients/p-1" {
		t.Errorf("unexpected call %+v", got)
	}
}

func TestService_ErrorsKeepUpstreamStatus(t *testing.T) {
	notFound := &apiclient.Error{Status: http.StatusNotFound, Message: "Patient not found"}
	api := apitest.New().
		Fail(http.MethodGet, "/patients/p-404", notFound).
		Fail(http.MethodDelete, "/patients/p-404", notFound)
	svc := NewService(api)

	_, getErr := svc.Get(context.Background(), "tok", "p-404")
	delErr := svc.Delete(context.Background(), "tok", "p-404")
	for _, err := range []error{getErr, delErr} {
		var apiErr *apiclient.Error
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusNotFound {
			t.Errorf("expected wrapped 404, got %v", err)
		}
	}
}
