package catalog

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/platform/apiclient/apitest"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
)

func TestLiveSearch(t *testing.T) {
	api := apitest.New().On(http.MethodGet, "/master/medicine_master", []Medicine{
		{ID: "m1", ProductName: "Dolo 650"},
	})
	live := newTestService(t, api).LiveSearch("tok", "PET")
	ctx := context.Background()

	got, err := live.Search(ctx, KindMedicine, "dolo")
	if err != nil {
		t.Fatal(err)
	}
	if meds, ok := got.([]Medicine); !ok || len(meds) != 1 {
		t.Errorf("unexpected medicines %#v", got)
	}

	if _, err := live.Search(ctx, KindDisease, "hip"); err != nil {
		t.Fatal(err)
	}
	if p := api.Last().Path; p != "/master/pet_disease_master/search" {
		t.Errorf("expected pet master, got %s", p)
	}

	if _, err := live.Search(ctx, "vaccine", "rabies"); err == nil {
		t.Error("expected unknown kind to fail")
	}
}

func TestHandler_Searcher(t *testing.T) {
	h := NewHandler(newTestService(t, apitest.New()), zerolog.Nop())
	c, _ := newContext(http.MethodGet, "/ws/search", auth.Session{}, auth.User{})
	if _, err := h.Searcher(c); err == nil {
		t.Error("expected signed-out upgrade to be refused")
	}

	user := auth.User{ClinicID: "cl-1", Clinics: []auth.ClinicRef{{ID: "cl-1", ClinicType: "LIVESTOCK"}}}
	c, _ = newContext(http.MethodGet, "/ws/search", signedIn, user)
	s, err := h.Searcher(c)
	if err != nil {
		t.Fatal(err)
	}
	if live, ok := s.(LiveSearch); !ok || live.clinicType != "LIVESTOCK" || live.token != "tok" {
		t.Errorf("unexpected searcher %#v", s)
	}
}
