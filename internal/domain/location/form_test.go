package location

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func filledFields() AddressFields {
	return AddressFields{
		Pin:             "411001",
		State:           "Maharashtra",
		StateCode:       "27",
		District:        "Pune",
		DistrictCode:    "521",
		SubDistrict:     "Haveli",
		SubDistrictCode: "4170",
		Town:            "Wagholi",
		TownCode:        "556001",
		Address:         "12 Main Road",
		CountryID:       "IN",
		CountryName:     "India",
	}
}

func TestChangePincode_IncompleteResetsWithoutLookup(t *testing.T) {
	lookup := &fakeLookup{results: map[string][]GeographyRecord{"411001": sampleRecords()}}
	fields := filledFields()
	form := NewAddressForm(lookup, &fields, zerolog.Nop())

	for _, pin := range []string{"", "4", "41100", "4110012"} {
		if got := form.ChangePincode(context.Background(), pin); got != Reset {
			t.Errorf("pin %q: expected Reset, got %s", pin, got)
		}
	}
	if lookup.callCount() != 0 {
		t.Errorf("expected no lookups, got %d", lookup.callCount())
	}

	want := AddressFields{Pin: "4110012", Address: "12 Main Road", CountryID: "IN", CountryName: "India"}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if len(form.Records()) != 0 {
		t.Error("expected records to be cleared")
	}
}

func TestChangePincode_ResolvedFillsStateAndClearsLowerLevels(t *testing.T) {
	single := sampleRecords()[:1]
	lookup := &fakeLookup{results: map[string][]GeographyRecord{"411001": single}}
	fields := filledFields()
	fields.CountryID, fields.CountryName = "", ""
	form := NewAddressForm(lookup, &fields, zerolog.Nop())

	if got := form.ChangePincode(context.Background(), "411001"); got != Resolved {
		t.Fatalf("expected Resolved, got %s", got)
	}

	want := AddressFields{
		Pin:         "411001",
		State:       "Maharashtra",
		StateCode:   "27",
		Address:     "12 Main Road",
		CountryID:   "IN",
		CountryName: "India",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if lookup.callCount() != 1 {
		t.Errorf("expected 1 lookup, got %d", lookup.callCount())
	}
}

func TestChangePincode_EmptyAndFailedReset(t *testing.T) {
	tests := []struct {
		name   string
		lookup *fakeLookup
		want   LookupResult
	}{
		{"empty", &fakeLookup{results: map[string][]GeographyRecord{}}, Empty},
		{"failed", &fakeLookup{err: errors.New("connection refused")}, Failed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := filledFields()
			form := NewAddressForm(tt.lookup, &fields, zerolog.Nop())
			if got := form.ChangePincode(context.Background(), "411001"); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
			if fields.State != "" || fields.District != "" || fields.SubDistrict != "" || fields.Town != "" {
				t.Errorf("expected derived fields cleared, got %+v", fields)
			}
			if fields.DistrictCode != "" || fields.SubDistrictCode != "" || fields.TownCode != "" {
				t.Errorf("expected codes cleared, got %+v", fields)
			}
			if len(form.Records()) != 0 {
				t.Error("expected no records")
			}
		})
	}
}

func TestCascade_SelectionsFilterAndClear(t *testing.T) {
	lookup := &fakeLookup{results: map[string][]GeographyRecord{"411001": sampleRecords()}}
	var fields AddressFields
	form := NewAddressForm(lookup, &fields, zerolog.Nop())
	form.ChangePincode(context.Background(), "411001")

	opts := form.Options()
	if diff := cmp.Diff([]string{"Pune", "Satara"}, opts.Districts); diff != "" {
		t.Errorf("districts (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Haveli", "Pune City", "Wai"}, opts.SubDistricts); diff != "" {
		t.Errorf("unfiltered sub-districts (-want +got):\n%s", diff)
	}
	if len(opts.Towns) != 4 {
		t.Errorf("expected all towns before a district is chosen, got %v", opts.Towns)
	}

	if err := form.SelectDistrict("Pune"); err != nil {
		t.Fatalf("SelectDistrict: %v", err)
	}
	if fields.DistrictCode != "521" {
		t.Errorf("expected district code 521, got %q", fields.DistrictCode)
	}
	if diff := cmp.Diff([]string{"Haveli", "Pune City"}, form.Options().SubDistricts); diff != "" {
		t.Errorf("sub-districts (-want +got):\n%s", diff)
	}

	if err := form.SelectSubDistrict("Haveli"); err != nil {
		t.Fatalf("SelectSubDistrict: %v", err)
	}
	if diff := cmp.Diff([]string{"Wagholi", "Lohegaon"}, form.Options().Towns); diff != "" {
		t.Errorf("towns (-want +got):\n%s", diff)
	}
	if err := form.SelectTown("Lohegaon"); err != nil {
		t.Fatalf("SelectTown: %v", err)
	}
	if fields.TownCode != "556002" {
		t.Errorf("expected town code 556002, got %q", fields.TownCode)
	}

	// Changing the district clears everything below it.
	if err := form.SelectDistrict("Satara"); err != nil {
		t.Fatalf("SelectDistrict: %v", err)
	}
	if fields.DistrictCode != "522" {
		t.Errorf("expected district code 522, got %q", fields.DistrictCode)
	}
	if fields.SubDistrict != "" || fields.SubDistrictCode != "" || fields.Town != "" || fields.TownCode != "" {
		t.Errorf("expected lower levels cleared, got %+v", fields)
	}
	if diff := cmp.Diff([]string{"Wai"}, form.Options().SubDistricts); diff != "" {
		t.Errorf("sub-districts (-want +got):\n%s", diff)
	}
}

func TestCascade_RejectsInconsistentSelection(t *testing.T) {
	lookup := &fakeLookup{results: map[string][]GeographyRecord{"411001": sampleRecords()}}
	var fields AddressFields
	form := NewAddressForm(lookup, &fields, zerolog.Nop())
	form.ChangePincode(context.Background(), "411001")

	if err := form.SelectDistrict("Mumbai"); !errors.Is(err, ErrNotAnOption) {
		t.Errorf("expected ErrNotAnOption, got %v", err)
	}
	if err := form.SelectDistrict("Satara"); err != nil {
		t.Fatal(err)
	}
	if err := form.SelectSubDistrict("Haveli"); !errors.Is(err, ErrNotAnOption) {
		t.Errorf("expected ErrNotAnOption for a sub-district outside Satara, got %v", err)
	}
	if err := form.SelectTown("Wagholi"); !errors.Is(err, ErrNotAnOption) {
		t.Errorf("expected ErrNotAnOption for a town outside Satara, got %v", err)
	}
	if fields.District != "Satara" {
		t.Errorf("rejected selections must not change the form, got %+v", fields)
	}
}

func TestOptionsFor_Pure(t *testing.T) {
	records := sampleRecords()
	got := OptionsFor(records, "Pune", "Pune City")
	want := Options{
		Districts:    []string{"Pune", "Satara"},
		SubDistricts: []string{"Haveli", "Pune City"},
		Towns:        []string{"Kasba Peth"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
	if n := len(OptionsFor(nil, "", "").Districts); n != 0 {
		t.Errorf("expected no districts, got %d", n)
	}
}
