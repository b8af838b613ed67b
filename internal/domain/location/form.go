package location

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrNotAnOption is returned when a selection is not offered by the current
// records and higher-level selections.
var ErrNotAnOption = errors.New("not an available option")

// LookupResult says what a pincode change did to the form.
type LookupResult int

const (
	// Reset: the pin is incomplete; no lookup was made.
	Reset LookupResult = iota
	// Resolved: records arrived and state/country were filled in.
	Resolved
	// Empty: the lookup found nothing.
	Empty
	// Failed: the lookup errored; the failure is logged only.
	Failed
)

func (r LookupResult) String() string {
	switch r {
	case Resolved:
		return "resolved"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	default:
		return "reset"
	}
}

func (r LookupResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// AddressForm drives the pin → district → sub-district → town cascade over
// a form's AddressFields. The lock is not held across the lookup, so
// overlapping pincode changes resolve in arrival order and the last
// response wins.
type AddressForm struct {
	mu      sync.Mutex
	lookup  Lookuper
	fields  *AddressFields
	records []GeographyRecord
	logger  zerolog.Logger
}

func NewAddressForm(lookup Lookuper, fields *AddressFields, logger zerolog.Logger) *AddressForm {
	return &AddressForm{lookup: lookup, fields: fields, logger: logger}
}

// ChangePincode stores pin and, when it is six digits, looks it up. On
// records the state and country come from the first record and the lower
// levels start empty, even when there is exactly one record.
func (f *AddressForm) ChangePincode(ctx context.Context, pin string) LookupResult {
	f.mu.Lock()
	f.fields.Pin = pin
	if !ValidPincode(pin) {
		f.resetLocked()
		f.mu.Unlock()
		return Reset
	}
	f.mu.Unlock()

	records, err := f.lookup.Lookup(ctx, pin)

	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case err != nil:
		f.logger.Warn().Err(err).Str("pin", pin).Msg("pincode lookup failed")
		f.resetLocked()
		return Failed
	case len(records) == 0:
		f.resetLocked()
		return Empty
	}

	f.records = records
	fill := autofillFrom(records[0])
	f.fields.State = fill.State
	f.fields.StateCode = fill.StateCode
	f.fields.CountryID = fill.CountryID
	f.fields.CountryName = fill.CountryName
	f.clearDistrictLocked()
	return Resolved
}

// SelectDistrict sets the district and its code from the first matching
// record, then clears sub-district and town. An empty name clears the
// selection.
func (f *AddressForm) SelectDistrict(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if name != "" && !contains(Districts(f.records), name) {
		return fmt.Errorf("district %q: %w", name, ErrNotAnOption)
	}
	f.clearDistrictLocked()
	f.fields.District = name
	for _, r := range f.records {
		if name != "" && r.District.DistrictNameIntlang == name {
			f.fields.DistrictCode = r.District.DistrictCode
			break
		}
	}
	return nil
}

// SelectSubDistrict sets the sub-district within the selected district and
// clears the town.
func (f *AddressForm) SelectSubDistrict(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	district := f.fields.District
	if name != "" && !contains(SubDistricts(f.records, district), name) {
		return fmt.Errorf("sub-district %q: %w", name, ErrNotAnOption)
	}
	f.clearSubDistrictLocked()
	f.fields.SubDistrict = name
	for _, r := range f.records {
		if name != "" && within(r, district, name) {
			f.fields.SubDistrictCode = r.SubDistrict.SubDistrictCode
			break
		}
	}
	return nil
}

// SelectTown sets the town within the selected district and sub-district.
func (f *AddressForm) SelectTown(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	district, sub := f.fields.District, f.fields.SubDistrict
	if name != "" && !contains(Towns(f.records, district, sub), name) {
		return fmt.Errorf("town %q: %w", name, ErrNotAnOption)
	}
	f.fields.Town = name
	f.fields.TownCode = ""
	for _, r := range f.records {
		if name != "" && within(r, district, sub) && r.Town.TownNameIntlang == name {
			f.fields.TownCode = r.Town.TownCode
			break
		}
	}
	return nil
}

func (f *AddressForm) Options() Options {
	f.mu.Lock()
	defer f.mu.Unlock()
	return OptionsFor(f.records, f.fields.District, f.fields.SubDistrict)
}

func (f *AddressForm) Records() []GeographyRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]GeographyRecord, len(f.records))
	copy(out, f.records)
	return out
}

// Fields returns a copy of the bound address.
func (f *AddressForm) Fields() AddressFields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.fields
}

// Reset drops the records. Callers that restore the whole form to initial
// values use this as their post-reset hook.
func (f *AddressForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = nil
}

// resetLocked drops the records and every derived field. Country stays as
// it was.
func (f *AddressForm) resetLocked() {
	f.records = nil
	f.fields.State = ""
	f.fields.StateCode = ""
	f.clearDistrictLocked()
}

func (f *AddressForm) clearDistrictLocked() {
	f.fields.District = ""
	f.fields.DistrictCode = ""
	f.clearSubDistrictLocked()
}

func (f *AddressForm) clearSubDistrictLocked() {
	f.fields.SubDistrict = ""
	f.fields.SubDistrictCode = ""
	f.fields.Town = ""
	f.fields.TownCode = ""
}
