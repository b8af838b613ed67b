package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/onehealth/clinicdesk/internal/domain/location"
)

// ErrNoLocation is returned when the user gives up on finding a pincode.
var ErrNoLocation = errors.New("no location selected")

// FillAddress walks the user through pin, district, taluka and village,
// then asks for the street address. A pin already in fields is tried
// first.
func FillAddress(ctx context.Context, p Prompter, lookup location.Lookuper, fields *location.AddressFields, logger zerolog.Logger) error {
	form := location.NewAddressForm(lookup, fields, logger)

	pin := fields.Pin
	for {
		if !location.ValidPincode(pin) {
			var err error
			if pin, err = p.Input(ctx, "PIN code", pin); err != nil {
				return err
			}
		}
		res := form.ChangePincode(ctx, pin)
		if res == location.Resolved {
			break
		}
		if res != location.Reset {
			retry, err := p.Confirm(ctx, fmt.Sprintf("No locations found for %s. Try another PIN?", pin), true)
			if err != nil {
				return err
			}
			if !retry {
				return ErrNoLocation
			}
		}
		pin = ""
	}

	if err := choose(ctx, p, "District", form.Options().Districts, form.SelectDistrict); err != nil {
		return err
	}
	if err := choose(ctx, p, "Taluka", form.Options().SubDistricts, form.SelectSubDistrict); err != nil {
		return err
	}
	if err := choose(ctx, p, "Village", form.Options().Towns, form.SelectTown); err != nil {
		return err
	}

	addr, err := p.Input(ctx, "Address", fields.Address)
	if err != nil {
		return err
	}
	fields.Address = addr
	return nil
}

func choose(ctx context.Context, p Prompter, label string, options []string, set func(string) error) error {
	if len(options) == 0 {
		return fmt.Errorf("%s: %w", label, ErrNoLocation)
	}
	picked, err := p.Select(ctx, label, options)
	if err != nil {
		return err
	}
	return set(picked)
}
