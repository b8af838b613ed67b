package formvalues

import (
	"fmt"
	"time"
)

// Common value set constants used across the forms.

// Sex values accepted for people and animals.
const (
	SexMale   = "MALE"
	SexFemale = "FEMALE"
	SexOther  = "OTHER"
)

// VisitType values for a consultation.
const (
	VisitClinic = "CLINIC"
	VisitHome   = "HOME"
	VisitOnCall = "ON_CALL"
	VisitFarm   = "FARM"
)

// Species values for PET and LIVESTOCK patients.
const (
	SpeciesDog     = "DOG"
	SpeciesCat     = "CAT"
	SpeciesCow     = "COW"
	SpeciesBuffalo = "BUFFALO"
	SpeciesGoat    = "GOAT"
	SpeciesSheep   = "SHEEP"
	SpeciesHorse   = "HORSE"
	SpeciesOther   = "OTHER"
)

// DateLayout is how date inputs arrive from the forms.
const DateLayout = "2006-01-02"

// isoLayout matches JavaScript's Date.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z"

// ParseDate reads a form date as UTC midnight. Full RFC 3339 timestamps are
// accepted too.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t.UTC(), nil
}

// ISODate converts a form date to the ISO timestamp the API stores.
func ISODate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(isoLayout), nil
}
