package location

// DefaultCountryName is sent when a form has no country name.
const DefaultCountryName = "India"

// GeoLocation is sent as an empty object by the clinic and patient forms.
type GeoLocation struct{}

// Payload is the address block of every create request.
type Payload struct {
	Address         string       `json:"address"`
	TownCode        string       `json:"townCode"`
	Town            string       `json:"town"`
	Pin             string       `json:"pin"`
	SubDistrictCode string       `json:"subDistrictCode"`
	SubDistrict     string       `json:"subDistrict"`
	DistrictCode    string       `json:"districtCode"`
	District        string       `json:"district"`
	StateCode       string       `json:"stateCode"`
	State           string       `json:"state"`
	CountryID       string       `json:"countryId"`
	CountryName     string       `json:"countryName"`
	GeoLocation     *GeoLocation `json:"geoLocation,omitempty"`
}

// Payload copies the form's address into request shape.
func (a AddressFields) Payload() Payload {
	name := a.CountryName
	if name == "" {
		name = DefaultCountryName
	}
	return Payload{
		Address:         a.Address,
		TownCode:        a.TownCode,
		Town:            a.Town,
		Pin:             a.Pin,
		SubDistrictCode: a.SubDistrictCode,
		SubDistrict:     a.SubDistrict,
		DistrictCode:    a.DistrictCode,
		District:        a.District,
		StateCode:       a.StateCode,
		State:           a.State,
		CountryID:       a.CountryID,
		CountryName:     name,
	}
}

// WithGeoLocation adds the empty geoLocation object.
func (p Payload) WithGeoLocation() Payload {
	p.GeoLocation = &GeoLocation{}
	return p
}

// Summary is the short address the API embeds in list responses.
type Summary struct {
	ID          string `json:"id"`
	Address     string `json:"address"`
	Town        string `json:"town"`
	State       string `json:"state"`
	CountryName string `json:"countryName"`
	Pin         string `json:"pin,omitempty"`
}
