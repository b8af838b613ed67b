package location

// GeographyRecord is one row of a pincode lookup: a town together with its
// sub-district, district, state and country.
type GeographyRecord struct {
	Pincode     string      `json:"Pincode"`
	Town        Town        `json:"Town"`
	SubDistrict SubDistrict `json:"SubDistrict"`
	District    District    `json:"District"`
	State       State       `json:"State"`
	Country     Country     `json:"Country"`
}

type Town struct {
	ID                string `json:"id"`
	TownNameIntlang   string `json:"townNameIntlang"`
	TownNameLocalLang string `json:"townNameLocalLang"`
	TownCode          string `json:"townCode"`
	SubDistrictCode   string `json:"subDistrictCode"`
	Type              string `json:"type"`
}

type SubDistrict struct {
	ID                     string `json:"id"`
	SubDistrictNameIntlang string `json:"subDistrictNameIntlang"`
	SubDistrictCode        string `json:"subDistrictCode"`
	DistrictCode           string `json:"districtCode"`
}

type District struct {
	ID                  string `json:"id"`
	DistrictNameIntlang string `json:"districtNameIntlang"`
	DistrictCode        string `json:"districtCode"`
	StateCode           string `json:"stateCode"`
}

type State struct {
	ID               string `json:"id"`
	StateNameIntlang string `json:"stateNameIntlang"`
	StateNameLoclang string `json:"stateNameLoclang"`
	StateCode        string `json:"stateCode"`
	IsUnionTerritory bool   `json:"isUnionTerritory"`
	CountryID        string `json:"countryId"`
}

type Country struct {
	ID                string `json:"id"`
	CountryName       string `json:"countryName"`
	CountryDialCode   string `json:"countryDialCode"`
	CountryCodeAlpha2 string `json:"countryCodeAlpha2"`
	CountryCodeAlpha3 string `json:"countryCodeAlpha3"`
}

// AddressFields is the address block shared by the clinic, doctor and
// patient forms. Everything except Pin, Address and the three selections is
// filled from lookup records.
type AddressFields struct {
	Pin             string `json:"pin" yaml:"pin" validate:"required,len=6,numeric" label:"PIN" msg:"PIN must be 6 digits"`
	State           string `json:"state" yaml:"state" validate:"required" label:"State"`
	StateCode       string `json:"stateCode" yaml:"stateCode"`
	District        string `json:"district" yaml:"district" validate:"required" label:"District"`
	DistrictCode    string `json:"districtCode" yaml:"districtCode"`
	SubDistrict     string `json:"subDistrict" yaml:"subDistrict" validate:"required" label:"Taluka"`
	SubDistrictCode string `json:"subDistrictCode" yaml:"subDistrictCode"`
	Town            string `json:"town" yaml:"town" validate:"required" label:"Village"`
	TownCode        string `json:"townCode" yaml:"townCode"`
	Address         string `json:"address" yaml:"address" validate:"required" label:"Address"`
	CountryID       string `json:"countryId" yaml:"countryId"`
	CountryName     string `json:"countryName" yaml:"countryName"`
}

// Autofill holds the values copied from the first record of a lookup.
type Autofill struct {
	State       string `json:"state"`
	StateCode   string `json:"stateCode"`
	CountryID   string `json:"countryId"`
	CountryName string `json:"countryName"`
}

func autofillFrom(r GeographyRecord) Autofill {
	return Autofill{
		State:       r.State.StateNameIntlang,
		StateCode:   r.State.StateCode,
		CountryID:   r.Country.CountryCodeAlpha2,
		CountryName: r.Country.CountryName,
	}
}
