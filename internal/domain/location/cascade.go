package location

// Options are the choices each address select offers for the current
// selection.
type Options struct {
	Districts    []string `json:"districts"`
	SubDistricts []string `json:"subDistricts"`
	Towns        []string `json:"towns"`
}

// Districts lists the distinct district names in first-seen order.
func Districts(records []GeographyRecord) []string {
	return distinct(records, func(r GeographyRecord) (string, bool) {
		return r.District.DistrictNameIntlang, true
	})
}

// SubDistricts lists the sub-districts within district. An empty district
// does not filter.
func SubDistricts(records []GeographyRecord, district string) []string {
	return distinct(records, func(r GeographyRecord) (string, bool) {
		return r.SubDistrict.SubDistrictNameIntlang, within(r, district, "")
	})
}

// Towns lists the towns within district and subDistrict. Empty selections
// do not filter.
func Towns(records []GeographyRecord, district, subDistrict string) []string {
	return distinct(records, func(r GeographyRecord) (string, bool) {
		return r.Town.TownNameIntlang, within(r, district, subDistrict)
	})
}

func within(r GeographyRecord, district, subDistrict string) bool {
	return (district == "" || r.District.DistrictNameIntlang == district) &&
		(subDistrict == "" || r.SubDistrict.SubDistrictNameIntlang == subDistrict)
}

func OptionsFor(records []GeographyRecord, district, subDistrict string) Options {
	return Options{
		Districts:    Districts(records),
		SubDistricts: SubDistricts(records, district),
		Towns:        Towns(records, district, subDistrict),
	}
}

func distinct(records []GeographyRecord, pick func(GeographyRecord) (string, bool)) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, r := range records {
		name, ok := pick(r)
		if !ok || name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
