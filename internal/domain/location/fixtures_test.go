package location

import (
	"context"
	"sync"
)

func record(district, districtCode, sub, subCode, town, townCode string) GeographyRecord {
	return GeographyRecord{
		Pincode:     "411001",
		Town:        Town{TownNameIntlang: town, TownCode: townCode, SubDistrictCode: subCode},
		SubDistrict: SubDistrict{SubDistrictNameIntlang: sub, SubDistrictCode: subCode, DistrictCode: districtCode},
		District:    District{DistrictNameIntlang: district, DistrictCode: districtCode, StateCode: "27"},
		State:       State{StateNameIntlang: "Maharashtra", StateCode: "27", CountryID: "1"},
		Country:     Country{CountryName: "India", CountryCodeAlpha2: "IN", CountryCodeAlpha3: "IND"},
	}
}

func sampleRecords() []GeographyRecord {
	return []GeographyRecord{
		record("Pune", "521", "Haveli", "4170", "Wagholi", "556001"),
		record("Pune", "521", "Haveli", "4170", "Lohegaon", "556002"),
		record("Pune", "521", "Pune City", "4171", "Kasba Peth", "556010"),
		record("Satara", "522", "Wai", "4180", "Pachwad", "557001"),
	}
}

// fakeLookup records every call and answers from a map.
type fakeLookup struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]GeographyRecord
	err     error
}

func (f *fakeLookup) Lookup(_ context.Context, pin string) ([]GeographyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pin)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[pin], nil
}

func (f *fakeLookup) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
