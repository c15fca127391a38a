package models

// CovidStatistics mirrors the MOHFW statistics payload (mocked upstream).
type CovidStatistics struct {
	State           string `json:"state"`
	District        string `json:"district"`
	ActiveCases     int    `json:"active_cases"`
	Recovered       int    `json:"recovered"`
	Deaths          int    `json:"deaths"`
	VaccinatedDose1 int    `json:"vaccinated_dose1"`
	VaccinatedDose2 int    `json:"vaccinated_dose2"`
	LastUpdated     string `json:"last_updated"`
}

// VaccinationCenter mirrors the CoWIN center payload (mocked upstream).
type VaccinationCenter struct {
	CenterID     int                  `json:"center_id"`
	Name         string               `json:"name"`
	Address      string               `json:"address"`
	StateName    string               `json:"state_name"`
	DistrictName string               `json:"district_name"`
	From         string               `json:"from"`
	To           string               `json:"to"`
	FeeType      string               `json:"fee_type"`
	Sessions     []VaccinationSession `json:"sessions"`
}

type VaccinationSession struct {
	Date              string   `json:"date"`
	AvailableCapacity int      `json:"available_capacity"`
	MinAgeLimit       int      `json:"min_age_limit"`
	Vaccine           string   `json:"vaccine"`
	Slots             []string `json:"slots"`
}

// LanguageInfo describes one supported translation language.
type LanguageInfo struct {
	Name   string `json:"name"`
	Native string `json:"native"`
}
