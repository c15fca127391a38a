package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"health-chatbot-backend/models"
)

// healthDataCacheTTL bounds how long upstream payloads are reused.
const healthDataCacheTTL = time.Hour

// HealthDataService serves government health-data feeds: COVID statistics,
// vaccination centers and active advisories. Upstream integrations (MOHFW,
// CoWIN) are mocked with representative payloads until API access is granted;
// responses still flow through the cache so the swap to live feeds is
// transparent to callers.
type HealthDataService struct {
	mu     sync.Mutex
	cache  map[string]cacheEntry
	logger zerolog.Logger
}

type cacheEntry struct {
	value     any
	fetchedAt time.Time
}

func NewHealthDataService(logger zerolog.Logger) *HealthDataService {
	return &HealthDataService{
		cache:  make(map[string]cacheEntry),
		logger: logger,
	}
}

// GetCOVIDStatistics returns case and vaccination counts for a state, and
// optionally a district within it.
func (h *HealthDataService) GetCOVIDStatistics(state, district string) (models.CovidStatistics, error) {
	key := "covid:" + state + ":" + district
	if cached, ok := h.cached(key); ok {
		return cached.(models.CovidStatistics), nil
	}

	stats := models.CovidStatistics{
		State:           state,
		District:        district,
		ActiveCases:     1250,
		Recovered:       98500,
		Deaths:          1200,
		VaccinatedDose1: 850000,
		VaccinatedDose2: 720000,
		LastUpdated:     time.Now().Format("2006-01-02"),
	}
	h.store(key, stats)
	return stats, nil
}

// GetVaccinationCenters lists centers with open sessions for a pincode and
// date (DD-MM-YYYY, today when empty).
func (h *HealthDataService) GetVaccinationCenters(pincode, date string) ([]models.VaccinationCenter, error) {
	if date == "" {
		date = time.Now().Format("02-01-2006")
	}
	key := "centers:" + pincode + ":" + date
	if cached, ok := h.cached(key); ok {
		return cached.([]models.VaccinationCenter), nil
	}

	centers := []models.VaccinationCenter{
		{
			CenterID:     100001,
			Name:         "Primary Health Centre",
			Address:      "Main Road, Near Bus Stand",
			StateName:    "Karnataka",
			DistrictName: "Bangalore Urban",
			From:         "09:00:00",
			To:           "17:00:00",
			FeeType:      "Free",
			Sessions: []models.VaccinationSession{
				{
					Date:              date,
					AvailableCapacity: 50,
					MinAgeLimit:       18,
					Vaccine:           "COVISHIELD",
					Slots:             []string{"09:00AM-11:00AM", "11:00AM-01:00PM", "02:00PM-04:00PM"},
				},
			},
		},
		{
			CenterID:     100002,
			Name:         "District Hospital",
			Address:      "Hospital Road",
			StateName:    "Karnataka",
			DistrictName: "Bangalore Urban",
			From:         "10:00:00",
			To:           "16:00:00",
			FeeType:      "Paid",
			Sessions: []models.VaccinationSession{
				{
					Date:              date,
					AvailableCapacity: 30,
					MinAgeLimit:       18,
					Vaccine:           "COVAXIN",
					Slots:             []string{"10:00AM-12:00PM", "02:00PM-04:00PM"},
				},
			},
		},
	}
	h.store(key, centers)
	return centers, nil
}

// GetHealthAdvisories returns the active advisories feed. IDs are stable
// across polls so the alert scheduler can deduplicate.
func (h *HealthDataService) GetHealthAdvisories() ([]models.Advisory, error) {
	const key = "advisories"
	if cached, ok := h.cached(key); ok {
		return cached.([]models.Advisory), nil
	}

	advisories := []models.Advisory{
		{
			ID:          "adv-2024-001",
			Title:       "Dengue Prevention Advisory",
			Description: "Monsoon season increases dengue risk. Eliminate stagnant water, use mosquito repellents, and seek medical care for high fever with body aches.",
			Severity:    models.UrgencyHigh,
		},
		{
			ID:          "adv-2024-002",
			Title:       "Seasonal Flu Vaccination",
			Description: "Annual flu vaccination is recommended for children, elderly and those with chronic conditions before winter.",
			Severity:    models.UrgencyMedium,
		},
		{
			ID:          "adv-2024-003",
			Title:       "Heat Wave Precautions",
			Description: "Stay hydrated, avoid outdoor activity between 12pm and 4pm, and watch for signs of heat stroke.",
			Severity:    models.UrgencyLow,
		},
	}
	h.store(key, advisories)
	return advisories, nil
}

func (h *HealthDataService) cached(key string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.cache[key]
	if !ok || time.Since(entry.fetchedAt) > healthDataCacheTTL {
		return nil, false
	}
	return entry.value, true
}

func (h *HealthDataService) store(key string, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cache[key] = cacheEntry{value: value, fetchedAt: time.Now()}
}
