package services

import (
	"testing"

	"github.com/rs/zerolog"

	"health-chatbot-backend/models"
)

func TestGetHealthAdvisoriesStableIDs(t *testing.T) {
	h := NewHealthDataService(zerolog.Nop())

	first, err := h.GetHealthAdvisories()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected advisories")
	}

	// IDs must be stable across polls so the scheduler can deduplicate.
	second, _ := h.GetHealthAdvisories()
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("advisory ID changed between polls: %q vs %q", first[i].ID, second[i].ID)
		}
	}

	hasHigh := false
	for _, adv := range first {
		if adv.Severity == models.UrgencyHigh || adv.Severity == models.UrgencyCritical {
			hasHigh = true
		}
	}
	if !hasHigh {
		t.Error("expected at least one high-severity advisory in the feed")
	}
}

func TestGetCOVIDStatistics(t *testing.T) {
	h := NewHealthDataService(zerolog.Nop())

	stats, err := h.GetCOVIDStatistics("Karnataka", "Bangalore Urban")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.State != "Karnataka" || stats.District != "Bangalore Urban" {
		t.Errorf("echoed location wrong: %+v", stats)
	}
	if stats.ActiveCases <= 0 {
		t.Error("expected positive case counts")
	}
}

func TestGetVaccinationCenters(t *testing.T) {
	h := NewHealthDataService(zerolog.Nop())

	centers, err := h.GetVaccinationCenters("560001", "01-09-2026")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(centers) == 0 {
		t.Fatal("expected centers")
	}
	for _, center := range centers {
		if len(center.Sessions) == 0 {
			t.Errorf("center %q has no sessions", center.Name)
		}
		for _, session := range center.Sessions {
			if session.Date != "01-09-2026" {
				t.Errorf("session date %q does not match request", session.Date)
			}
		}
	}
}
