package services

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

func testAlertConfig() config.AlertConfig {
	return config.AlertConfig{
		PollInterval: time.Hour,
		ErrorBackoff: time.Second,
		StopTimeout:  5 * time.Second,
		HistoryMax:   100,
	}
}

func newTestScheduler(whatsapp, sms *fakeSender, source *fakeAdvisorySource) *AlertScheduler {
	if source == nil {
		source = &fakeAdvisorySource{}
	}
	return NewAlertScheduler(testAlertConfig(), true, whatsapp, sms, fakeTranslator{}, source, zerolog.Nop())
}

func TestSubscribeDefaults(t *testing.T) {
	a := newTestScheduler(&fakeSender{}, &fakeSender{}, nil)

	sub := a.Subscribe("+911111111111", "", nil)
	if sub.Language != "en" {
		t.Errorf("expected default language en, got %q", sub.Language)
	}
	if !sub.Preferences.VaccinationReminders || !sub.Preferences.DiseaseOutbreaks || !sub.Preferences.HealthAdvisories {
		t.Errorf("expected all preferences enabled by default, got %+v", sub.Preferences)
	}
}

func TestResubscribeReplacesRegistration(t *testing.T) {
	a := newTestScheduler(&fakeSender{}, &fakeSender{}, nil)

	a.Subscribe("+911111111111", "hi", &models.AlertPreferences{HealthAdvisories: true})
	a.Subscribe("+911111111111", "ta", nil)

	sub, ok := a.Subscriber("+911111111111")
	if !ok {
		t.Fatal("expected subscriber")
	}
	if sub.Language != "ta" {
		t.Errorf("expected replaced language ta, got %q", sub.Language)
	}
	if !sub.Preferences.VaccinationReminders {
		t.Error("resubscribe without preferences must reset to defaults")
	}
	if got := len(a.GetSubscribersList()); got != 1 {
		t.Errorf("expected 1 subscriber, got %d", got)
	}
}

func TestUnsubscribeIdempotent(t *testing.T) {
	a := newTestScheduler(&fakeSender{}, &fakeSender{}, nil)

	a.Subscribe("+911111111111", "en", nil)
	if !a.Unsubscribe("+911111111111") {
		t.Error("expected unsubscribe to report removal")
	}
	if a.Unsubscribe("+911111111111") {
		t.Error("expected second unsubscribe to report not found")
	}
}

func TestSendVaccinationReminder(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	results, ok := a.SendVaccinationReminder("+911111111111", "COVID-19 Booster", "2026-09-15", "Primary Health Centre")
	if !ok {
		t.Fatal("expected reminder to be sent")
	}
	if !results["whatsapp"].Success || !results["sms"].Success {
		t.Errorf("expected both channels to succeed: %+v", results)
	}

	waBody := whatsapp.messages()[0].Body
	if !strings.Contains(waBody, "COVID-19 Booster") || !strings.Contains(waBody, "2026-09-15") {
		t.Errorf("WhatsApp body missing vaccine or due date: %q", waBody)
	}
	if !strings.Contains(waBody, "Primary Health Centre") {
		t.Errorf("WhatsApp body missing center info: %q", waBody)
	}

	smsBody := sms.messages()[0].Body
	if !strings.Contains(smsBody, "VACCINATION") || !strings.Contains(smsBody, "STOP") {
		t.Errorf("unexpected SMS body: %q", smsBody)
	}

	stats := a.GetStatistics()
	if stats.TotalAlertsSent != 1 || stats.AlertsSentToday != 1 {
		t.Errorf("unexpected statistics: %+v", stats)
	}
	if stats.LastCheck == nil || !stats.LastCheck.Equal(a.History(1)[0].SentAt) {
		t.Errorf("expected last-sent timestamp from the newest record, got %v", stats.LastCheck)
	}
}

func TestSendVaccinationReminderTranslated(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	a.Subscribe("+911111111111", "hi", nil)
	a.SendVaccinationReminder("+911111111111", "Polio", "2026-09-01", "")

	// The labeled healthcare translation, not plain text translation.
	if body := whatsapp.messages()[0].Body; !strings.HasPrefix(body, "[hi] ") {
		t.Errorf("expected labeled translated WhatsApp body for hi subscriber, got %q", body)
	}
}

func TestSendVaccinationReminderWithoutMessaging(t *testing.T) {
	a := NewAlertScheduler(testAlertConfig(), false, &fakeSender{}, &fakeSender{}, fakeTranslator{}, &fakeAdvisorySource{}, zerolog.Nop())

	if _, ok := a.SendVaccinationReminder("+911111111111", "Polio", "2026-09-01", ""); ok {
		t.Error("expected reminder to be skipped when messaging is not configured")
	}
}

func TestSendVaccinationReminderChannelFailureIsRecorded(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{fail: true}
	a := newTestScheduler(whatsapp, sms, nil)

	results, ok := a.SendVaccinationReminder("+911111111111", "Polio", "2026-09-01", "")
	if !ok {
		t.Fatal("a failing channel must not abort the send")
	}
	if !results["whatsapp"].Success {
		t.Error("expected WhatsApp delivery to succeed")
	}
	if results["sms"].Success || results["sms"].Error == "" {
		t.Errorf("expected SMS failure captured in result, got %+v", results["sms"])
	}

	// The history record is appended regardless of channel failures.
	if got := len(a.History(0)); got != 1 {
		t.Errorf("expected 1 history record, got %d", got)
	}
}

func TestSendHealthAdvisoryPreferenceFiltering(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	a.Subscribe("+911111111111", "en", nil)
	a.Subscribe("+912222222222", "en", &models.AlertPreferences{HealthAdvisories: false})

	results, ok := a.SendHealthAdvisory("Flu Season", "Get your flu shot.", models.UrgencyMedium, nil)
	if !ok {
		t.Fatal("expected advisory to be sent")
	}
	if len(results) != 1 || results[0].Phone != "+911111111111" {
		t.Errorf("expected only the opted-in subscriber, got %+v", results)
	}

	// Medium urgency goes out over WhatsApp only.
	if results[0].SMS != nil {
		t.Error("medium urgency must not use SMS")
	}
	if len(sms.messages()) != 0 {
		t.Errorf("expected no SMS deliveries, got %d", len(sms.messages()))
	}
}

func TestSendHealthAdvisoryExplicitTargets(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	a.Subscribe("+911111111111", "en", nil)
	a.Subscribe("+913333333333", "en", nil)

	// An explicit target list narrows the broadcast to those subscribers.
	results, _ := a.SendHealthAdvisory("Dengue Alert", "Eliminate stagnant water.", models.UrgencyHigh, []string{"+913333333333"})
	if len(results) != 1 || results[0].Phone != "+913333333333" {
		t.Errorf("expected explicit target only, got %+v", results)
	}

	// High urgency adds the SMS channel.
	if results[0].SMS == nil || !results[0].SMS.Success {
		t.Errorf("expected SMS delivery for high urgency, got %+v", results[0].SMS)
	}
	smsBody := sms.messages()[0].Body
	if !strings.Contains(smsBody, "HIGH") || !strings.Contains(smsBody, "Dengue Alert") {
		t.Errorf("unexpected SMS body: %q", smsBody)
	}
}

func TestSendHealthAdvisoryExplicitTargetsHonorRegistry(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	a.Subscribe("+911111111111", "en", &models.AlertPreferences{
		VaccinationReminders: true,
		DiseaseOutbreaks:     true,
		HealthAdvisories:     false,
	})

	// An advisory opt-out is skipped even when explicitly targeted, and
	// unknown phones are never messaged.
	results, ok := a.SendHealthAdvisory("Flu Season", "Get your flu shot.", models.UrgencyMedium,
		[]string{"+911111111111", "+919999999999"})
	if !ok {
		t.Fatal("expected advisory attempt to proceed")
	}
	if len(results) != 0 {
		t.Errorf("expected no recipients, got %+v", results)
	}
	if len(whatsapp.messages()) != 0 {
		t.Errorf("expected no deliveries, got %d", len(whatsapp.messages()))
	}
}

func TestSendOutbreakAlertSkipsAdvisoryOptOut(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	a.Subscribe("+911111111111", "en", &models.AlertPreferences{
		VaccinationReminders: true,
		DiseaseOutbreaks:     true,
		HealthAdvisories:     false,
	})
	a.Subscribe("+912222222222", "en", nil)

	results, ok := a.SendOutbreakAlert("Dengue", "Pune", nil, "")
	if !ok {
		t.Fatal("expected outbreak alert to be sent")
	}
	if len(results) != 1 || results[0].Phone != "+912222222222" {
		t.Errorf("expected only the fully opted-in subscriber, got %+v", results)
	}
	for _, msg := range whatsapp.messages() {
		if msg.To == "+911111111111" {
			t.Errorf("advisory opt-out must not receive outbreak broadcasts")
		}
	}
}

func TestSendOutbreakAlert(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	a := newTestScheduler(whatsapp, sms, nil)

	a.Subscribe("+911111111111", "en", nil)
	a.Subscribe("+912222222222", "en", &models.AlertPreferences{DiseaseOutbreaks: false, HealthAdvisories: true})

	measures := []string{"Use repellent", "Wear full sleeves", "Drain stagnant water", "Install window nets"}
	results, ok := a.SendOutbreakAlert("Dengue", "Pune", measures, "")
	if !ok {
		t.Fatal("expected outbreak alert to be sent")
	}
	if len(results) != 1 || results[0].Phone != "+911111111111" {
		t.Errorf("expected only the outbreak-opted-in subscriber, got %+v", results)
	}

	body := whatsapp.messages()[0].Body
	if !strings.Contains(body, "Dengue") || !strings.Contains(body, "Pune") {
		t.Errorf("body missing disease or location: %q", body)
	}
	if strings.Count(body, "• ") != 3 {
		t.Errorf("expected at most 3 prevention measures, body: %q", body)
	}
	if strings.Contains(body, "Install window nets") {
		t.Errorf("fourth measure must be dropped: %q", body)
	}
}

func TestAdvisoryPollDeduplication(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	source := &fakeAdvisorySource{advisories: []models.Advisory{
		{ID: "adv-1", Title: "Dengue Advisory", Description: "High risk.", Severity: models.UrgencyHigh},
		{ID: "adv-2", Title: "Flu Notice", Description: "Seasonal.", Severity: models.UrgencyLow},
	}}
	a := newTestScheduler(whatsapp, sms, source)
	a.Subscribe("+911111111111", "en", nil)

	if err := a.checkHealthUpdates(); err != nil {
		t.Fatalf("check failed: %v", err)
	}

	// Only the high-severity advisory broadcasts.
	if got := len(whatsapp.messages()); got != 1 {
		t.Fatalf("expected 1 broadcast, got %d", got)
	}
	if !strings.Contains(whatsapp.messages()[0].Body, "Dengue Advisory") {
		t.Errorf("unexpected broadcast body: %q", whatsapp.messages()[0].Body)
	}

	// A second poll with the same feed sends nothing new.
	if err := a.checkHealthUpdates(); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if got := len(whatsapp.messages()); got != 1 {
		t.Errorf("expected no duplicate broadcast, got %d messages", got)
	}

	records := a.History(0)
	if len(records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(records))
	}
	if records[0].AdvisoryID != "adv-1" {
		t.Errorf("expected record tagged with advisory ID, got %q", records[0].AdvisoryID)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	a := newTestScheduler(&fakeSender{}, &fakeSender{}, nil)

	a.Start()
	if !a.Running() {
		t.Fatal("expected scheduler to be running")
	}
	// Second start is a no-op.
	a.Start()

	a.Stop()
	if a.Running() {
		t.Error("expected scheduler to be stopped")
	}
	// Stop when already stopped is safe.
	a.Stop()
}

func TestSchedulerPollsOnStart(t *testing.T) {
	whatsapp, sms := &fakeSender{}, &fakeSender{}
	source := &fakeAdvisorySource{advisories: []models.Advisory{
		{ID: "adv-1", Title: "Heat Wave", Description: "Stay indoors.", Severity: models.UrgencyCritical},
	}}
	a := newTestScheduler(whatsapp, sms, source)
	a.Subscribe("+911111111111", "en", nil)

	a.Start()
	defer a.Stop()

	deadline := time.After(2 * time.Second)
	for len(whatsapp.messages()) == 0 {
		select {
		case <-deadline:
			t.Fatal("expected broadcast after scheduler start")
		case <-time.After(10 * time.Millisecond):
		}
	}

	stats := a.GetStatistics()
	if stats.LastCheck == nil {
		t.Error("expected last check timestamp after poll")
	}
}

func TestAlertHistoryCap(t *testing.T) {
	cfg := testAlertConfig()
	cfg.HistoryMax = 3
	a := NewAlertScheduler(cfg, true, &fakeSender{}, &fakeSender{}, fakeTranslator{}, &fakeAdvisorySource{}, zerolog.Nop())

	for i := 0; i < 5; i++ {
		a.SendVaccinationReminder("+911111111111", "Polio", "2026-09-01", "")
	}

	if got := len(a.History(0)); got != 3 {
		t.Errorf("expected history capped at 3, got %d", got)
	}
	if stats := a.GetStatistics(); stats.TotalAlertsSent != 3 {
		t.Errorf("expected capped total, got %d", stats.TotalAlertsSent)
	}
}
