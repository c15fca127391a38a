package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

// urgencyEmojis prefix advisory broadcasts by severity.
var urgencyEmojis = map[string]string{
	models.UrgencyLow:      "ℹ️",
	models.UrgencyMedium:   "📢",
	models.UrgencyHigh:     "⚠️",
	models.UrgencyCritical: "🚨",
}

// AlertScheduler keeps the subscriber registry, sends vaccination reminders
// and advisory broadcasts, and runs the background poll loop that turns
// high-severity external advisories into automatic broadcasts.
//
// All state lives behind one mutex; nothing here touches the database, so a
// restart resets subscribers and history.
type AlertScheduler struct {
	mu             sync.RWMutex
	subscribers    map[string]models.Subscriber
	history        []models.AlertRecord
	sentAdvisories map[string]bool
	running        bool
	stopCh         chan struct{}
	done           chan struct{}

	pollInterval time.Duration
	errorBackoff time.Duration
	stopTimeout  time.Duration
	historyMax   int

	messagingEnabled bool
	whatsapp         WhatsAppSender
	sms              SMSSender
	translator       Translator
	health           AdvisorySource
	logger           zerolog.Logger
}

func NewAlertScheduler(cfg config.AlertConfig, messagingEnabled bool, whatsapp WhatsAppSender, sms SMSSender, translator Translator, health AdvisorySource, logger zerolog.Logger) *AlertScheduler {
	historyMax := cfg.HistoryMax
	if historyMax <= 0 {
		historyMax = 1000
	}
	return &AlertScheduler{
		subscribers:      make(map[string]models.Subscriber),
		sentAdvisories:   make(map[string]bool),
		pollInterval:     cfg.PollInterval,
		errorBackoff:     cfg.ErrorBackoff,
		stopTimeout:      cfg.StopTimeout,
		historyMax:       historyMax,
		messagingEnabled: messagingEnabled,
		whatsapp:         whatsapp,
		sms:              sms,
		translator:       translator,
		health:           health,
		logger:           logger,
	}
}

// Subscribe enrolls a phone number, replacing any existing registration.
// Omitted preferences opt in to every category; omitted language defaults to
// English.
func (a *AlertScheduler) Subscribe(phone, language string, preferences *models.AlertPreferences) models.Subscriber {
	if language == "" {
		language = "en"
	}
	prefs := models.DefaultAlertPreferences()
	if preferences != nil {
		prefs = *preferences
	}

	sub := models.Subscriber{
		Phone:        phone,
		Language:     language,
		Preferences:  prefs,
		SubscribedAt: time.Now(),
	}

	a.mu.Lock()
	a.subscribers[phone] = sub
	a.mu.Unlock()

	a.logger.Info().Str("phone", phone).Str("language", language).Msg("subscriber enrolled")
	return sub
}

// Unsubscribe removes a phone number. Unknown numbers are a no-op.
func (a *AlertScheduler) Unsubscribe(phone string) bool {
	a.mu.Lock()
	_, existed := a.subscribers[phone]
	delete(a.subscribers, phone)
	a.mu.Unlock()

	if existed {
		a.logger.Info().Str("phone", phone).Msg("subscriber removed")
	}
	return existed
}

// Subscriber returns one registration by phone number.
func (a *AlertScheduler) Subscriber(phone string) (models.Subscriber, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	sub, ok := a.subscribers[phone]
	return sub, ok
}

// SendVaccinationReminder delivers a due-vaccine reminder to one phone over
// WhatsApp and SMS. The second return is false when messaging is not
// configured; per-channel failures are reported inside the result map.
func (a *AlertScheduler) SendVaccinationReminder(phone, vaccine, dueDate, centerInfo string) (map[string]models.DeliveryResult, bool) {
	if !a.messagingEnabled {
		a.logger.Warn().Str("phone", phone).Msg("vaccination reminder skipped, messaging not configured")
		return nil, false
	}

	language := "en"
	if sub, ok := a.Subscriber(phone); ok {
		language = sub.Language
	}

	var whatsappBody strings.Builder
	fmt.Fprintf(&whatsappBody, "🏥 Vaccination Reminder\n\nYour %s is due on %s.", vaccine, dueDate)
	if centerInfo != "" {
		fmt.Fprintf(&whatsappBody, "\n\n📍 Center: %s", centerInfo)
	}
	whatsappBody.WriteString("\n\nBook your slot on the CoWIN portal or visit your nearest health center.\nReply STOP to unsubscribe.")

	body := whatsappBody.String()
	if language != "en" && a.translator != nil {
		body = a.translator.TranslateHealthcareResponse(body, language, "")
	}

	results := map[string]models.DeliveryResult{
		"whatsapp": a.whatsapp.SendMessage(phone, body, ""),
		"sms":      a.sms.SendSMS(phone, fmt.Sprintf("VACCINATION: %s due %s. Book via CoWIN. STOP to unsubscribe.", vaccine, dueDate)),
	}

	a.record(models.AlertRecord{
		ID:      uuid.NewString(),
		Type:    models.AlertVaccinationReminder,
		Phone:   phone,
		Title:   vaccine,
		Message: body,
		SentAt:  time.Now(),
		Results: []models.RecipientResult{resultForPhone(phone, results)},
	})

	return results, true
}

// SendHealthAdvisory broadcasts an advisory. With no explicit targets it goes
// to every subscriber opted in to health advisories; explicit targets bypass
// preference filtering. High and critical urgencies also go out over SMS.
func (a *AlertScheduler) SendHealthAdvisory(title, message, urgency string, targetPhones []string) ([]models.RecipientResult, bool) {
	return a.sendAdvisory(title, message, urgency, targetPhones, "")
}

// SendOutbreakAlert broadcasts a disease-outbreak notice to subscribers opted
// in to outbreak alerts. At most three prevention measures are included.
func (a *AlertScheduler) SendOutbreakAlert(disease, location string, measures []string, urgency string) ([]models.RecipientResult, bool) {
	if urgency == "" {
		urgency = models.UrgencyHigh
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s outbreak reported in %s. Please take precautions.", disease, location)
	if len(measures) > 0 {
		if len(measures) > 3 {
			measures = measures[:3]
		}
		body.WriteString("\n\nPrevention measures:")
		for _, m := range measures {
			body.WriteString("\n• " + m)
		}
	}

	targets := a.phonesOptedIn(func(p models.AlertPreferences) bool { return p.DiseaseOutbreaks })
	return a.sendAdvisory(fmt.Sprintf("%s Outbreak Alert - %s", disease, location), body.String(), urgency, targets, "")
}

// sendAdvisory is the shared broadcast path. advisoryID is set only for
// automatic broadcasts from the poll loop, so the record carries the dedup
// key.
func (a *AlertScheduler) sendAdvisory(title, message, urgency string, targetPhones []string, advisoryID string) ([]models.RecipientResult, bool) {
	if !a.messagingEnabled {
		a.logger.Warn().Str("title", title).Msg("advisory skipped, messaging not configured")
		return nil, false
	}
	if urgency == "" {
		urgency = models.UrgencyMedium
	}

	// nil means "all opted-in subscribers"; an explicit empty list means
	// nobody (e.g. an outbreak with zero opted-in subscribers).
	targets := targetPhones
	if targets == nil {
		targets = a.phonesOptedIn(func(p models.AlertPreferences) bool { return p.HealthAdvisories })
	}

	emoji, ok := urgencyEmojis[urgency]
	if !ok {
		emoji = urgencyEmojis[models.UrgencyMedium]
	}
	baseBody := fmt.Sprintf("%s Health Advisory\n\n%s\n\n%s\n\nStay safe and follow official guidance.\nReply STOP to unsubscribe.", emoji, title, message)

	results := make([]models.RecipientResult, 0, len(targets))
	for _, phone := range targets {
		// Explicit target lists still honor the registry: unknown phones
		// and advisory opt-outs are skipped, outbreak alerts included.
		sub, subscribed := a.Subscriber(phone)
		if !subscribed || !sub.Preferences.HealthAdvisories {
			continue
		}

		body := baseBody
		if sub.Language != "en" && a.translator != nil {
			body = a.translator.TranslateHealthcareResponse(body, sub.Language, "")
		}

		recipient := models.RecipientResult{Phone: phone}
		wa := a.whatsapp.SendMessage(phone, body, "")
		recipient.WhatsApp = &wa

		if urgency == models.UrgencyHigh || urgency == models.UrgencyCritical {
			summary := message
			if runes := []rune(summary); len(runes) > 100 {
				summary = string(runes[:100]) + "..."
			}
			sms := a.sms.SendSMS(phone, fmt.Sprintf("%s: %s. %s STOP to unsubscribe.", strings.ToUpper(urgency), title, summary))
			recipient.SMS = &sms
		}

		results = append(results, recipient)
	}

	a.record(models.AlertRecord{
		ID:          uuid.NewString(),
		Type:        models.AlertHealthAdvisory,
		Title:       title,
		Urgency:     urgency,
		Message:     message,
		TargetCount: len(results),
		SentAt:      time.Now(),
		Results:     results,
		AdvisoryID:  advisoryID,
	})

	a.logger.Info().Str("title", title).Str("urgency", urgency).Int("recipients", len(results)).Msg("advisory broadcast sent")
	return results, true
}

// Start launches the background poll loop. Calling Start on a running
// scheduler logs a warning and does nothing.
func (a *AlertScheduler) Start() {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		a.logger.Warn().Msg("alert scheduler already running")
		return
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	stopCh, done := a.stopCh, a.done
	a.mu.Unlock()

	a.logger.Info().Dur("poll_interval", a.pollInterval).Msg("alert scheduler started")
	go a.pollLoop(stopCh, done)
}

// Stop signals the poll loop and waits for it to exit, bounded by the stop
// timeout. Safe to call when not running.
func (a *AlertScheduler) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.stopCh)
	done := a.done
	a.mu.Unlock()

	select {
	case <-done:
		a.logger.Info().Msg("alert scheduler stopped")
	case <-time.After(a.stopTimeout):
		a.logger.Warn().Msg("alert scheduler did not stop in time")
	}
}

// Running reports whether the poll loop is active.
func (a *AlertScheduler) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.running
}

// pollLoop checks the advisory feed on every tick and broadcasts unseen high
// and critical advisories. Feed errors are logged and retried after the error
// backoff; the loop only exits on Stop.
func (a *AlertScheduler) pollLoop(stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		if err := a.checkHealthUpdates(); err != nil {
			a.logger.Error().Err(err).Msg("advisory check failed")
			select {
			case <-stopCh:
				return
			case <-time.After(a.errorBackoff):
			}
			continue
		}

		select {
		case <-stopCh:
			return
		case <-time.After(a.pollInterval):
		}
	}
}

// checkHealthUpdates fetches the advisory feed and broadcasts each unseen
// high-severity advisory exactly once.
func (a *AlertScheduler) checkHealthUpdates() error {
	advisories, err := a.health.GetHealthAdvisories()
	if err != nil {
		return err
	}

	a.mu.Lock()
	var pending []models.Advisory
	for _, adv := range advisories {
		if adv.Severity != models.UrgencyHigh && adv.Severity != models.UrgencyCritical {
			continue
		}
		if a.sentAdvisories[adv.ID] {
			continue
		}
		a.sentAdvisories[adv.ID] = true
		pending = append(pending, adv)
	}
	a.mu.Unlock()

	for _, adv := range pending {
		a.logger.Info().Str("advisory_id", adv.ID).Str("severity", adv.Severity).Msg("broadcasting new advisory")
		a.sendAdvisory(adv.Title, adv.Description, adv.Severity, nil, adv.ID)
	}
	return nil
}

// GetStatistics summarizes scheduler activity.
func (a *AlertScheduler) GetStatistics() models.AlertStatistics {
	a.mu.RLock()
	defer a.mu.RUnlock()

	today := time.Now().Format("2006-01-02")
	sentToday := 0
	for _, rec := range a.history {
		if rec.SentAt.Format("2006-01-02") == today {
			sentToday++
		}
	}

	stats := models.AlertStatistics{
		TotalSubscribers: len(a.subscribers),
		AlertsSentToday:  sentToday,
		TotalAlertsSent:  len(a.history),
		SchedulerRunning: a.running,
	}
	if n := len(a.history); n > 0 {
		lastSent := a.history[n-1].SentAt
		stats.LastCheck = &lastSent
	}
	return stats
}

// GetSubscribersList returns all registrations ordered by phone number.
func (a *AlertScheduler) GetSubscribersList() []models.Subscriber {
	a.mu.RLock()
	subs := make([]models.Subscriber, 0, len(a.subscribers))
	for _, sub := range a.subscribers {
		subs = append(subs, sub)
	}
	a.mu.RUnlock()

	sort.Slice(subs, func(i, j int) bool { return subs[i].Phone < subs[j].Phone })
	return subs
}

// History returns the most recent alert records, newest last.
func (a *AlertScheduler) History(limit int) []models.AlertRecord {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if limit <= 0 || limit > len(a.history) {
		limit = len(a.history)
	}
	out := make([]models.AlertRecord, limit)
	copy(out, a.history[len(a.history)-limit:])
	return out
}

// record appends to the history ring, evicting the oldest entries past the
// cap.
func (a *AlertScheduler) record(rec models.AlertRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.history = append(a.history, rec)
	if len(a.history) > a.historyMax {
		a.history = a.history[len(a.history)-a.historyMax:]
	}
}

func (a *AlertScheduler) phonesOptedIn(optedIn func(models.AlertPreferences) bool) []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	phones := make([]string, 0, len(a.subscribers))
	for phone, sub := range a.subscribers {
		if optedIn(sub.Preferences) {
			phones = append(phones, phone)
		}
	}
	sort.Strings(phones)
	return phones
}

func resultForPhone(phone string, results map[string]models.DeliveryResult) models.RecipientResult {
	recipient := models.RecipientResult{Phone: phone}
	if wa, ok := results["whatsapp"]; ok {
		recipient.WhatsApp = &wa
	}
	if sms, ok := results["sms"]; ok {
		recipient.SMS = &sms
	}
	return recipient
}
