package models

import "time"

// AlertType categorizes outbound notifications.
type AlertType string

const (
	AlertVaccinationReminder AlertType = "vaccination_reminder"
	AlertHealthAdvisory      AlertType = "health_advisory"
)

// Urgency levels for advisories and outbreak alerts.
const (
	UrgencyLow      = "low"
	UrgencyMedium   = "medium"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// AlertPreferences are the per-category opt-in flags for a subscriber.
type AlertPreferences struct {
	VaccinationReminders bool `json:"vaccination_reminders"`
	DiseaseOutbreaks     bool `json:"disease_outbreaks"`
	HealthAdvisories     bool `json:"health_advisories"`
}

// DefaultAlertPreferences opts in to every alert category.
func DefaultAlertPreferences() AlertPreferences {
	return AlertPreferences{
		VaccinationReminders: true,
		DiseaseOutbreaks:     true,
		HealthAdvisories:     true,
	}
}

// Subscriber is a phone number enrolled for alert broadcasts.
type Subscriber struct {
	Phone        string           `json:"phone"`
	Language     string           `json:"language"`
	Preferences  AlertPreferences `json:"preferences"`
	SubscribedAt time.Time        `json:"subscribed_at"`
}

// DeliveryResult describes one send attempt on one channel.
type DeliveryResult struct {
	Success    bool   `json:"success"`
	MessageSID string `json:"message_sid,omitempty"`
	Status     string `json:"status,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RecipientResult groups per-channel results for one broadcast recipient.
type RecipientResult struct {
	Phone    string          `json:"phone"`
	WhatsApp *DeliveryResult `json:"whatsapp,omitempty"`
	SMS      *DeliveryResult `json:"sms,omitempty"`
}

// AlertRecord is one entry of the append-only alert history.
type AlertRecord struct {
	ID          string            `json:"id"`
	Type        AlertType         `json:"type"`
	Phone       string            `json:"phone,omitempty"`
	Title       string            `json:"title,omitempty"`
	Urgency     string            `json:"urgency,omitempty"`
	Message     string            `json:"message,omitempty"`
	TargetCount int               `json:"target_count,omitempty"`
	SentAt      time.Time         `json:"sent_at"`
	Results     []RecipientResult `json:"results,omitempty"`
	AdvisoryID  string            `json:"advisory_id,omitempty"`
}

// Advisory is an externally sourced health notice.
type Advisory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// AlertStatistics summarizes scheduler activity. LastCheck carries the sent
// time of the most recent alert.
type AlertStatistics struct {
	TotalSubscribers int        `json:"total_subscribers"`
	AlertsSentToday  int        `json:"alerts_sent_today"`
	TotalAlertsSent  int        `json:"total_alerts_sent"`
	SchedulerRunning bool       `json:"scheduler_running"`
	LastCheck        *time.Time `json:"last_check,omitempty"`
}

// Request payloads for the alert admin endpoints.

type SubscribeRequest struct {
	Phone       string            `json:"phone" binding:"required"`
	Language    string            `json:"language,omitempty"`
	Preferences *AlertPreferences `json:"preferences,omitempty"`
}

type UnsubscribeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VaccinationReminderRequest struct {
	Phone      string `json:"phone" binding:"required"`
	Vaccine    string `json:"vaccine" binding:"required"`
	DueDate    string `json:"due_date" binding:"required"`
	CenterInfo string `json:"center_info,omitempty"`
}

type AdvisoryRequest struct {
	Title        string   `json:"title" binding:"required"`
	Message      string   `json:"message" binding:"required"`
	Urgency      string   `json:"urgency,omitempty"`
	TargetPhones []string `json:"target_phones,omitempty"`
}

type OutbreakRequest struct {
	Disease            string   `json:"disease" binding:"required"`
	Location           string   `json:"location" binding:"required"`
	PreventionMeasures []string `json:"prevention_measures,omitempty"`
	Urgency            string   `json:"urgency,omitempty"`
}
