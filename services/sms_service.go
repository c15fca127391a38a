package services

import (
	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

// smsMaxLength is the single-segment GSM limit enforced before dispatch.
const smsMaxLength = 160

// SMSService sends plain SMS through the Twilio Messages API.
type SMSService struct {
	api        *twilioAPI
	fromNumber string
}

func NewSMSService(cfg config.TwilioConfig, logger zerolog.Logger) *SMSService {
	return &SMSService{
		api:        newTwilioAPI(cfg, logger.With().Str("channel", "sms").Logger()),
		fromNumber: cfg.SMSNumber,
	}
}

// Enabled reports whether the service can attempt delivery.
func (s *SMSService) Enabled() bool {
	return s.api.configured() && s.fromNumber != ""
}

// SendSMS delivers body to the given phone number, truncating to the
// 160-character SMS limit first.
func (s *SMSService) SendSMS(to, body string) models.DeliveryResult {
	return s.api.createMessage(s.fromNumber, to, TruncateSMS(body), "")
}

// TruncateSMS shortens a message to fit one SMS segment.
func TruncateSMS(body string) string {
	runes := []rune(body)
	if len(runes) <= smsMaxLength {
		return body
	}
	return string(runes[:smsMaxLength-3]) + "..."
}
