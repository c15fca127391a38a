package services

import "health-chatbot-backend/models"

// Adapter interfaces consumed by the chatbot and alert scheduler. The concrete
// implementations live in this package too (Twilio, Google Translate, mocked
// government data), but the consumers only depend on these contracts so tests
// can substitute fakes.

// Translator localizes composed responses.
type Translator interface {
	DetectLanguage(text string) string
	TranslateText(text, targetLanguage, sourceLanguage string) string
	TranslateHealthcareResponse(response, targetLanguage, userInput string) string
}

// WhatsAppSender delivers a message over WhatsApp.
type WhatsAppSender interface {
	SendMessage(to, body, mediaURL string) models.DeliveryResult
}

// SMSSender delivers a short message over SMS (body truncated to 160 chars).
type SMSSender interface {
	SendSMS(to, body string) models.DeliveryResult
}

// AdvisorySource provides current external health advisories.
type AdvisorySource interface {
	GetHealthAdvisories() ([]models.Advisory, error)
}
