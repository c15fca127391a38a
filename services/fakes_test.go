package services

import (
	"sync"

	"health-chatbot-backend/models"
)

// fakeTranslator marks text so tests can assert translation happened.
type fakeTranslator struct{}

func (fakeTranslator) DetectLanguage(text string) string { return "en" }

func (fakeTranslator) TranslateText(text, targetLanguage, sourceLanguage string) string {
	return "<" + targetLanguage + "> " + text
}

// TranslateHealthcareResponse uses a distinct marker so tests can tell the
// labeled healthcare path from plain translation.
func (fakeTranslator) TranslateHealthcareResponse(response, targetLanguage, userInput string) string {
	return "[" + targetLanguage + "] " + response
}

type sentMessage struct {
	To   string
	Body string
}

// fakeSender records outbound messages and satisfies both sender interfaces.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	fail bool
}

func (f *fakeSender) SendMessage(to, body, mediaURL string) models.DeliveryResult {
	return f.deliver(to, body)
}

func (f *fakeSender) SendSMS(to, body string) models.DeliveryResult {
	return f.deliver(to, body)
}

func (f *fakeSender) deliver(to, body string) models.DeliveryResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return models.DeliveryResult{Error: "delivery failed"}
	}
	f.sent = append(f.sent, sentMessage{To: to, Body: body})
	return models.DeliveryResult{Success: true, MessageSID: "SM-test", Status: "queued"}
}

func (f *fakeSender) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

// fakeAdvisorySource serves a fixed advisory feed.
type fakeAdvisorySource struct {
	advisories []models.Advisory
	err        error
}

func (f *fakeAdvisorySource) GetHealthAdvisories() ([]models.Advisory, error) {
	return f.advisories, f.err
}
