package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

func testChatbotConfig() config.ChatbotConfig {
	return config.ChatbotConfig{
		Mode:              "tfidf",
		DefaultConfidence: 0.5,
		SessionHistoryMax: 5,
		EmergencyNumber:   "108",
	}
}

func newTestChatbot(t *testing.T) *ChatbotService {
	t.Helper()
	return NewChatbotService(testChatbotConfig(), fakeTranslator{}, nil, zerolog.Nop())
}

func TestPredictIntentCoreCategories(t *testing.T) {
	s := newTestChatbot(t)

	cases := []struct {
		text string
		want models.IntentTag
	}{
		{"hello", models.IntentGreeting},
		{"I have a high fever since yesterday", models.IntentFever},
		{"emergency help needed now", models.IntentEmergency},
		{"when is my covid vaccine due", models.IntentVaccinationSchedule},
		{"I need to find a doctor", models.IntentFindDoctor},
	}
	for _, tc := range cases {
		tag, _ := s.PredictIntent(tc.text)
		if tag != tc.want {
			t.Errorf("PredictIntent(%q) = %s, want %s", tc.text, tag, tc.want)
		}
	}
}

func TestGetResponsePersonalization(t *testing.T) {
	s := newTestChatbot(t)

	response := s.GetResponse("hello", "", "Priya", "en")
	if !strings.HasPrefix(response, "Hello Priya! ") {
		t.Errorf("expected personalized prefix, got %q", response)
	}

	// The placeholder name must not trigger the prefix.
	response = s.GetResponse("hello", "", "User", "en")
	if strings.HasPrefix(response, "Hello User!") {
		t.Errorf("placeholder name should not be personalized: %q", response)
	}

	response = s.GetResponse("hello", "", "", "en")
	if strings.HasPrefix(response, "Hello !") {
		t.Errorf("empty name should not be personalized: %q", response)
	}
}

func TestGetResponseEmergencySafetyNet(t *testing.T) {
	s := newTestChatbot(t)

	// Phrasing that does not classify as emergency but contains an
	// emergency keyword still gets the warning appended.
	response := s.GetResponse("I am choking on food", "", "", "en")
	if !strings.Contains(response, "call 108") {
		t.Errorf("expected emergency warning with helpline number, got %q", response)
	}
}

func TestGetResponseFollowUpSuggestions(t *testing.T) {
	s := newTestChatbot(t)

	response := s.GetResponse("I have fever and body ache", "", "", "en")
	if !strings.Contains(response, "You might also want to:") {
		t.Errorf("expected follow-up suggestions for fever, got %q", response)
	}
	if !strings.Contains(response, "Monitor temperature regularly") {
		t.Errorf("expected fever follow-up content, got %q", response)
	}
}

func TestGetResponseTranslation(t *testing.T) {
	s := newTestChatbot(t)

	response := s.GetResponse("hello", "", "", "hi")
	if !strings.HasPrefix(response, "[hi] ") {
		t.Errorf("expected translated response for hi, got %q", response)
	}

	response = s.GetResponse("hello", "", "", "en")
	if strings.HasPrefix(response, "[en]") {
		t.Errorf("english responses must not be translated: %q", response)
	}
}

func TestGetResponseRecordsSession(t *testing.T) {
	s := newTestChatbot(t)

	s.GetResponse("hello", "+911234567890", "Priya", "en")
	s.GetResponse("I have a fever", "+911234567890", "Priya", "en")

	session, ok := s.Session("+911234567890")
	if !ok {
		t.Fatal("expected session for phone")
	}
	if len(session.History) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(session.History))
	}
	if session.UserName != "Priya" {
		t.Errorf("expected user name Priya, got %q", session.UserName)
	}

	// Messages without a phone must not create sessions.
	s.GetResponse("hello", "", "", "en")
	if s.SessionCount() != 1 {
		t.Errorf("expected 1 session, got %d", s.SessionCount())
	}
}

func TestGetSMSResponseTable(t *testing.T) {
	s := newTestChatbot(t)

	response := s.GetSMSResponse("emergency chest pain")
	if !strings.Contains(response, "108") {
		t.Errorf("expected emergency SMS with helpline, got %q", response)
	}

	// Every table entry must fit one SMS segment.
	for tag, response := range smsResponses {
		if len([]rune(response)) > 160 {
			t.Errorf("SMS response for %s exceeds 160 chars: %d", tag, len([]rune(response)))
		}
	}

	response = s.GetSMSResponse("what is a balanced diet")
	if response != defaultSMSResponse {
		t.Errorf("expected default SMS response, got %q", response)
	}
}

func TestRespondDefaults(t *testing.T) {
	s := newTestChatbot(t)

	resp := s.Respond(context.Background(), models.ChatRequest{Message: "hello"})
	if resp.Language != "en" {
		t.Errorf("expected default language en, got %q", resp.Language)
	}
	if resp.Intent != models.IntentGreeting {
		t.Errorf("expected greeting intent, got %s", resp.Intent)
	}
	if resp.Response == "" {
		t.Error("expected non-empty response")
	}
}

func TestKeywordModeSelection(t *testing.T) {
	cfg := testChatbotConfig()
	cfg.Mode = "keyword"
	s := NewChatbotService(cfg, fakeTranslator{}, nil, zerolog.Nop())

	tag, confidence := s.PredictIntent("hello")
	if tag != models.IntentGreeting {
		t.Errorf("expected greeting, got %s", tag)
	}
	if confidence != 0.9 {
		t.Errorf("expected keyword confidence 0.9, got %f", confidence)
	}
}
