package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/database"
	"health-chatbot-backend/models"
	"health-chatbot-backend/utils"
)

// defaultUserName is the placeholder used when the caller's name is unknown;
// it suppresses the personalized greeting prefix.
const defaultUserName = "User"

const genericFallbackResponse = "I understand you have a health-related question. " +
	"Could you provide more specific information about your symptoms or concern? " +
	"I'm here to help with health guidance, but please consult a healthcare " +
	"professional for proper diagnosis and treatment."

// emergencyKeywords is the safety-net set: even when classification lands on a
// non-emergency intent, input matching any of these gets the emergency warning
// appended.
var emergencyKeywords = []string{
	"chest pain", "heart attack", "difficulty breathing", "can't breathe",
	"severe bleeding", "unconscious", "choking", "severe burn",
}

var followUpSuggestions = map[models.IntentTag]string{
	models.IntentFever:               "• Monitor temperature regularly\n• Stay hydrated with fluids\n• Rest and avoid exertion",
	models.IntentCough:               "• Avoid smoking and pollutants\n• Use humidifier\n• Sleep with head elevated",
	models.IntentFindDoctor:          "• Check doctor credentials\n• Read patient reviews\n• Verify insurance coverage",
	models.IntentVaccinationSchedule: "• Set vaccination reminders\n• Keep vaccination records\n• Ask about side effects",
	models.IntentMentalHealth:        "• Practice daily meditation\n• Exercise regularly\n• Connect with support groups",
}

// smsResponses is the dedicated short-form table for the SMS channel: no
// personalization, no follow-ups, no translation.
var smsResponses = map[models.IntentTag]string{
	models.IntentEmergency:           "🚨 EMERGENCY: Call 108 now! Visit nearest hospital immediately.",
	models.IntentFever:               "🌡️ FEVER: Rest, hydrate, paracetamol. See doctor if >103°F or persists >3 days.",
	models.IntentCough:               "😷 COUGH: Honey+warm water, steam. See doctor if >2 weeks or blood.",
	models.IntentCovidSymptoms:       "🦠 COVID: Get tested, isolate, consult doctor. Monitor oxygen levels.",
	models.IntentHeadache:            "🤕 HEADACHE: Rest in dark room, hydrate, cold compress. Emergency if sudden/severe.",
	models.IntentFindDoctor:          "🏥 DOCTORS: Call 104 helpline or visit mohfw.gov.in, Practo.com",
	models.IntentVaccinationSchedule: "💉 VACCINES: Use CoWIN app or visit nearest PHC. Call 104 for info.",
	models.IntentMentalHealth:        "🧠 MENTAL HEALTH: Call 1800-599-0019 or iCall 9152987821 for help.",
	models.IntentFirstAid:            "🚑 FIRST AID: Clean wounds, apply pressure for bleeding. Call 108 if severe.",
	models.IntentMedicineInfo:        "💊 MEDICINES: Consult doctor/pharmacist. Never self-medicate.",
	models.IntentGreeting:            "🏥 Health Bot: Ask symptoms, find doctors, vaccine info. Type HELP for commands.",
}

const defaultSMSResponse = "Health query received. For detailed help, use web or WhatsApp."

// ChatbotService composes responses to health questions: classify, select a
// response, personalize, apply the emergency safety net, append follow-ups,
// and translate when requested.
type ChatbotService struct {
	classifier      utils.IntentClassifier
	catalog         map[models.IntentTag]models.IntentDefinition
	sessions        *SessionStore
	translator      Translator
	messages        *database.MessageRepository
	emergencyNumber string
	logger          zerolog.Logger
}

// NewChatbotService wires the classification strategy selected by cfg. The
// TF-IDF strategy is used unless the mode is "keyword" or training fails;
// either way the keyword path stays available as the in-classifier fallback.
func NewChatbotService(cfg config.ChatbotConfig, translator Translator, messages *database.MessageRepository, logger zerolog.Logger) *ChatbotService {
	catalogSlice := DefaultIntentCatalog()
	catalog := make(map[models.IntentTag]models.IntentDefinition, len(catalogSlice))
	for _, intent := range catalogSlice {
		catalog[intent.Tag] = intent
	}

	keyword := utils.NewKeywordClassifier(cfg.DefaultConfidence)
	var classifier utils.IntentClassifier = keyword
	if cfg.Mode == "tfidf" {
		tfidf, err := utils.NewTFIDFClassifier(catalogSlice, keyword)
		if err != nil {
			logger.Warn().Err(err).Msg("TF-IDF training failed, using keyword classifier")
		} else {
			logger.Info().Int("patterns", tfidf.TrainedPatterns()).Msg("trained TF-IDF intent classifier")
			classifier = tfidf
		}
	}

	return &ChatbotService{
		classifier:      classifier,
		catalog:         catalog,
		sessions:        NewSessionStore(cfg.SessionHistoryMax),
		translator:      translator,
		messages:        messages,
		emergencyNumber: cfg.EmergencyNumber,
		logger:          logger,
	}
}

// PredictIntent classifies free text. Never fails.
func (s *ChatbotService) PredictIntent(text string) (models.IntentTag, float64) {
	return s.classifier.PredictIntent(text)
}

// GetResponse composes the full response for one inbound message. When phone
// is non-empty the message is appended to that phone's conversation session.
func (s *ChatbotService) GetResponse(text, phone, name, language string) string {
	response, _, _ := s.compose(text, phone, name, language)
	return response
}

// GetSMSResponse returns the fixed short-form response for the SMS channel.
func (s *ChatbotService) GetSMSResponse(text string) string {
	tag, _ := s.classifier.PredictIntent(text)
	if response, ok := smsResponses[tag]; ok {
		return response
	}
	return defaultSMSResponse
}

// Respond composes a response and, when a message log is configured, records
// the exchange. Used by the HTTP, WebSocket and webhook surfaces.
func (s *ChatbotService) Respond(ctx context.Context, req models.ChatRequest) *models.ChatResponse {
	language := req.Language
	if language == "" {
		language = "en"
	}

	response, tag, confidence := s.compose(req.Message, req.Phone, req.Name, language)

	if s.messages != nil {
		channel := req.Channel
		if channel == "" {
			channel = models.ChannelWeb
		}
		record := models.Message{
			Phone:       req.Phone,
			UserMessage: req.Message,
			BotResponse: response,
			Intent:      tag,
			Confidence:  confidence,
			Language:    language,
			Channel:     channel,
			Timestamp:   time.Now(),
		}
		if err := s.messages.Save(ctx, record); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist chat message")
		}
	}

	return &models.ChatResponse{
		Response:   response,
		Intent:     tag,
		Confidence: confidence,
		Language:   language,
		Timestamp:  time.Now(),
	}
}

// RespondSMS composes the short-form SMS response and records the exchange.
func (s *ChatbotService) RespondSMS(ctx context.Context, text, phone string) string {
	tag, confidence := s.classifier.PredictIntent(text)
	response, ok := smsResponses[tag]
	if !ok {
		response = defaultSMSResponse
	}

	if s.messages != nil {
		record := models.Message{
			Phone:       phone,
			UserMessage: text,
			BotResponse: response,
			Intent:      tag,
			Confidence:  confidence,
			Language:    "en",
			Channel:     models.ChannelSMS,
			Timestamp:   time.Now(),
		}
		if err := s.messages.Save(ctx, record); err != nil {
			s.logger.Warn().Err(err).Msg("failed to persist chat message")
		}
	}

	return response
}

// SessionCount reports the number of active conversation sessions.
func (s *ChatbotService) SessionCount() int {
	return s.sessions.Count()
}

// Session returns a snapshot of one phone's conversation session.
func (s *ChatbotService) Session(phone string) (models.ConversationSession, bool) {
	return s.sessions.Get(phone)
}

func (s *ChatbotService) compose(text, phone, name, language string) (string, models.IntentTag, float64) {
	if phone != "" {
		s.sessions.Append(phone, text, name, language)
	}

	tag, confidence := s.classifier.PredictIntent(text)
	response := s.intentResponse(tag)

	if name != "" && name != defaultUserName {
		response = fmt.Sprintf("Hello %s! %s", name, response)
	}

	if tag != models.IntentEmergency && containsEmergencyKeywords(text) {
		response += fmt.Sprintf("\n\n⚠️ **If this is a medical emergency, please call %s immediately!**", s.emergencyNumber)
	}

	if followUp, ok := followUpSuggestions[tag]; ok {
		response += fmt.Sprintf("\n\n**You might also want to:**\n%s", followUp)
	}

	if language != "" && language != "en" && s.translator != nil {
		response = s.translator.TranslateHealthcareResponse(response, language, text)
	}

	return response, tag, confidence
}

// intentResponse picks one response uniformly at random from the intent's
// catalog entry, or the generic fallback when the tag has no entry.
func (s *ChatbotService) intentResponse(tag models.IntentTag) string {
	intent, ok := s.catalog[tag]
	if !ok || len(intent.Responses) == 0 {
		return genericFallbackResponse
	}
	return intent.Responses[rand.Intn(len(intent.Responses))]
}

func containsEmergencyKeywords(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}
