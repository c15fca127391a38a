package utils

import (
	"strings"

	"health-chatbot-backend/models"
)

// keywordRule maps a set of trigger substrings to an intent with a fixed
// confidence. Rules are evaluated in order; the first match wins.
type keywordRule struct {
	tag        models.IntentTag
	confidence float64
	keywords   []string
}

// KeywordClassifier is the deterministic fallback strategy: an ordered list of
// substring checks. The ordering is a priority ranking — emergency detection
// must take precedence over every other category, and fever is checked before
// headache so "I have a headache and fever" resolves to fever.
type KeywordClassifier struct {
	rules             []keywordRule
	defaultConfidence float64
}

// NewKeywordClassifier builds the fixed priority rule list.
func NewKeywordClassifier(defaultConfidence float64) *KeywordClassifier {
	return &KeywordClassifier{
		defaultConfidence: defaultConfidence,
		rules: []keywordRule{
			{models.IntentEmergency, 0.9, []string{"emergency", "urgent", "chest pain", "heart attack", "can't breathe", "unconscious"}},
			{models.IntentCovidSymptoms, 0.8, []string{"covid", "coronavirus", "covid-19", "omicron", "loss of taste", "loss of smell"}},
			{models.IntentFever, 0.8, []string{"fever", "temperature", "high temp", "bukhar"}},
			{models.IntentCough, 0.8, []string{"cough", "khansi", "coughing"}},
			{models.IntentHeadache, 0.8, []string{"headache", "sir dard", "migraine", "head pain"}},
			{models.IntentFindDoctor, 0.8, []string{"doctor", "hospital", "specialist", "daktar"}},
			{models.IntentVaccinationSchedule, 0.8, []string{"vaccine", "vaccination", "tika", "immunization"}},
			{models.IntentMedicineInfo, 0.7, []string{"medicine", "medication", "dawa", "tablet"}},
			{models.IntentMentalHealth, 0.8, []string{"depression", "anxiety", "stress", "sad", "worried"}},
			{models.IntentFirstAid, 0.7, []string{"first aid", "bleeding", "burn", "wound", "accident"}},
			{models.IntentGreeting, 0.9, []string{"hi", "hello", "namaste", "hey"}},
		},
	}
}

// PredictIntent returns the first rule whose keywords match, or the generic
// default. Never fails.
func (kc *KeywordClassifier) PredictIntent(text string) (models.IntentTag, float64) {
	lower := strings.ToLower(text)
	for _, rule := range kc.rules {
		if containsAnyKeyword(lower, rule.keywords) {
			return rule.tag, rule.confidence
		}
	}
	return models.IntentGeneralHealth, kc.defaultConfidence
}

func containsAnyKeyword(message string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
