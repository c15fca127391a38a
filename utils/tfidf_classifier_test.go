package utils

import (
	"testing"

	"health-chatbot-backend/models"
)

func testCatalog() []models.IntentDefinition {
	return []models.IntentDefinition{
		{
			Tag:      models.IntentGreeting,
			Patterns: []string{"hello", "good morning", "hey there"},
		},
		{
			Tag:      models.IntentFever,
			Patterns: []string{"I have fever", "my temperature is high", "feeling feverish"},
		},
		{
			Tag:      models.IntentFindDoctor,
			Patterns: []string{"find a doctor", "need a doctor near me", "hospital nearby"},
		},
	}
}

func TestTFIDFClassifierMatchesTrainedPatterns(t *testing.T) {
	c, err := NewTFIDFClassifier(testCatalog(), NewKeywordClassifier(0.5))
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}

	if c.TrainedPatterns() != 9 {
		t.Errorf("expected 9 trained patterns, got %d", c.TrainedPatterns())
	}

	tag, confidence := c.PredictIntent("I think I have a fever")
	if tag != models.IntentFever {
		t.Errorf("expected fever intent, got %s", tag)
	}
	if confidence <= 0 || confidence > 1 {
		t.Errorf("confidence out of range: %f", confidence)
	}
}

func TestTFIDFClassifierExactPatternHighConfidence(t *testing.T) {
	c, err := NewTFIDFClassifier(testCatalog(), NewKeywordClassifier(0.5))
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}

	tag, confidence := c.PredictIntent("find a doctor")
	if tag != models.IntentFindDoctor {
		t.Errorf("expected find_doctor intent, got %s", tag)
	}
	if confidence < 0.99 {
		t.Errorf("expected near-perfect similarity for exact pattern, got %f", confidence)
	}
}

func TestTFIDFClassifierFallsBackOnUnknownVocabulary(t *testing.T) {
	c, err := NewTFIDFClassifier(testCatalog(), NewKeywordClassifier(0.5))
	if err != nil {
		t.Fatalf("training failed: %v", err)
	}

	// No token overlap with the catalog, so the keyword strategy decides.
	tag, confidence := c.PredictIntent("chest pain emergency")
	if tag != models.IntentEmergency {
		t.Errorf("expected keyword fallback to emergency, got %s", tag)
	}
	if confidence != 0.9 {
		t.Errorf("expected keyword confidence 0.9, got %f", confidence)
	}
}

func TestTFIDFClassifierEmptyCatalog(t *testing.T) {
	if _, err := NewTFIDFClassifier(nil, NewKeywordClassifier(0.5)); err == nil {
		t.Error("expected error for empty catalog")
	}
}
