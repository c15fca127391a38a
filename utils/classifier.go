package utils

import "health-chatbot-backend/models"

// IntentClassifier predicts an intent tag and a confidence in [0,1] for free
// text. Implementations never fail: unmatched input resolves to
// models.IntentGeneralHealth with the default confidence.
type IntentClassifier interface {
	PredictIntent(text string) (models.IntentTag, float64)
}
