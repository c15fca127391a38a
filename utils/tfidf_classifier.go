package utils

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"health-chatbot-backend/models"
)

// englishStopWords are excluded from TF-IDF vocabulary.
var englishStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "can": {}, "do": {}, "for": {}, "from": {}, "had": {},
	"has": {}, "have": {}, "he": {}, "her": {}, "his": {}, "i": {}, "if": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "me": {}, "my": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "or": {}, "our": {}, "she": {}, "so": {},
	"that": {}, "the": {}, "their": {}, "then": {}, "there": {}, "they": {},
	"this": {}, "to": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "who": {}, "will": {}, "with": {},
	"you": {}, "your": {},
}

// TFIDFClassifier is the similarity strategy: every catalog pattern is
// vectorized with term-frequency x inverse-document-frequency weighting, and
// prediction takes the cosine-nearest pattern's label. Ties break on the
// first-encountered pattern index. Inputs that share no vocabulary with the
// catalog fall through to the keyword strategy so prediction never fails.
type TFIDFClassifier struct {
	vocabulary map[string]int
	idf        []float64
	vectors    [][]float64
	labels     []models.IntentTag
	fallback   *KeywordClassifier
}

// NewTFIDFClassifier trains on all patterns of the catalog. Returns an error
// when the catalog yields an empty vocabulary, in which case the caller should
// use the keyword strategy alone.
func NewTFIDFClassifier(catalog []models.IntentDefinition, fallback *KeywordClassifier) (*TFIDFClassifier, error) {
	var patterns []string
	var labels []models.IntentTag
	for _, intent := range catalog {
		for _, pattern := range intent.Patterns {
			patterns = append(patterns, pattern)
			labels = append(labels, intent.Tag)
		}
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("intent catalog has no patterns to train on")
	}

	// Build vocabulary and document frequencies.
	vocabulary := make(map[string]int)
	docFreq := make(map[string]int)
	tokenized := make([][]string, len(patterns))
	for i, pattern := range patterns {
		tokens := tokenize(pattern)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := vocabulary[tok]; !ok {
				vocabulary[tok] = len(vocabulary)
			}
			if _, ok := seen[tok]; !ok {
				docFreq[tok]++
				seen[tok] = struct{}{}
			}
		}
	}
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("intent catalog patterns contain only stop words")
	}

	// Smoothed IDF, matching the usual tf-idf formulation.
	n := float64(len(patterns))
	idf := make([]float64, len(vocabulary))
	for term, idx := range vocabulary {
		idf[idx] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	c := &TFIDFClassifier{
		vocabulary: vocabulary,
		idf:        idf,
		labels:     labels,
		fallback:   fallback,
	}
	c.vectors = make([][]float64, len(patterns))
	for i, tokens := range tokenized {
		c.vectors[i] = c.vectorizeTokens(tokens)
	}
	return c, nil
}

// PredictIntent vectorizes the input and returns the label of the most
// similar pattern; confidence is the cosine similarity itself.
func (c *TFIDFClassifier) PredictIntent(text string) (models.IntentTag, float64) {
	vector := c.vectorizeTokens(tokenize(text))
	if norm(vector) == 0 {
		return c.fallback.PredictIntent(text)
	}

	bestIdx := -1
	bestScore := 0.0
	for i, pattern := range c.vectors {
		score := cosineSimilarity(vector, pattern)
		// Stable argmax: strictly greater keeps the first-encountered index.
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return c.fallback.PredictIntent(text)
	}
	return c.labels[bestIdx], bestScore
}

// TrainedPatterns reports the number of patterns the classifier was fit on.
func (c *TFIDFClassifier) TrainedPatterns() int {
	return len(c.vectors)
}

func (c *TFIDFClassifier) vectorizeTokens(tokens []string) []float64 {
	vector := make([]float64, len(c.vocabulary))
	for _, tok := range tokens {
		if idx, ok := c.vocabulary[tok]; ok {
			vector[idx] += c.idf[idx]
		}
	}
	return vector
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if _, stop := englishStopWords[f]; !stop {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func cosineSimilarity(a, b []float64) float64 {
	na, nb := norm(a), norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot / (na * nb)
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
