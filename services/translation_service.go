package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

// SupportedLanguages lists the Indian languages the service can localize to.
var SupportedLanguages = map[string]models.LanguageInfo{
	"en": {Name: "English", Native: "English"},
	"hi": {Name: "Hindi", Native: "हिन्दी"},
	"bn": {Name: "Bengali", Native: "বাংলা"},
	"te": {Name: "Telugu", Native: "తెలుగు"},
	"ta": {Name: "Tamil", Native: "தமிழ்"},
	"gu": {Name: "Gujarati", Native: "ગુજરાતી"},
	"kn": {Name: "Kannada", Native: "ಕನ್ನಡ"},
	"ml": {Name: "Malayalam", Native: "മലയാളം"},
	"mr": {Name: "Marathi", Native: "मराठी"},
	"pa": {Name: "Punjabi", Native: "ਪੰਜਾਬੀ"},
	"or": {Name: "Odia", Native: "ଓଡ଼ିଆ"},
	"as": {Name: "Assamese", Native: "অসমীয়া"},
	"ur": {Name: "Urdu", Native: "اردو"},
}

// healthcareTranslations is the offline fallback dictionary used when the
// Google Translate API is not configured or fails.
var healthcareTranslations = map[string]map[string]string{
	"fever": {
		"hi": "बुखार", "bn": "জ্বর", "te": "జ్వరం", "ta": "காய்ச்சல்",
		"gu": "તાવ", "kn": "ಜ್ವರ", "ml": "പനി", "mr": "ताप",
		"pa": "ਬੁਖ਼ਾਰ", "or": "ଜ୍ୱର", "ur": "بخار",
	},
	"headache": {
		"hi": "सिरदर्द", "bn": "মাথাব্যথা", "te": "తలనొప్పి", "ta": "தலைவலி",
		"gu": "માથાનો દુખાવો", "mr": "डोकेदुखी", "ur": "سر درد",
	},
	"doctor": {
		"hi": "डॉक्टर", "bn": "ডাক্তার", "te": "డాక్టర్", "ta": "மருத்துவர்",
		"gu": "ડૉક્ટર", "mr": "डॉक्टर", "ur": "ڈاکٹر",
	},
	"vaccine": {
		"hi": "टीका", "bn": "টিকা", "te": "టీకా", "ta": "தடுப்பூசி",
		"gu": "રસી", "mr": "लस", "ur": "ویکسین",
	},
}

// languagePrefixes are the localized labels prepended to translated
// healthcare responses.
var languagePrefixes = map[string]string{
	"hi": "🏥 स्वास्थ्य सहायता:",
	"bn": "🏥 স্বাস্থ্য সহায়তা:",
	"te": "🏥 ఆరోగ్య సహాయం:",
	"ta": "🏥 சுகாதார உதவி:",
	"gu": "🏥 આરોગ્ય સહાય:",
	"kn": "🏥 ಆರೋಗ್ಯ ಸಹಾಯ:",
	"ml": "🏥 ആരോഗ്യ സഹായം:",
	"mr": "🏥 आरोग्य मदत:",
	"pa": "🏥 ਸਿਹਤ ਸਹਾਇਤਾ:",
	"ur": "🏥 صحت کی مدد:",
}

const defaultLanguagePrefix = "🏥 Health Assistant:"

const googleTranslateURL = "https://translation.googleapis.com/language/translate/v2"

// TranslationService localizes responses via the Google Translate v2 REST API
// when an API key is configured, degrading to a healthcare-term dictionary and
// a Unicode-script detection heuristic otherwise. No method ever fails: on any
// error the input text comes back unchanged.
type TranslationService struct {
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewTranslationService(cfg config.TranslationConfig, logger zerolog.Logger) *TranslationService {
	if cfg.GoogleAPIKey == "" {
		logger.Warn().Msg("Google Translate API key not configured, using dictionary fallback")
	}
	return &TranslationService{
		apiKey:     cfg.GoogleAPIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

// DetectLanguage guesses the language of text. Short texts default to English.
func (ts *TranslationService) DetectLanguage(text string) string {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < 3 {
		return "en"
	}

	if lang := detectByScript(trimmed); lang != "" {
		return lang
	}

	if ts.apiKey != "" {
		if lang, err := ts.googleDetect(trimmed); err == nil {
			if _, ok := SupportedLanguages[lang]; ok {
				return lang
			}
		} else {
			ts.logger.Warn().Err(err).Msg("language detection request failed")
		}
	}

	return "en"
}

// TranslateText translates text into targetLanguage. English targets and
// unsupported languages return the text unchanged.
func (ts *TranslationService) TranslateText(text, targetLanguage, sourceLanguage string) string {
	if text == "" || targetLanguage == "en" || targetLanguage == "" {
		return text
	}
	if _, ok := SupportedLanguages[targetLanguage]; !ok {
		ts.logger.Warn().Str("language", targetLanguage).Msg("unsupported translation target")
		return text
	}

	if ts.apiKey != "" {
		if translated, err := ts.googleTranslate(text, targetLanguage, sourceLanguage); err == nil {
			return translated
		} else {
			ts.logger.Warn().Err(err).Str("language", targetLanguage).Msg("translation request failed, using dictionary fallback")
		}
	}

	return dictionaryTranslate(text, targetLanguage)
}

// TranslateHealthcareResponse translates a composed response and prepends the
// localized health-assistant label.
func (ts *TranslationService) TranslateHealthcareResponse(response, targetLanguage, userInput string) string {
	if targetLanguage == "en" || targetLanguage == "" {
		return response
	}

	translated := ts.TranslateText(response, targetLanguage, "")
	prefix, ok := languagePrefixes[targetLanguage]
	if !ok {
		prefix = defaultLanguagePrefix
	}
	return fmt.Sprintf("%s\n\n%s", prefix, translated)
}

// SupportedLanguagesInfo reports the supported language set and capabilities.
func (ts *TranslationService) SupportedLanguagesInfo() map[string]any {
	return map[string]any{
		"total_supported":            len(SupportedLanguages),
		"languages":                  SupportedLanguages,
		"google_translate_enabled":   ts.apiKey != "",
		"healthcare_terms_available": len(healthcareTranslations),
	}
}

func (ts *TranslationService) googleTranslate(text, target, source string) (string, error) {
	form := url.Values{}
	form.Set("q", text)
	form.Set("target", target)
	form.Set("format", "text")
	if source != "" {
		form.Set("source", source)
	}

	var result struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	if err := ts.postForm(googleTranslateURL, form, &result); err != nil {
		return "", err
	}
	if len(result.Data.Translations) == 0 {
		return "", fmt.Errorf("empty translation result")
	}
	return result.Data.Translations[0].TranslatedText, nil
}

func (ts *TranslationService) googleDetect(text string) (string, error) {
	form := url.Values{}
	form.Set("q", text)

	var result struct {
		Data struct {
			Detections [][]struct {
				Language string `json:"language"`
			} `json:"detections"`
		} `json:"data"`
	}
	if err := ts.postForm(googleTranslateURL+"/detect", form, &result); err != nil {
		return "", err
	}
	if len(result.Data.Detections) == 0 || len(result.Data.Detections[0]) == 0 {
		return "", fmt.Errorf("empty detection result")
	}
	return result.Data.Detections[0][0].Language, nil
}

func (ts *TranslationService) postForm(endpoint string, form url.Values, out any) error {
	ctx, cancel := context.WithTimeout(context.Background(), ts.httpClient.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"?key="+url.QueryEscape(ts.apiKey), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("translate API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// dictionaryTranslate substitutes known healthcare terms. It is intentionally
// crude — a last-resort path so non-English subscribers still get a hint of
// localization without the API.
func dictionaryTranslate(text, target string) string {
	lowered := strings.ToLower(text)
	for term, translations := range healthcareTranslations {
		if translated, ok := translations[target]; ok && strings.Contains(lowered, term) {
			lowered = strings.ReplaceAll(lowered, term, translated)
		}
	}
	return lowered
}

// detectByScript maps the first non-Latin script found to a language code.
// Devanagari is ambiguous between Hindi and Marathi; Hindi wins as the more
// common case.
func detectByScript(text string) string {
	scripts := []struct {
		table *unicode.RangeTable
		lang  string
	}{
		{unicode.Devanagari, "hi"},
		{unicode.Bengali, "bn"},
		{unicode.Telugu, "te"},
		{unicode.Tamil, "ta"},
		{unicode.Gujarati, "gu"},
		{unicode.Kannada, "kn"},
		{unicode.Malayalam, "ml"},
		{unicode.Gurmukhi, "pa"},
		{unicode.Oriya, "or"},
		{unicode.Arabic, "ur"},
	}
	for _, r := range text {
		for _, s := range scripts {
			if unicode.Is(s.table, r) {
				return s.lang
			}
		}
	}
	return ""
}
