package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

const twilioAPIURL = "https://api.twilio.com/2010-04-01"

// twilioAPI is the shared REST client behind the WhatsApp and SMS senders:
// form-encoded POST to the Messages resource with basic auth.
type twilioAPI struct {
	accountSID string
	authToken  string
	httpClient *http.Client
	logger     zerolog.Logger
}

func newTwilioAPI(cfg config.TwilioConfig, logger zerolog.Logger) *twilioAPI {
	return &twilioAPI{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (t *twilioAPI) configured() bool {
	return t.accountSID != "" && t.authToken != ""
}

// createMessage posts one outbound message. Failures come back inside the
// DeliveryResult, never as a panic or propagated error — delivery problems
// must not abort a broadcast fan-out.
func (t *twilioAPI) createMessage(from, to, body, mediaURL string) models.DeliveryResult {
	if !t.configured() {
		return models.DeliveryResult{Error: "messaging not configured"}
	}

	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)
	if mediaURL != "" {
		form.Set("MediaUrl", mediaURL)
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", twilioAPIURL, t.accountSID)

	ctx, cancel := context.WithTimeout(context.Background(), t.httpClient.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		t.logger.Error().Err(err).Msg("failed to create Twilio request")
		return models.DeliveryResult{Error: err.Error()}
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.Error().Err(err).Str("to", to).Msg("Twilio request failed")
		return models.DeliveryResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	var payload struct {
		SID     string `json:"sid"`
		Status  string `json:"status"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.logger.Error().Err(err).Msg("failed to decode Twilio response")
		return models.DeliveryResult{Error: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		t.logger.Error().
			Int("status", resp.StatusCode).
			Int("code", payload.Code).
			Str("to", to).
			Msg("Twilio API error")
		return models.DeliveryResult{
			Status: payload.Status,
			Error:  fmt.Sprintf("Twilio API error %d: %s", payload.Code, payload.Message),
		}
	}

	t.logger.Debug().Str("sid", payload.SID).Str("to", to).Msg("message accepted by Twilio")
	return models.DeliveryResult{
		Success:    true,
		MessageSID: payload.SID,
		Status:     payload.Status,
	}
}
