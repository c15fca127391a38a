package services

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"health-chatbot-backend/config"
	"health-chatbot-backend/models"
)

// WhatsAppService sends WhatsApp messages through the Twilio Messages API.
type WhatsAppService struct {
	api        *twilioAPI
	fromNumber string

	// Status tracking
	statusMu        sync.RWMutex
	lastMessageTime time.Time
	messageCount    int64
	dailyCount      map[string]int
}

func NewWhatsAppService(cfg config.TwilioConfig, logger zerolog.Logger) *WhatsAppService {
	return &WhatsAppService{
		api:        newTwilioAPI(cfg, logger.With().Str("channel", "whatsapp").Logger()),
		fromNumber: cfg.WhatsAppNumber,
		dailyCount: make(map[string]int),
	}
}

// Enabled reports whether the service can attempt delivery.
func (ws *WhatsAppService) Enabled() bool {
	return ws.api.configured() && ws.fromNumber != ""
}

// SendMessage delivers body to the given phone number over WhatsApp. The
// optional mediaURL attaches one media item.
func (ws *WhatsAppService) SendMessage(to, body, mediaURL string) models.DeliveryResult {
	result := ws.api.createMessage(whatsAppAddress(ws.fromNumber), whatsAppAddress(to), body, mediaURL)
	if result.Success {
		ws.updateMessageStatus()
	}
	return result
}

// GetStatus returns service health for the admin/status endpoint.
func (ws *WhatsAppService) GetStatus() map[string]any {
	ws.statusMu.RLock()
	defer ws.statusMu.RUnlock()

	today := time.Now().Format("2006-01-02")
	return map[string]any{
		"enabled":             ws.Enabled(),
		"last_message_sent":   ws.lastMessageTime,
		"message_count":       ws.messageCount,
		"message_count_today": ws.dailyCount[today],
	}
}

func (ws *WhatsAppService) updateMessageStatus() {
	ws.statusMu.Lock()
	defer ws.statusMu.Unlock()

	ws.lastMessageTime = time.Now()
	ws.messageCount++
	ws.dailyCount[time.Now().Format("2006-01-02")]++
}

// whatsAppAddress adds the channel prefix Twilio expects.
func whatsAppAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}
