package controllers

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"health-chatbot-backend/models"
	"health-chatbot-backend/services"
)

const whatsappHelpText = `🏥 *Health Assistant Help*

You can ask me about:
• Symptoms (fever, cough, headache)
• COVID-19 information
• Finding doctors and hospitals
• Vaccination schedules
• Mental health support
• First aid guidance

Commands:
• HELP - show this message
• STOP - unsubscribe from alerts

For emergencies, call 108 immediately.`

// twimlResponse is the Twilio Markup reply envelope for inbound webhooks.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// WebhookController receives inbound WhatsApp and SMS messages from Twilio
// and replies inline with TwiML.
type WebhookController struct {
	chatbot    *services.ChatbotService
	translator *services.TranslationService
	alerts     *services.AlertScheduler
	logger     zerolog.Logger
}

func NewWebhookController(chatbot *services.ChatbotService, translator *services.TranslationService, alerts *services.AlertScheduler, logger zerolog.Logger) *WebhookController {
	return &WebhookController{
		chatbot:    chatbot,
		translator: translator,
		alerts:     alerts,
		logger:     logger,
	}
}

// HandleWhatsApp processes an inbound WhatsApp message: detect the sender's
// language, compose the full personalized response and reply as TwiML.
func (wc *WebhookController) HandleWhatsApp(c *gin.Context) {
	body := strings.TrimSpace(c.PostForm("Body"))
	phone := strings.TrimPrefix(c.PostForm("From"), "whatsapp:")
	name := c.PostForm("ProfileName")

	if body == "" {
		wc.replyTwiML(c, "Please send a message describing your health question.")
		return
	}

	wc.logger.Info().Str("phone", phone).Msg("inbound WhatsApp message")

	switch strings.ToUpper(body) {
	case "HELP":
		wc.replyTwiML(c, whatsappHelpText)
		return
	case "STOP":
		wc.alerts.Unsubscribe(phone)
		wc.replyTwiML(c, "You have been unsubscribed from health alerts. Send SUBSCRIBE to opt back in.")
		return
	case "SUBSCRIBE":
		language := wc.translator.DetectLanguage(body)
		wc.alerts.Subscribe(phone, language, nil)
		wc.replyTwiML(c, "✅ You are subscribed to health alerts: vaccination reminders, advisories and outbreak warnings.")
		return
	}

	language := wc.translator.DetectLanguage(body)
	response := wc.chatbot.Respond(c.Request.Context(), models.ChatRequest{
		Message:  body,
		Phone:    phone,
		Name:     name,
		Language: language,
		Channel:  models.ChannelWhatsApp,
	})
	wc.replyTwiML(c, response.Response)
}

// HandleSMS processes an inbound SMS with the short-form response table.
// STOP and SUBSCRIBE manage the alert registry.
func (wc *WebhookController) HandleSMS(c *gin.Context) {
	body := strings.TrimSpace(c.PostForm("Body"))
	phone := c.PostForm("From")

	if body == "" {
		wc.replyTwiML(c, "Send a health question, or HELP for options.")
		return
	}

	wc.logger.Info().Str("phone", phone).Msg("inbound SMS message")

	switch strings.ToUpper(body) {
	case "STOP":
		wc.alerts.Unsubscribe(phone)
		wc.replyTwiML(c, "Unsubscribed from health alerts. Send SUBSCRIBE to opt back in.")
		return
	case "SUBSCRIBE":
		wc.alerts.Subscribe(phone, "en", nil)
		wc.replyTwiML(c, "Subscribed to health alerts. Send STOP to unsubscribe.")
		return
	case "HELP":
		wc.replyTwiML(c, "Health Bot: text symptoms for advice, SUBSCRIBE for alerts, STOP to opt out. Emergency: call 108.")
		return
	}

	response := wc.chatbot.RespondSMS(c.Request.Context(), body, phone)
	wc.replyTwiML(c, services.TruncateSMS(response))
}

func (wc *WebhookController) replyTwiML(c *gin.Context, message string) {
	c.XML(http.StatusOK, twimlResponse{Message: message})
}
