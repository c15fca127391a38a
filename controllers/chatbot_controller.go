package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"health-chatbot-backend/database"
	"health-chatbot-backend/models"
	"health-chatbot-backend/services"
)

// ChatbotController exposes the chat, history, intent and translation
// endpoints.
type ChatbotController struct {
	chatbot    *services.ChatbotService
	translator *services.TranslationService
	messages   *database.MessageRepository
}

func NewChatbotController(chatbot *services.ChatbotService, translator *services.TranslationService, messages *database.MessageRepository) *ChatbotController {
	return &ChatbotController{chatbot: chatbot, translator: translator, messages: messages}
}

// HandleChat processes one chat message and returns the composed response.
func (cc *ChatbotController) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	if req.Language == "" && cc.translator != nil {
		req.Language = cc.translator.DetectLanguage(req.Message)
	}
	if req.Name == "" {
		req.Name = c.GetString("username")
	}

	c.JSON(http.StatusOK, cc.chatbot.Respond(c.Request.Context(), req))
}

// GetChatHistory returns the persisted exchanges for ?phone=, newest first.
// Unavailable when the bot runs without a database.
func (cc *ChatbotController) GetChatHistory(c *gin.Context) {
	if cc.messages == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat history is not available"})
		return
	}

	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)

	messages, err := cc.messages.ListByPhone(c.Request.Context(), phone, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load chat history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":    len(messages),
		"messages": messages,
	})
}

// GetSupportedIntents lists the intent categories the classifier recognizes.
func (cc *ChatbotController) GetSupportedIntents(c *gin.Context) {
	catalog := services.DefaultIntentCatalog()
	intents := make([]gin.H, 0, len(catalog))
	for _, intent := range catalog {
		intents = append(intents, gin.H{
			"tag":              intent.Tag,
			"example_patterns": intent.Patterns[:min(3, len(intent.Patterns))],
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   len(intents),
		"intents": intents,
	})
}

// GetSupportedLanguages lists the translation languages.
func (cc *ChatbotController) GetSupportedLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, cc.translator.SupportedLanguagesInfo())
}

// HandleTranslate translates arbitrary text on demand.
func (cc *ChatbotController) HandleTranslate(c *gin.Context) {
	var req models.TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "en"
	}

	translated := cc.translator.TranslateText(req.Text, req.TargetLanguage, req.SourceLanguage)
	c.JSON(http.StatusOK, gin.H{
		"original":        req.Text,
		"translated":      translated,
		"target_language": req.TargetLanguage,
	})
}
