package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"health-chatbot-backend/services"
)

// StatusController reports runtime service health: WhatsApp delivery counters,
// scheduler statistics and active conversation sessions.
type StatusController struct {
	whatsapp *services.WhatsAppService
	alerts   *services.AlertScheduler
	chatbot  *services.ChatbotService
}

func NewStatusController(whatsapp *services.WhatsAppService, alerts *services.AlertScheduler, chatbot *services.ChatbotService) *StatusController {
	return &StatusController{whatsapp: whatsapp, alerts: alerts, chatbot: chatbot}
}

// GetStatus returns the combined service status payload.
func (sc *StatusController) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"whatsapp":        sc.whatsapp.GetStatus(),
		"alerts":          sc.alerts.GetStatistics(),
		"active_sessions": sc.chatbot.SessionCount(),
	})
}
