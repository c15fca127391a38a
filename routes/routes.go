package routes

import (
	"github.com/gin-gonic/gin"

	"health-chatbot-backend/controllers"
	"health-chatbot-backend/middleware"
)

// Dependencies bundles everything the route table needs.
type Dependencies struct {
	Chatbot    *controllers.ChatbotController
	WebSocket  *controllers.WebSocketController
	Alerts     *controllers.AlertController
	Auth       *controllers.AuthController
	HealthData *controllers.HealthDataController
	Webhooks   *controllers.WebhookController
	Status     *controllers.StatusController

	JWTSecret     string
	WebhookVerify gin.HandlerFunc
}

// SetupRoutes registers the full API surface.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	// Chat and lookups, no auth required.
	v1 := router.Group("/api/v1")
	{
		v1.POST("/chat", deps.Chatbot.HandleChat)
		v1.GET("/chat/history", deps.Chatbot.GetChatHistory)
		v1.GET("/ws", deps.WebSocket.HandleConnection)
		v1.GET("/intents", deps.Chatbot.GetSupportedIntents)
		v1.GET("/languages", deps.Chatbot.GetSupportedLanguages)
		v1.POST("/translate", deps.Chatbot.HandleTranslate)
		v1.GET("/status", deps.Status.GetStatus)

		healthData := v1.Group("/health-data")
		{
			healthData.GET("/covid-stats", deps.HealthData.GetCOVIDStatistics)
			healthData.GET("/vaccination-centers", deps.HealthData.GetVaccinationCenters)
			healthData.GET("/advisories", deps.HealthData.GetAdvisories)
		}

		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.Auth.Register)
			auth.POST("/login", deps.Auth.Login)
		}

		// Alert administration requires a valid JWT.
		alerts := v1.Group("/alerts", middleware.RequireAuth(deps.JWTSecret))
		{
			alerts.POST("/subscribe", deps.Alerts.Subscribe)
			alerts.POST("/unsubscribe", deps.Alerts.Unsubscribe)
			alerts.POST("/vaccination-reminder", deps.Alerts.SendVaccinationReminder)
			alerts.POST("/advisory", deps.Alerts.SendAdvisory)
			alerts.POST("/outbreak", deps.Alerts.SendOutbreakAlert)
			alerts.GET("/stats", deps.Alerts.GetStatistics)
			alerts.GET("/subscribers", deps.Alerts.GetSubscribers)
			alerts.GET("/history", deps.Alerts.GetHistory)
			alerts.POST("/scheduler/start", deps.Alerts.StartScheduler)
			alerts.POST("/scheduler/stop", deps.Alerts.StopScheduler)
		}
	}

	// Twilio webhooks, authenticated by request signature.
	webhooks := router.Group("/webhook", deps.WebhookVerify)
	{
		webhooks.POST("/whatsapp", deps.Webhooks.HandleWhatsApp)
		webhooks.POST("/sms", deps.Webhooks.HandleSMS)
	}
}
