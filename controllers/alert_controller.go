package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"health-chatbot-backend/models"
	"health-chatbot-backend/services"
)

// AlertController exposes the alert admin API: subscriptions, manual sends
// and scheduler control.
type AlertController struct {
	alerts *services.AlertScheduler
}

func NewAlertController(alerts *services.AlertScheduler) *AlertController {
	return &AlertController{alerts: alerts}
}

// Subscribe enrolls a phone number for alert broadcasts.
func (ac *AlertController) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	sub := ac.alerts.Subscribe(req.Phone, req.Language, req.Preferences)
	c.JSON(http.StatusOK, gin.H{
		"message":    "subscribed to health alerts",
		"subscriber": sub,
	})
}

// Unsubscribe removes a phone number from the registry.
func (ac *AlertController) Unsubscribe(c *gin.Context) {
	var req models.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
		return
	}

	if !ac.alerts.Unsubscribe(req.Phone) {
		c.JSON(http.StatusNotFound, gin.H{"error": "phone not subscribed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed from health alerts"})
}

// SendVaccinationReminder triggers one reminder immediately.
func (ac *AlertController) SendVaccinationReminder(c *gin.Context) {
	var req models.VaccinationReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "phone, vaccine and due_date are required"})
		return
	}

	results, ok := ac.alerts.SendVaccinationReminder(req.Phone, req.Vaccine, req.DueDate, req.CenterInfo)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// SendAdvisory broadcasts a health advisory.
func (ac *AlertController) SendAdvisory(c *gin.Context) {
	var req models.AdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and message are required"})
		return
	}

	results, ok := ac.alerts.SendHealthAdvisory(req.Title, req.Message, req.Urgency, req.TargetPhones)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipients": len(results),
		"results":    results,
	})
}

// SendOutbreakAlert broadcasts a disease-outbreak notice.
func (ac *AlertController) SendOutbreakAlert(c *gin.Context) {
	var req models.OutbreakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "disease and location are required"})
		return
	}

	results, ok := ac.alerts.SendOutbreakAlert(req.Disease, req.Location, req.PreventionMeasures, req.Urgency)
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "messaging not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"recipients": len(results),
		"results":    results,
	})
}

// GetStatistics reports scheduler activity.
func (ac *AlertController) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, ac.alerts.GetStatistics())
}

// GetSubscribers lists current registrations.
func (ac *AlertController) GetSubscribers(c *gin.Context) {
	subs := ac.alerts.GetSubscribersList()
	c.JSON(http.StatusOK, gin.H{
		"total":       len(subs),
		"subscribers": subs,
	})
}

// GetHistory returns recent alert records.
func (ac *AlertController) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	c.JSON(http.StatusOK, gin.H{"alerts": ac.alerts.History(limit)})
}

// StartScheduler launches the background advisory poll loop.
func (ac *AlertController) StartScheduler(c *gin.Context) {
	ac.alerts.Start()
	c.JSON(http.StatusOK, gin.H{"message": "scheduler started", "running": ac.alerts.Running()})
}

// StopScheduler stops the background poll loop.
func (ac *AlertController) StopScheduler(c *gin.Context) {
	ac.alerts.Stop()
	c.JSON(http.StatusOK, gin.H{"message": "scheduler stopped", "running": ac.alerts.Running()})
}
