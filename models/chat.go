package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageChannel represents the communication channel
type MessageChannel string

const (
	ChannelWeb      MessageChannel = "web"
	ChannelWhatsApp MessageChannel = "whatsapp"
	ChannelSMS      MessageChannel = "sms"
)

// Message is a chat exchange persisted to the messages collection.
type Message struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	UserMessage string             `bson:"user_message" json:"user_message"`
	BotResponse string             `bson:"bot_response" json:"bot_response"`
	Intent      IntentTag          `bson:"intent" json:"intent"`
	Confidence  float64            `bson:"confidence" json:"confidence"`
	Language    string             `bson:"language" json:"language"`
	Channel     MessageChannel     `bson:"channel,omitempty" json:"channel,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// ChatRequest is the inbound payload for the chat endpoints.
type ChatRequest struct {
	Message  string         `json:"message" binding:"required"`
	Phone    string         `json:"phone,omitempty"`
	Name     string         `json:"name,omitempty"`
	Language string         `json:"language,omitempty"`
	Channel  MessageChannel `json:"channel,omitempty"`
}

// ChatResponse is returned to chat callers.
type ChatResponse struct {
	Response   string    `json:"response"`
	Intent     IntentTag `json:"intent"`
	Confidence float64   `json:"confidence"`
	Language   string    `json:"language"`
	Timestamp  time.Time `json:"timestamp"`
}

// SessionEntry is one inbound message recorded in a conversation session.
type SessionEntry struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationSession holds per-phone conversation state, process-lifetime only.
type ConversationSession struct {
	Phone     string         `json:"phone"`
	History   []SessionEntry `json:"history"`
	UserName  string         `json:"user_name"`
	Language  string         `json:"language"`
	StartedAt time.Time      `json:"started_at"`
}

// TranslateRequest is the payload for the ad-hoc translation endpoint.
type TranslateRequest struct {
	Text           string `json:"text" binding:"required"`
	TargetLanguage string `json:"target_language"`
	SourceLanguage string `json:"source_language,omitempty"`
}
