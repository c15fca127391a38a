package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account stored in the users collection.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username          string             `bson:"username" json:"username"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash      string             `bson:"password_hash" json:"-"`
	PreferredLanguage string             `bson:"preferred_language" json:"preferred_language"`
	AlertsSubscribed  bool               `bson:"alerts_subscribed" json:"alerts_subscribed"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	LastLogin         *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

type RegisterRequest struct {
	Username          string `json:"username" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,min=8"`
	Phone             string `json:"phone,omitempty"`
	PreferredLanguage string `json:"preferred_language,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
