package models

import "time"

// Client represents a workshop customer account.
type Client struct {
	ID            string         `bson:"id" json:"id"`
	FirstName     string         `bson:"first_name" json:"firstName"`
	LastName      string         `bson:"last_name" json:"lastName"`
	Email         string         `bson:"email" json:"email"`
	Phone         string         `bson:"phone" json:"phone"`
	PasswordHash  string         `bson:"password_hash" json:"-"`
	TokenHash     string         `bson:"token_hash,omitempty" json:"-"`
	FCMToken      string         `bson:"fcm_token,omitempty" json:"-"`
	Role          string         `bson:"role" json:"role"` // "client" or "staff"
	Vehicles      []Vehicle      `bson:"vehicles,omitempty" json:"vehicles,omitempty"`
	Notifications []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`
	CreatedAt     time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updated_at" json:"updatedAt"`
}

// Vehicle is a car registered under a client account.
type Vehicle struct {
	ID    string `bson:"id" json:"id"`
	Make  string `bson:"make" json:"make"`
	Model string `bson:"model" json:"model"`
	Year  int    `bson:"year" json:"year"`
	Plate string `bson:"plate" json:"plate"`
	VIN   string `bson:"vin,omitempty" json:"vin,omitempty"`
}

// ClientRegistrationRequest is the signup payload.
type ClientRegistrationRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
}

// AuthRequest is the login payload.
type AuthRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token back to the caller.
type AuthResponse struct {
	Token  string  `json:"token"`
	Client *Client `json:"client"`
}
