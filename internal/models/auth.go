package models

import (
	"time"
)

// AuthToken represents the authentication token response
type AuthToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Address   string    `json:"address"`
}

// LoginRequest represents a request to authenticate as an account address.
// Proof of address ownership is handled by the fronting gateway; this
// service only binds the address into a signed token.
type LoginRequest struct {
	Address string `json:"address"`
}
