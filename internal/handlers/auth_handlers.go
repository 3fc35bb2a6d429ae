package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

// Login handles issuing a token for an account address
func Login(authService *services.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		token, err := authService.Login(req)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, token)
	}
}

// AuthMiddleware is a middleware for authenticating requests
func AuthMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			token := parts[1]

			address, err := authService.ValidateToken(token)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			// Add the caller's address to the request context
			ctx := NewContextWithAddress(r.Context(), address)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
