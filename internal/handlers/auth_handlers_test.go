package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/zhingPin/gsoe-contracts/internal/config"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

func testAuthService() *services.AuthService {
	return services.NewAuthService(config.AuthConfig{
		JWTSecret:     "test-secret",
		JWTExpiration: 1,
	})
}

func TestLoginHandler(t *testing.T) {
	authService := testAuthService()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"address":"alice"}`))
	rec := httptest.NewRecorder()

	Login(authService)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var token models.AuthToken
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	assert.Equal(t, "alice", token.Address)
	assert.NotEmpty(t, token.Token)
}

func TestLoginHandlerBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{`))
	rec := httptest.NewRecorder()

	Login(testAuthService())(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	authService := testAuthService()

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authService))
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			address, ok := AddressFromContext(r.Context())
			assert.True(t, ok)
			writeJSON(w, http.StatusOK, map[string]string{"address": address})
		})
	})

	token, err := authService.Login(models.LoginRequest{Address: "alice"})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body["address"])
}

func TestAuthMiddlewareRejects(t *testing.T) {
	authService := testAuthService()

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authService))
		r.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
