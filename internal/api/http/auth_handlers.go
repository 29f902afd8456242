package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"fjacquet/mocktest/internal/auth"
	"fjacquet/mocktest/internal/models"
)

// POST /auth/register  { "username": "...", "email": "...", "password": "..." }
func HandleRegister(a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		u, err := a.Register(r.Context(), req.Username, req.Email, req.Password, models.RoleUser)
		if err != nil {
			if errors.Is(err, auth.ErrMissingFields) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

// POST /auth/login  { "username": "...", "password": "..." }
func HandleLogin(a *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		tok, u, err := a.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": tok,
			"token_type":   "Bearer",
			"user":         u,
		})
	}
}
