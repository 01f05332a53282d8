package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the key type for storing user ID in context
type UserIDKey string

// UserIDKey constant for context
const UserIDKeyValue UserIDKey = "userID"

// For backward compatibility and local usage
const userIDKey = UserIDKeyValue

// Overridden from config in main; the defaults keep tests and bare dev
// startups working.
var (
	jwtSecret = []byte("your_secret_key_please_change_in_production")
	tokenTTL  = 24 * time.Hour
)

func issueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString(jwtSecret)
}

func registerHandler(ids *IdentityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		type RegisterRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
			Age      int    `json:"age"`
		}

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Password = strings.TrimSpace(req.Password)
		req.Name = strings.TrimSpace(req.Name)
		if req.Email == "" || req.Password == "" || req.Name == "" || req.Age <= 0 {
			writeError(w, http.StatusBadRequest, "missing_fields")
			return
		}

		user, err := ids.Register(req.Email, req.Password, req.Name, req.Age)
		if err != nil {
			if !errors.Is(err, ErrDuplicateEmail) {
				log.Println("Error registering user:", err)
			}
			writeStoreError(w, err)
			return
		}

		// Generate JWT token for automatic login
		tokenString, err := issueToken(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "token_generation_error")
			log.Println("Error generating token for new user:", err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{"token": tokenString, "user": user})
	}
}

func loginHandler(ids *IdentityStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}

		type LoginRequest struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}

		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json")
			return
		}

		req.Email = strings.TrimSpace(req.Email)
		req.Password = strings.TrimSpace(req.Password)
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "missing_fields")
			return
		}

		user, err := ids.Authenticate(req.Email, req.Password)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		tokenString, err := issueToken(user.ID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "token_generation_error")
			log.Println("Error generating token:", err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"token": tokenString, "user": user})
	}
}

// POST /logout clears the persisted session marker. Idempotent.
func logoutHandler(ids *IdentityStore) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		ids.ClearSession()
		w.WriteHeader(http.StatusNoContent)
	})
}

// GET /me returns the account behind the bearer token.
func meHandler(ids *IdentityStore) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(string)
		user, ok := ids.UserByID(userID)
		if !ok {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		writeJSON(w, http.StatusOK, user)
	})
}

func authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := getUserIDFromBearer(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	}
}
