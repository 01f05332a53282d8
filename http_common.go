package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// --- Response helpers ---
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError maps a store error to its HTTP status and stable error code.
// Unknown errors become a 500 so a bug never masquerades as a client fault.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email_exists")
	case errors.Is(err, ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
	case errors.Is(err, ErrProfileNotFound):
		writeError(w, http.StatusNotFound, "profile_not_found")
	case errors.Is(err, ErrAlreadySwiped):
		writeError(w, http.StatusConflict, "already_swiped")
	case errors.Is(err, ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "match_not_found")
	case errors.Is(err, ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid_transition")
	default:
		log.Println("unexpected store error:", err)
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
