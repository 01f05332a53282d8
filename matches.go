package main

import (
	"net/http"
	"strings"
)

// Handler functions for recording swipes and resolving pending matches.
//
// TERMINOLOGY
// like: create a pending match with the profile.
// dislike: create a match directly in rejected (terminal, no pending phase).
// accept: pending → accepted.
// reject: pending → rejected.
// A profile swiped once, either way, never returns to the deck.

// POST /profiles/{id}/like
// POST /profiles/{id}/dislike
// Records the swipe and returns the created match.
func swipeProfileHandler(ledger *MatchLedger, action SwipeAction) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "profiles" {
			http.NotFound(w, r)
			return
		}
		profileID := parts[1]
		userID := r.Context().Value(userIDKey).(string)

		match, err := ledger.RecordSwipe(userID, profileID, action)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, match)
	})
}

// A dispatcher router function for all /matches/... requests
func matchesActionsRouter(ledger *MatchLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(r.URL.Path, "/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[0] != "matches" {
			http.NotFound(w, r)
			return
		}

		// GET /matches/(pending|accepted|stats)
		if len(parts) == 2 {
			switch parts[1] {
			case "pending":
				listMatchesHandler(ledger, StatusPending).ServeHTTP(w, r)
			case "accepted":
				listMatchesHandler(ledger, StatusAccepted).ServeHTTP(w, r)
			case "stats":
				matchStatsHandler(ledger).ServeHTTP(w, r)
			default:
				http.NotFound(w, r)
			}
			return
		}

		// POST /matches/{id}/(accept|reject)
		if r.Method == http.MethodPost && len(parts) == 3 {
			switch parts[2] {
			case "accept":
				respondMatchHandler(ledger, RespondAccept).ServeHTTP(w, r)
			case "reject":
				respondMatchHandler(ledger, RespondReject).ServeHTTP(w, r)
			default:
				http.NotFound(w, r)
			}
			return
		}

		// Anything else under /matches/ → 404
		http.NotFound(w, r)
	}
}

// GET /matches/pending and GET /matches/accepted
// Matches are listed in creation order, oldest first.
func listMatchesHandler(ledger *MatchLedger, status MatchStatus) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(string)

		var matches []Match
		if status == StatusPending {
			matches = ledger.PendingMatches(userID)
		} else {
			matches = ledger.AcceptedMatches(userID)
		}
		writeJSON(w, http.StatusOK, map[string][]Match{"matches": matches})
	})
}

// POST /matches/{id}/accept and POST /matches/{id}/reject
// Resolves a pending match. Responding to an already-resolved match is a
// conflict, so a double-tap in the UI cannot flip a decision.
func respondMatchHandler(ledger *MatchLedger, action RespondAction) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 3 || parts[0] != "matches" {
			http.NotFound(w, r)
			return
		}
		matchID := parts[1]

		// Scope check: a user may only resolve their own matches. Someone
		// else's match id is reported as absent, not forbidden.
		userID := r.Context().Value(userIDKey).(string)
		if existing, ok := ledger.MatchByID(matchID); ok && existing.UserID != userID {
			writeError(w, http.StatusNotFound, "match_not_found")
			return
		}

		match, err := ledger.Respond(matchID, action)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	})
}

// GET /matches/stats
func matchStatsHandler(ledger *MatchLedger) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(string)
		writeJSON(w, http.StatusOK, ledger.Stats(userID))
	})
}
