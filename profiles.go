package main

import (
	"net/http"
	"strings"
)

// GET /profiles
// The candidate deck for the authenticated user: every catalog profile not
// yet swiped on, in catalog order.
func candidateProfilesHandler(ledger *MatchLedger) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		userID := r.Context().Value(userIDKey).(string)
		writeJSON(w, http.StatusOK, map[string][]Profile{
			"profiles": ledger.CandidateProfiles(userID),
		})
	})
}

// A dispatcher router function for all /profiles/{id}... requests
func profilesActionsRouter(catalog *ProfileCatalog, ledger *MatchLedger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(r.URL.Path, "/")
		parts := strings.Split(path, "/")
		if len(parts) < 2 || parts[0] != "profiles" {
			http.NotFound(w, r)
			return
		}

		// GET /profiles/{id} → profile detail
		if r.Method == http.MethodGet && len(parts) == 2 {
			profileDetailHandler(catalog).ServeHTTP(w, r)
			return
		}

		// POST /profiles/{id}/(like|dislike)
		if r.Method == http.MethodPost && len(parts) == 3 {
			switch parts[2] {
			case "like":
				swipeProfileHandler(ledger, SwipeLike).ServeHTTP(w, r)
			case "dislike":
				swipeProfileHandler(ledger, SwipeDislike).ServeHTTP(w, r)
			default:
				http.NotFound(w, r)
			}
			return
		}

		// Anything else under /profiles/ → 404
		http.NotFound(w, r)
	}
}

// GET /profiles/{id}
func profileDetailHandler(catalog *ProfileCatalog) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		if len(parts) != 2 || parts[0] != "profiles" {
			http.NotFound(w, r)
			return
		}
		profile, ok := catalog.Get(parts[1])
		if !ok {
			writeError(w, http.StatusNotFound, "profile_not_found")
			return
		}
		writeJSON(w, http.StatusOK, profile)
	})
}
