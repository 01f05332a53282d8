package main

import (
	"flag"
	"log"
	"net/http"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := MustLoadConfig(configPath)
	jwtSecret = []byte(cfg.JWTSecret)
	tokenTTL = cfg.TokenTTL

	// Every store is constructed once per process and injected; only the
	// session marker survives a restart.
	ids := NewIdentityStore(cfg.SessionFile)
	catalog := NewProfileCatalog()
	ledger := NewMatchLedger(catalog)
	hub := NewEventHub()
	ledger.SetNotifier(hub)

	if user, ok := ids.CurrentUser(); ok {
		log.Printf("Restored session for %s", user.Email)
	}

	mux := http.NewServeMux()

	// Core auth & session endpoints
	mux.Handle("/register", registerHandler(ids))
	mux.Handle("/login", loginHandler(ids))
	mux.Handle("/logout", logoutHandler(ids))
	mux.Handle("/me", meHandler(ids))

	// Candidate deck
	mux.Handle("/profiles", candidateProfilesHandler(ledger))
	mux.Handle("/profiles/", profilesActionsRouter(catalog, ledger)) // GET /profiles/{id}, POST /profiles/{id}/like|dislike

	// Match queries & responses
	mux.Handle("/matches/", matchesActionsRouter(ledger)) // pending, accepted, stats, {id}/accept|reject

	// WebSocket event feed
	mux.Handle("/ws/events", wsEventsHandler(hub))

	// Health check endpoint for Docker
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	log.Printf("Starting Chispa backend on %s...", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), withCORS(mux)); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
