package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
)

// ============================================================================
// TEST HARNESS
// ============================================================================

// testApp wires fresh store instances for one test case, mirroring main().
// Fresh instances per test keep cases isolated from each other.
type testApp struct {
	ids     *IdentityStore
	catalog *ProfileCatalog
	ledger  *MatchLedger
	hub     *EventHub
	mux     *http.ServeMux
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	ids := NewIdentityStore(filepath.Join(t.TempDir(), "session.json"))
	catalog := NewProfileCatalog()
	ledger := NewMatchLedger(catalog)
	hub := NewEventHub()
	ledger.SetNotifier(hub)

	mux := http.NewServeMux()
	mux.Handle("/register", registerHandler(ids))
	mux.Handle("/login", loginHandler(ids))
	mux.Handle("/logout", logoutHandler(ids))
	mux.Handle("/me", meHandler(ids))
	mux.Handle("/profiles", candidateProfilesHandler(ledger))
	mux.Handle("/profiles/", profilesActionsRouter(catalog, ledger))
	mux.Handle("/matches/", matchesActionsRouter(ledger))
	mux.Handle("/ws/events", wsEventsHandler(hub))

	return &testApp{ids: ids, catalog: catalog, ledger: ledger, hub: hub, mux: mux}
}

// TestUser is a registered account plus its bearer token.
type TestUser struct {
	ID    string
	Email string
	Token string
}

func (a *testApp) createTestUser(t *testing.T, email, password string) TestUser {
	t.Helper()

	w := a.do(t, http.MethodPost, "/register", map[string]interface{}{
		"email":    email,
		"password": password,
		"name":     "Test User",
		"age":      25,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create test user %s: %d %s", email, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode register response: %v", err)
	}
	return TestUser{ID: resp.User.ID, Email: email, Token: resp.Token}
}

func (a *testApp) do(t *testing.T, method, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.mux.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
}
