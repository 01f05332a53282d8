package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// ============================================================================
// AUTH ENDPOINT TEST SUITE
// ============================================================================

func TestAuthSuite(t *testing.T) {
	t.Run("RegisterHandler", func(t *testing.T) {
		testRegisterHandler(t)
	})

	t.Run("LoginHandler", func(t *testing.T) {
		testLoginHandler(t)
	})

	t.Run("MeHandler", func(t *testing.T) {
		testMeHandler(t)
	})

	t.Run("LogoutHandler", func(t *testing.T) {
		testLogoutHandler(t)
	})

	t.Run("AuthenticateMiddleware", func(t *testing.T) {
		testAuthenticateMiddleware(t)
	})
}

func testRegisterHandler(t *testing.T) {
	t.Run("Successful registration", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodPost, "/register", map[string]interface{}{
			"email":    "ana@example.com",
			"password": "secret123",
			"name":     "Ana García",
			"age":      25,
		}, "")

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
			User  User   `json:"user"`
		}
		decodeJSON(t, w, &resp)
		if resp.Token == "" {
			t.Error("Expected a token in the response")
		}
		if resp.User.ID == "" || resp.User.Email != "ana@example.com" {
			t.Errorf("Unexpected user in response: %+v", resp.User)
		}

		// Registration sets the session marker
		current, ok := app.ids.CurrentUser()
		if !ok || current.ID != resp.User.ID {
			t.Error("Expected registration to set the current session")
		}
	})

	t.Run("Duplicate email", func(t *testing.T) {
		app := newTestApp(t)
		app.createTestUser(t, "ana@example.com", "secret123")

		w := app.do(t, http.MethodPost, "/register", map[string]interface{}{
			"email":    "ana@example.com",
			"password": "other",
			"name":     "Impostor",
			"age":      30,
		}, "")

		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "email_exists") {
			t.Errorf("Expected email_exists error, got %s", w.Body.String())
		}
	})

	t.Run("Missing fields", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodPost, "/register", map[string]interface{}{
			"email": "ana@example.com",
		}, "")

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("Invalid method", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/register", nil, "")
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})
}

func testLoginHandler(t *testing.T) {
	t.Run("Successful login", func(t *testing.T) {
		app := newTestApp(t)
		user := app.createTestUser(t, "ana@example.com", "secret123")
		app.ids.ClearSession()

		w := app.do(t, http.MethodPost, "/login", map[string]string{
			"email":    "ana@example.com",
			"password": "secret123",
		}, "")

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
			User  User   `json:"user"`
		}
		decodeJSON(t, w, &resp)
		if resp.User.ID != user.ID {
			t.Errorf("Expected user %s, got %s", user.ID, resp.User.ID)
		}
		if resp.Token == "" {
			t.Error("Expected a token in the response")
		}
	})

	t.Run("Wrong password", func(t *testing.T) {
		app := newTestApp(t)
		app.createTestUser(t, "ana@example.com", "secret123")

		w := app.do(t, http.MethodPost, "/login", map[string]string{
			"email":    "ana@example.com",
			"password": "wrong",
		}, "")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("Unknown email", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodPost, "/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "secret123",
		}, "")

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func testMeHandler(t *testing.T) {
	t.Run("Returns the token's account", func(t *testing.T) {
		app := newTestApp(t)
		user := app.createTestUser(t, "ana@example.com", "secret123")

		w := app.do(t, http.MethodGet, "/me", nil, user.Token)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var got User
		decodeJSON(t, w, &got)
		if got.ID != user.ID {
			t.Errorf("Expected user %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("Unauthorized without token", func(t *testing.T) {
		app := newTestApp(t)

		w := app.do(t, http.MethodGet, "/me", nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}

func testLogoutHandler(t *testing.T) {
	t.Run("Clears the session", func(t *testing.T) {
		app := newTestApp(t)
		user := app.createTestUser(t, "ana@example.com", "secret123")

		w := app.do(t, http.MethodPost, "/logout", nil, user.Token)
		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", w.Code)
		}
		if _, ok := app.ids.CurrentUser(); ok {
			t.Error("Expected session to be cleared")
		}

		// Idempotent
		w = app.do(t, http.MethodPost, "/logout", nil, user.Token)
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204 on repeat logout, got %d", w.Code)
		}
	})
}

func testAuthenticateMiddleware(t *testing.T) {
	app := newTestApp(t)
	user := app.createTestUser(t, "ana@example.com", "secret123")

	var seenUserID string
	protected := authenticate(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = r.Context().Value(userIDKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Valid token reaches the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+user.Token)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
		if seenUserID != user.ID {
			t.Errorf("Expected context user %s, got %s", user.ID, seenUserID)
		}
	})

	t.Run("Missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("Mangled token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer invalid_token")
		w := httptest.NewRecorder()

		protected.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})
}
