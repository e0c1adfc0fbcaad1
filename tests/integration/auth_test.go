package integration

import (
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginProfileLogout(t *testing.T) {
	app := setupApp(t)
	client := map[string]string{"X-Client-ID": "browser-1"}

	// Step 1: Register
	token, userID := app.registerUser(t, "valentina", "password123")
	if token == "" || userID == "" {
		t.Fatal("expected token and user id from registration")
	}

	// Step 2: Login from a browser remembers the user for that client
	loginToken := app.loginUser(t, "valentina", "password123", client)

	rec := app.requestWithHeaders("GET", "/api/v1/session", "", "", client)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	session := parseJSON(t, rec)
	user, ok := session["user"].(map[string]interface{})
	if !ok || user["username"] != "valentina" {
		t.Fatalf("expected remembered user, got %v", session)
	}

	// Step 3: Profile
	rec = app.request("GET", "/api/v1/profile", "", loginToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	profile := parseJSON(t, rec)["user"].(map[string]interface{})
	if profile["id"] != userID {
		t.Errorf("expected user %s, got %v", userID, profile["id"])
	}

	// Step 4: Theme survives logout, the user does not
	rec = app.requestWithHeaders("PUT", "/api/v1/session/theme", `{"theme":"dark"}`, "", client)
	if rec.Code != http.StatusOK {
		t.Fatalf("theme update failed: %d %s", rec.Code, rec.Body.String())
	}
	rec = app.requestWithHeaders("POST", "/api/v1/auth/logout", "", loginToken, client)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout failed: %d %s", rec.Code, rec.Body.String())
	}

	session = parseJSON(t, app.requestWithHeaders("GET", "/api/v1/session", "", "", client))
	if session["user"] != nil {
		t.Errorf("expected no user after logout, got %v", session["user"])
	}
	if session["theme"] != "dark" {
		t.Errorf("expected theme to persist, got %v", session["theme"])
	}
}

func TestAuthFlow_RegisterDuplicateUsername(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "dup", "password123")

	rec := app.request("POST", "/api/v1/auth/register",
		`{"username":"dup","password":"password123","confirm_password":"password123"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate username, got %d: %s", rec.Code, rec.Body.String())
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["code"] != "DUPLICATE_USERNAME" {
		t.Errorf("expected DUPLICATE_USERNAME, got %v", errObj["code"])
	}
}

func TestAuthFlow_LoginWrongPassword(t *testing.T) {
	app := setupApp(t)

	app.registerUser(t, "mateo", "password123")

	rec := app.request("POST", "/api/v1/auth/login", `{"username":"mateo","password":"wrongpass1"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthFlow_ProtectedRouteWithoutToken(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/v1/dashboard", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
