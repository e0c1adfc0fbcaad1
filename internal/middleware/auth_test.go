package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"finanzas/internal/models"
)

func setupAuthRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware())
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString("userID"),
			"username": c.GetString("username"),
		})
	})
	return r
}

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(&models.User{Base: models.Base{ID: "user-42"}, Username: "lucia"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if claims.UserID != "user-42" || claims.Username != "lucia" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != issuer {
		t.Errorf("issuer = %q, want %q", claims.Issuer, issuer)
	}
}

func TestParseAccessToken_RejectsTampered(t *testing.T) {
	token, err := GenerateAccessToken(&models.User{Base: models.Base{ID: "user-42"}, Username: "lucia"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ParseAccessToken(token + "x"); err == nil {
		t.Error("expected tampered token to be rejected")
	}
	if _, err := ParseAccessToken("not-a-jwt"); err == nil {
		t.Error("expected garbage to be rejected")
	}
}

func TestAuthMiddleware(t *testing.T) {
	valid, err := GenerateAccessToken(&models.User{Base: models.Base{ID: "user-7"}, Username: "mateo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid_token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing_header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong_scheme", header: "Basic " + valid, wantStatus: http.StatusUnauthorized},
		{name: "extra_parts", header: "Bearer " + valid + " more", wantStatus: http.StatusUnauthorized},
		{name: "bad_token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			rec := doRequest(setupAuthRouter(), http.MethodGet, "/me", headers)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				if code := errorCode(t, rec); code != "UNAUTHORIZED" {
					t.Errorf("error code = %q, want UNAUTHORIZED", code)
				}
				return
			}
			body := parseBody(t, rec)
			if body["user_id"] != "user-7" || body["username"] != "mateo" {
				t.Errorf("unexpected context values: %v", body)
			}
		})
	}
}
