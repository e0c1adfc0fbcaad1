package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"finanzas/internal/domain"
	"finanzas/internal/testutil"
)

func setupTagRouter(env *ledgerEnv) *gin.Engine {
	handler := NewTagHandler(env.registry, &mockAuditService{}, testSyncTimeout)
	return env.router(func(r gin.IRoutes) {
		r.GET("/tags", handler.GetTags)
		r.POST("/tags", handler.CreateTag)
	})
}

func tagNames(t *testing.T, v interface{}) []string {
	t.Helper()
	raw, ok := v.([]interface{})
	if !ok {
		t.Fatalf("expected a list of tags, got %v", v)
	}
	names := make([]string, len(raw))
	for i, n := range raw {
		names[i] = n.(string)
	}
	return names
}

func TestTagHandler(t *testing.T) {
	t.Run("lists defaults before stored tags", func(t *testing.T) {
		env := setupLedger(t)
		testutil.CreateTestTag(t, env.db, env.user.ID, domain.TransactionTypeIncome, "Arriendos")
		r := setupTagRouter(env)

		result := parseJSON(t, doRequest(r, "GET", "/tags", ""))

		income := tagNames(t, result["income"])
		want := append(domain.DefaultTags(domain.TransactionTypeIncome), "Arriendos")
		if len(income) != len(want) {
			t.Fatalf("expected %v, got %v", want, income)
		}
		for i := range want {
			if income[i] != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], income[i])
			}
		}
		if len(tagNames(t, result["expense"])) != len(domain.DefaultTags(domain.TransactionTypeExpense)) {
			t.Errorf("expected default expense tags, got %v", result["expense"])
		}
	})

	t.Run("returns 201 for a new tag and 200 for an existing one", func(t *testing.T) {
		env := setupLedger(t)
		r := setupTagRouter(env)

		rec := doRequest(r, "POST", "/tags", `{"type":"expense","name":" Mascotas "}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		expense := tagNames(t, parseJSON(t, rec)["expense"])
		if expense[len(expense)-1] != "Mascotas" {
			t.Errorf("expected trimmed tag appended, got %v", expense)
		}

		again := doRequest(r, "POST", "/tags", `{"type":"expense","name":"Comida"}`)
		if again.Code != http.StatusOK {
			t.Fatalf("expected 200 for an existing tag, got %d", again.Code)
		}
		if n := len(tagNames(t, parseJSON(t, again)["expense"])); n != len(expense) {
			t.Errorf("expected no duplicate, got %d tags", n)
		}
	})

	t.Run("removes the tag when saving fails", func(t *testing.T) {
		env := setupLedger(t)
		r := setupTagRouter(env)
		doRequest(r, "GET", "/tags", "")
		env.gw.fail.Store(true)

		rec := doRequest(r, "POST", "/tags", `{"type":"income","name":"Bonos"}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		income := tagNames(t, parseJSON(t, doRequest(r, "GET", "/tags", ""))["income"])
		for _, n := range income {
			if n == "Bonos" {
				t.Error("expected failed tag to be removed")
			}
		}
	})

	t.Run("returns 400 on blank name", func(t *testing.T) {
		env := setupLedger(t)
		r := setupTagRouter(env)

		rec := doRequest(r, "POST", "/tags", `{"type":"income","name":"   "}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
