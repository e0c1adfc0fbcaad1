package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"finanzas/internal/models"
	"finanzas/internal/testutil"
	"finanzas/internal/uuid"
)

func setupGoalRouter(env *ledgerEnv) *gin.Engine {
	handler := NewGoalHandler(env.registry, &mockAuditService{}, testSyncTimeout)
	return env.router(func(r gin.IRoutes) {
		r.POST("/goals", handler.CreateGoal)
		r.GET("/goals", handler.GetGoals)
		r.PUT("/goals/:id", handler.UpdateGoal)
		r.POST("/goals/:id/contributions", handler.ContributeToGoal)
		r.DELETE("/goals/:id", handler.DeleteGoal)
	})
}

func TestGoalHandler_CreateGoal(t *testing.T) {
	t.Run("defaults the color", func(t *testing.T) {
		env := setupLedger(t)
		r := setupGoalRouter(env)

		rec := doRequest(r, "POST", "/goals", `{"name":"Viaje","targetAmount":3000000,"currentAmount":300000,"deadline":"2030-06-30"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		goal := parseJSON(t, rec)["goal"].(map[string]interface{})
		if goal["color"] != "#0ea5e9" {
			t.Errorf("expected default color, got %v", goal["color"])
		}
		if goal["progress"].(float64) != 10 {
			t.Errorf("expected 10%% progress, got %v", goal["progress"])
		}
		if _, ok := goal["required"].(map[string]interface{}); !ok {
			t.Errorf("expected required savings, got %v", goal["required"])
		}
	})

	t.Run("returns 400 on bad color", func(t *testing.T) {
		env := setupLedger(t)
		r := setupGoalRouter(env)

		rec := doRequest(r, "POST", "/goals", `{"name":"Viaje","targetAmount":100,"color":"blue"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestGoalHandler_ContributeToGoal(t *testing.T) {
	t.Run("reports when the target is reached", func(t *testing.T) {
		env := setupLedger(t)
		goal := testutil.CreateTestGoal(t, env.db, env.user.ID, 1000)
		r := setupGoalRouter(env)

		first := parseJSON(t, doRequest(r, "POST", "/goals/"+goal.ID+"/contributions", `{"amount":600}`))
		if first["reachedTarget"] != false {
			t.Errorf("expected target not reached yet, got %v", first["reachedTarget"])
		}

		rec := doRequest(r, "POST", "/goals/"+goal.ID+"/contributions", `{"amount":400}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		second := parseJSON(t, rec)
		if second["reachedTarget"] != true {
			t.Errorf("expected target reached, got %v", second["reachedTarget"])
		}
		if p := second["goal"].(map[string]interface{})["progress"].(float64); p != 100 {
			t.Errorf("expected 100%% progress, got %v", p)
		}

		third := parseJSON(t, doRequest(r, "POST", "/goals/"+goal.ID+"/contributions", `{"amount":1}`))
		if third["reachedTarget"] != false {
			t.Error("expected no second celebration once the target was already met")
		}

		var stored models.SavingsGoal
		env.db.First(&stored, "id = ?", goal.ID)
		if stored.CurrentAmount != 1001 {
			t.Errorf("expected stored amount 1001, got %d", stored.CurrentAmount)
		}
	})

	t.Run("returns 404 for an unknown goal", func(t *testing.T) {
		env := setupLedger(t)
		r := setupGoalRouter(env)

		rec := doRequest(r, "POST", "/goals/"+uuid.New()+"/contributions", `{"amount":1}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "GOAL_NOT_FOUND")
	})
}

func TestGoalHandler_UpdateGoal(t *testing.T) {
	t.Run("sets the current amount", func(t *testing.T) {
		env := setupLedger(t)
		goal := testutil.CreateTestGoal(t, env.db, env.user.ID, 1000)
		r := setupGoalRouter(env)

		rec := doRequest(r, "PUT", "/goals/"+goal.ID, `{"currentAmount":250}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var stored models.SavingsGoal
		env.db.First(&stored, "id = ?", goal.ID)
		if stored.CurrentAmount != 250 {
			t.Errorf("expected 250, got %d", stored.CurrentAmount)
		}
	})

	t.Run("restores the previous amount when saving fails", func(t *testing.T) {
		env := setupLedger(t)
		goal := testutil.CreateTestGoal(t, env.db, env.user.ID, 1000)
		r := setupGoalRouter(env)
		doRequest(r, "GET", "/goals", "")
		env.gw.fail.Store(true)

		rec := doRequest(r, "PUT", "/goals/"+goal.ID, `{"currentAmount":250}`)

		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
		goals := parseJSON(t, doRequest(r, "GET", "/goals", ""))["goals"].([]interface{})
		if c := goals[0].(map[string]interface{})["currentAmount"].(float64); c != 0 {
			t.Errorf("expected amount restored to 0, got %v", c)
		}
	})

	t.Run("returns 400 without an amount", func(t *testing.T) {
		env := setupLedger(t)
		goal := testutil.CreateTestGoal(t, env.db, env.user.ID, 1000)
		r := setupGoalRouter(env)

		rec := doRequest(r, "PUT", "/goals/"+goal.ID, `{}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestGoalHandler_DeleteGoal(t *testing.T) {
	env := setupLedger(t)
	goal := testutil.CreateTestGoal(t, env.db, env.user.ID, 1000)
	r := setupGoalRouter(env)

	rec := doRequest(r, "DELETE", "/goals/"+goal.ID, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	goals := parseJSON(t, doRequest(r, "GET", "/goals", ""))["goals"].([]interface{})
	if len(goals) != 0 {
		t.Errorf("expected no goals, got %d", len(goals))
	}
}
