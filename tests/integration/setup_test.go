package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finanzas/internal/gateway"
	"finanzas/internal/handlers"
	"finanzas/internal/logger"
	"finanzas/internal/middleware"
	"finanzas/internal/services"
	"finanzas/internal/session"
	"finanzas/internal/state"
	"finanzas/internal/testutil"
	"finanzas/internal/validator"
)

const syncTimeout = 2 * time.Second

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)

	gw := gateway.New(db)
	registry := state.NewRegistry(gw, state.Options{PersistTimeout: syncTimeout})
	t.Cleanup(registry.Drain)

	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	sessions := session.NewManager(session.NewGormStore(db))

	authHandler := handlers.NewAuthHandler(userService, auditService, sessions, registry)
	sessionHandler := handlers.NewSessionHandler(sessions)
	transactionHandler := handlers.NewTransactionHandler(registry, auditService, syncTimeout)
	debtHandler := handlers.NewDebtHandler(registry, auditService, syncTimeout)
	goalHandler := handlers.NewGoalHandler(registry, auditService, syncTimeout)
	tagHandler := handlers.NewTagHandler(registry, auditService, syncTimeout)
	insightsHandler := handlers.NewInsightsHandler(registry, 3)
	activityHandler := handlers.NewActivityHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	sessionRoutes := v1.Group("/session")
	sessionRoutes.Use(middleware.ClientID())
	sessionRoutes.GET("", sessionHandler.GetSession)
	sessionRoutes.PUT("/theme", sessionHandler.UpdateTheme)

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	debts := protected.Group("/debts")
	debts.POST("", debtHandler.CreateDebt)
	debts.GET("", debtHandler.GetDebts)
	debts.DELETE("/:id", debtHandler.DeleteDebt)
	debts.POST("/:id/payments", debtHandler.PayDebt)

	goals := protected.Group("/goals")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.GetGoals)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.POST("/:id/contributions", goalHandler.ContributeToGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)

	tags := protected.Group("/tags")
	tags.GET("", tagHandler.GetTags)
	tags.POST("", tagHandler.CreateTag)

	protected.GET("/dashboard", insightsHandler.GetDashboard)
	protected.GET("/reports", insightsHandler.GetReport)
	protected.GET("/activity", activityHandler.GetActivity)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	return app.requestWithHeaders(method, path, body, token, nil)
}

func (app *testApp) requestWithHeaders(method, path, body, token string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the token and user ID.
func (app *testApp) registerUser(t *testing.T, username, password string) (token, userID string) {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q,"confirm_password":%q}`, username, password, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// loginUser logs in and returns the token.
func (app *testApp) loginUser(t *testing.T, username, password string, headers map[string]string) string {
	t.Helper()
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	rec := app.requestWithHeaders("POST", "/api/v1/auth/login", body, "", headers)
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string)
}

// mustCreate posts body and returns the named object from a synced 201 response.
func (app *testApp) mustCreate(t *testing.T, path, body, token, key string) map[string]interface{} {
	t.Helper()
	rec := app.request("POST", path, body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST %s: expected 201, got %d: %s", path, rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["synced"] != true {
		t.Fatalf("POST %s: expected synced response, got %v", path, result)
	}
	return result[key].(map[string]interface{})
}
