package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jpbarro/multi-t-inventory/internal/middleware"
	"github.com/jpbarro/multi-t-inventory/internal/ratelimit"
	"github.com/jpbarro/multi-t-inventory/internal/repository"
	"github.com/jpbarro/multi-t-inventory/internal/supply"
	"github.com/jpbarro/multi-t-inventory/pkg/config"
	"github.com/jpbarro/multi-t-inventory/pkg/database"
	"github.com/jpbarro/multi-t-inventory/pkg/jwtutil"
)

// newTestServer wires a fresh in-memory database and the full route table,
// mirroring the production setup minus the listener.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db

	jwtutil.Initialize(&config.JWTConfig{SigningKey: "test-signing-key", ExpirationMinutes: 60})
	InitRateLimiter(ratelimit.New(5, time.Minute))
	InitSupplyService(supply.NewMockService("https://supplier.example.com", "sk-test-123456", 0, nil))

	e := echo.New()

	auth := e.Group("/auth")
	auth.POST("/login", Login)
	auth.POST("/signup", Signup)
	auth.POST("/invite", Invite, middleware.Auth)
	auth.GET("/me", Me, middleware.Auth)

	products := e.Group("/products", middleware.Auth)
	products.GET("", ListProducts)
	products.GET("/:id", GetProduct)
	products.POST("", CreateProduct, middleware.RequireSuperuser)
	products.PATCH("/:id", UpdateProduct, middleware.RequireSuperuser)
	products.DELETE("/:id", DeleteProduct, middleware.RequireSuperuser)

	inventory := e.Group("/inventory", middleware.Auth)
	inventory.GET("", ListInventory)
	inventory.POST("", CreateInventory)
	inventory.GET("/:product_id", GetInventoryByProduct)
	inventory.PATCH("/:id", UpdateInventory)
	inventory.POST("/:id/resupply", Resupply)

	e.GET("/tenants", ListTenants, middleware.Auth, middleware.RequireSuperuser)

	return e
}

// doJSON issues a JSON request against the test server.
func doJSON(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// doLogin issues the form-encoded login request.
func doLogin(t *testing.T, e *echo.Echo, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// signupAndLogin registers a tenant with a first user and returns a token.
func signupAndLogin(t *testing.T, e *echo.Echo, email, tenantName string) string {
	t.Helper()

	rec := doJSON(t, e, http.MethodPost, "/auth/signup", "", map[string]any{
		"email":       email,
		"full_name":   "Test User",
		"password":    "test-password",
		"tenant_name": tenantName,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed with %d: %s", rec.Code, rec.Body.String())
	}

	rec = doLogin(t, e, email, "test-password")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := decodeBody(t, rec)["access_token"].(string)
	if token == "" {
		t.Fatal("login returned no access token")
	}
	return token
}

// superuserToken creates a superuser directly and mints a token for it.
func superuserToken(t *testing.T, email string) string {
	t.Helper()

	users := repository.NewUserRepository(database.GetDB())
	user, err := users.Create(context.Background(), repository.UserCreate{
		Email:       email,
		FullName:    "Admin",
		Password:    "admin-password",
		IsSuperuser: true,
	})
	if err != nil {
		t.Fatalf("failed to create superuser: %v", err)
	}

	token, err := jwtutil.GenerateToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}
