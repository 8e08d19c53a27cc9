package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dealat-next/internal/config"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"
	"github.com/dealat-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if strings.TrimSpace(w2.Header().Get(requestIDHeader)) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func TestJWTAuthMiddlewareMissingSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(JWTAuthMiddleware("", nil))
	r.GET("/user/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/ping", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func setupAuthMiddlewareTest(t *testing.T) (repository.UserRepository, *service.AuthService, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:router_middleware_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "router-test-secret"
	cfg.JWT.ExpireHours = 1

	userRepo := repository.NewUserRepository(db)
	return userRepo, service.NewAuthService(cfg, userRepo), cfg
}

func TestJWTAuthMiddlewareResolvesRoleFromAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userRepo, authSvc, cfg := setupAuthMiddlewareTest(t)

	providerID := uint(9)
	staff := &models.User{
		Email:        "staff@dealat.test",
		PasswordHash: "x",
		Role:         constants.RoleProvider,
		ProviderID:   &providerID,
		Status:       constants.UserStatusActive,
	}
	if err := userRepo.Create(staff); err != nil {
		t.Fatalf("create staff failed: %v", err)
	}
	token, _, err := authSvc.GenerateJWT(staff)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, userRepo))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     c.MustGet("user_id"),
			"role":        c.MustGet("role"),
			"provider_id": c.MustGet("provider_id"),
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		UserID     uint   `json:"user_id"`
		Role       string `json:"role"`
		ProviderID uint   `json:"provider_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.UserID != staff.ID {
		t.Fatalf("user_id want %d got %d", staff.ID, resp.UserID)
	}
	if resp.Role != constants.RoleProvider {
		t.Fatalf("role want provider got %s", resp.Role)
	}
	if resp.ProviderID != providerID {
		t.Fatalf("provider_id want %d got %d", providerID, resp.ProviderID)
	}
}

func TestJWTAuthMiddlewareRejectsDisabledAccount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userRepo, authSvc, cfg := setupAuthMiddlewareTest(t)

	user := &models.User{
		Email:        "blocked@dealat.test",
		PasswordHash: "x",
		Role:         constants.RoleUser,
		Status:       constants.UserStatusActive,
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	user.Status = constants.UserStatusDisabled
	if err := userRepo.Update(user); err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, userRepo))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}

func TestJWTAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userRepo, authSvc, cfg := setupAuthMiddlewareTest(t)

	user := &models.User{
		Email:        "revoked@dealat.test",
		PasswordHash: "x",
		Role:         constants.RoleUser,
		Status:       constants.UserStatusActive,
	}
	if err := userRepo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	token, _, err := authSvc.GenerateJWT(user)
	if err != nil {
		t.Fatalf("issue token failed: %v", err)
	}

	cutoff := time.Now().Add(time.Second)
	user.TokenInvalidBefore = &cutoff
	if err := userRepo.Update(user); err != nil {
		t.Fatalf("set cutoff failed: %v", err)
	}

	r := gin.New()
	r.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, userRepo))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("status_code want 401 got %d", resp.StatusCode)
	}
}
