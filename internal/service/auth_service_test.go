package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dealat-next/internal/config"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireNumber: true,
	}

	svc := NewAuthService(cfg, repository.NewUserRepository(db))
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)

	user, err := svc.Register(RegisterInput{
		Email:       "Dana@Example.com",
		Password:    "Sup3rSecret",
		DisplayName: "Dana",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "dana@example.com" {
		t.Fatalf("email not normalized, got %q", user.Email)
	}
	if user.Role != constants.RoleUser || user.LoyaltyTier != constants.TierBronze {
		t.Fatalf("defaults wrong: role=%q tier=%q", user.Role, user.LoyaltyTier)
	}
	if user.PasswordHash == "Sup3rSecret" {
		t.Fatalf("password stored in the clear")
	}

	logged, token, expiresAt, err := svc.Login("dana@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if logged.ID != user.ID || token == "" {
		t.Fatalf("login returned wrong user or empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Fatalf("token already expired")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != constants.RoleUser {
		t.Fatalf("claims wrong: %+v", claims)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Register(RegisterInput{Email: "a@b.com", Password: "short"}); !errors.Is(err, ErrPasswordInvalid) {
		t.Fatalf("expected ErrPasswordInvalid, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	input := RegisterInput{Email: "dup@example.com", Password: "Sup3rSecret"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register(input); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Register(RegisterInput{Email: "x@example.com", Password: "Sup3rSecret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Login("x@example.com", "WrongPass1"); !errors.Is(err, ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid, got %v", err)
	}
	if _, _, _, err := svc.Login("nobody@example.com", "WrongPass1"); !errors.Is(err, ErrCredentialsInvalid) {
		t.Fatalf("expected ErrCredentialsInvalid for unknown email, got %v", err)
	}
}

func TestLoginDisabledUser(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	user, err := svc.Register(RegisterInput{Email: "off@example.com", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(user).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, _, _, err := svc.Login("off@example.com", "Sup3rSecret"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestChangePasswordInvalidatesOldTokens(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	user, err := svc.Register(RegisterInput{Email: "rot@example.com", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, token, _, err := svc.Login("rot@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	// The cutoff comparison is strict, the old token must predate it.
	time.Sleep(1100 * time.Millisecond)

	if err := svc.ChangePassword(user.ID, "WrongOld1", "An0therSecret"); !errors.Is(err, ErrPasswordInvalid) {
		t.Fatalf("expected ErrPasswordInvalid for wrong old password, got %v", err)
	}
	if err := svc.ChangePassword(user.ID, "Sup3rSecret", "An0therSecret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, _, _, err := svc.Login("rot@example.com", "Sup3rSecret"); !errors.Is(err, ErrCredentialsInvalid) {
		t.Fatalf("old password still accepted")
	}
	if _, _, _, err := svc.Login("rot@example.com", "An0therSecret"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	updated, err := svc.userRepo.GetByID(user.ID)
	if err != nil || updated == nil {
		t.Fatalf("fetch user failed: %v", err)
	}
	if updated.TokenInvalidBefore == nil {
		t.Fatalf("token cutoff not set")
	}
	if !TokenIssuedBeforeCutoff(claims, updated.TokenInvalidBefore.Unix()) {
		t.Fatalf("old token not invalidated by cutoff")
	}
}

func TestParseJWTRejectsTampering(t *testing.T) {
	svc, _ := setupAuthServiceTest(t)
	if _, err := svc.Register(RegisterInput{Email: "t@example.com", Password: "Sup3rSecret"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	_, token, _, err := svc.Login("t@example.com", "Sup3rSecret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.ParseJWT(token + "x"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, err := svc.ParseJWT(""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for empty token, got %v", err)
	}
}
