package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dealat-next/internal/cache"
	"github.com/dealat-next/internal/config"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService account authentication service
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// JWTClaims token claims
type JWTClaims struct {
	UserID     uint   `json:"user_id"`
	Role       string `json:"role"`
	ProviderID uint   `json:"provider_id"`
	jwt.RegisteredClaims
}

// RegisterInput end-user registration input
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

type loginAttemptState struct {
	Attempts     int   `json:"attempts"`
	WindowStart  int64 `json:"window_start"`
	BlockedUntil int64 `json:"blocked_until"`
}

// NewAuthService creates the authentication service
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// HashPassword hashes a password with bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks a password against its hash
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword checks a password against the configured policy
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// GenerateJWT issues a signed token for the user
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	if user.ProviderID != nil {
		claims.ProviderID = *user.ProviderID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT parses and validates a token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrTokenInvalid
}

// Login authenticates an account and issues a token. Attempts are
// throttled per email so a credential-stuffing loop hits the limiter
// instead of bcrypt.
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", time.Time{}, ErrCredentialsInvalid
	}

	if err := s.checkLoginRate(email); err != nil {
		return nil, "", time.Time{}, err
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, ErrUserFetchFailed
	}
	if user == nil {
		s.recordLoginFailure(email)
		return nil, "", time.Time{}, ErrCredentialsInvalid
	}
	if user.Status != constants.UserStatusActive {
		return nil, "", time.Time{}, ErrUserDisabled
	}
	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		s.recordLoginFailure(email)
		return nil, "", time.Time{}, ErrCredentialsInvalid
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, "", time.Time{}, ErrUserUpdateFailed
	}
	s.clearLoginFailures(email)
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// Register creates an end-user account
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	if s == nil || s.userRepo == nil {
		return nil, ErrUserCreateFailed
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("email", "valid email is required")
	}
	if err := s.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, ErrUserFetchFailed
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hash, err := s.HashPassword(input.Password)
	if err != nil {
		return nil, ErrUserCreateFailed
	}

	now := time.Now()
	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         constants.RoleUser,
		LoyaltyTier:  constants.TierBronze,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, ErrUserCreateFailed
	}
	return user, nil
}

// ChangePassword rotates a password and invalidates outstanding tokens
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserFetchFailed
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrPasswordInvalid
	}
	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return ErrUserUpdateFailed
	}
	now := time.Now()
	user.PasswordHash = hash
	user.TokenInvalidBefore = &now
	user.UpdatedAt = now
	if err := s.userRepo.Update(user); err != nil {
		return ErrUserUpdateFailed
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// TokenIssuedBeforeCutoff reports whether a token predates the user's
// invalidation cutoff
func TokenIssuedBeforeCutoff(claims *JWTClaims, cutoff int64) bool {
	if claims == nil || claims.IssuedAt == nil || cutoff <= 0 {
		return false
	}
	return claims.IssuedAt.Unix() < cutoff
}

func loginAttemptKey(email string) string {
	return fmt.Sprintf("login:attempts:%s", email)
}

func (s *AuthService) checkLoginRate(email string) error {
	if s == nil || s.cfg == nil || !cache.Enabled() {
		return nil
	}
	limit := s.cfg.Security.LoginRateLimit
	if limit.MaxAttempts <= 0 {
		return nil
	}

	var state loginAttemptState
	hit, err := cache.GetJSON(context.Background(), loginAttemptKey(email), &state)
	if err != nil || !hit {
		return nil
	}
	now := time.Now().Unix()
	if state.BlockedUntil > now {
		return ErrLoginRateLimited
	}
	return nil
}

func (s *AuthService) recordLoginFailure(email string) {
	if s == nil || s.cfg == nil || !cache.Enabled() {
		return
	}
	limit := s.cfg.Security.LoginRateLimit
	if limit.MaxAttempts <= 0 {
		return
	}
	window := time.Duration(limit.WindowSeconds) * time.Second
	if window <= 0 {
		window = 5 * time.Minute
	}
	block := time.Duration(limit.BlockSeconds) * time.Second
	if block <= 0 {
		block = window
	}

	ctx := context.Background()
	now := time.Now().Unix()
	var state loginAttemptState
	hit, err := cache.GetJSON(ctx, loginAttemptKey(email), &state)
	if err != nil {
		return
	}
	if !hit || now-state.WindowStart > int64(window/time.Second) {
		state = loginAttemptState{WindowStart: now}
	}
	state.Attempts++
	ttl := window
	if state.Attempts >= limit.MaxAttempts {
		state.BlockedUntil = now + int64(block/time.Second)
		ttl = block
	}
	_ = cache.SetJSON(ctx, loginAttemptKey(email), state, ttl)
}

func (s *AuthService) clearLoginFailures(email string) {
	if !cache.Enabled() {
		return
	}
	_ = cache.Del(context.Background(), loginAttemptKey(email))
}
