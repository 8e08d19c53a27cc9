package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dealat-next/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// UserAuthState server-side auth snapshot.
// token_invalid_before is a Unix second timestamp, 0 means unset.
// Kept small so the auth middleware can skip a DB lookup per request.
type UserAuthState struct {
	UserID             uint   `json:"user_id"`
	Role               string `json:"role"`
	ProviderID         uint   `json:"provider_id"`
	LoyaltyTier        string `json:"loyalty_tier"`
	Status             string `json:"status"`
	TokenInvalidBefore int64  `json:"token_invalid_before"`
	UpdatedAt          int64  `json:"updated_at"`
}

func userAuthStateKey(userID uint) string {
	return fmt.Sprintf("auth:user:%d", userID)
}

// BuildUserAuthState builds the auth snapshot from a user row
func BuildUserAuthState(user *models.User) *UserAuthState {
	if user == nil {
		return nil
	}
	state := &UserAuthState{
		UserID:      user.ID,
		Role:        user.Role,
		LoyaltyTier: user.LoyaltyTier,
		Status:      user.Status,
		UpdatedAt:   time.Now().Unix(),
	}
	if user.ProviderID != nil {
		state.ProviderID = *user.ProviderID
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetUserAuthState reads the auth snapshot
func GetUserAuthState(ctx context.Context, userID uint) (*UserAuthState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state UserAuthState
	hit, err := GetJSON(ctx, userAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetUserAuthState writes the auth snapshot
func SetUserAuthState(ctx context.Context, state *UserAuthState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, userAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelUserAuthState drops the auth snapshot, forcing a reload on next request
func DelUserAuthState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, userAuthStateKey(userID))
}
