package service

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRedemptionServiceTest(t *testing.T) (*RedemptionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:redemption_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Offer{}, &models.Redemption{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	offerRepo := repository.NewOfferRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	userRepo := repository.NewUserRepository(db)
	quota := NewQuotaService(offerRepo, redemptionRepo)
	svc := NewRedemptionService(redemptionRepo, offerRepo, userRepo, quota, 0)
	return svc, db
}

func createRedemptionTestUser(t *testing.T, db *gorm.DB, id uint, tier string) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:           id,
		Email:        fmt.Sprintf("user%d@example.com", id),
		PasswordHash: "x",
		Role:         constants.RoleUser,
		LoyaltyTier:  tier,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createRedemptionTestOffer(t *testing.T, db *gorm.DB, providerID uint, maxUsage, silverMax, bronzeMax int) *models.Offer {
	t.Helper()
	now := time.Now()
	offer := &models.Offer{
		ProviderID:     providerID,
		CategoryID:     1,
		OfferTypeID:    1,
		TitleEn:        "ledger test offer",
		MaxUsage:       maxUsage,
		SilverMaxUsage: silverMax,
		BronzeMaxUsage: bronzeMax,
		Status:         constants.OfferStatusLive,
		IsPublic:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(offer).Error; err != nil {
		t.Fatalf("create offer failed: %v", err)
	}
	return offer
}

var testSettler = authz.Actor{UserID: 900, Role: constants.RoleProvider, ProviderID: 7}

func TestCreateRedemption(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	user := createRedemptionTestUser(t, db, 100, constants.TierSilver)

	redemption, qr, err := svc.Create(offer.ID, user.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if redemption.Status != constants.RedemptionStatusPending {
		t.Fatalf("expected pending, got %q", redemption.Status)
	}
	if redemption.Tier != constants.TierSilver {
		t.Fatalf("tier not captured from profile, got %q", redemption.Tier)
	}
	if redemption.Code == "" {
		t.Fatalf("scan code missing")
	}
	if qr == "" {
		t.Fatalf("qr image missing")
	}

	// Creation never consumes quota.
	remaining, err := svc.quota.RemainingTotal(offer.ID)
	if err != nil {
		t.Fatalf("remaining failed: %v", err)
	}
	if remaining != 5 {
		t.Fatalf("pending scan consumed quota, remaining = %d", remaining)
	}
}

func TestCreateRequiresRedeemableOffer(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	user := createRedemptionTestUser(t, db, 100, constants.TierGold)

	pending := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	if err := db.Model(pending).Updates(map[string]interface{}{
		"status":    constants.OfferStatusPendingApproval,
		"is_public": false,
	}).Error; err != nil {
		t.Fatalf("update offer failed: %v", err)
	}
	if _, _, err := svc.Create(pending.ID, user.ID); !errors.Is(err, ErrOfferNotLive) {
		t.Fatalf("expected ErrOfferNotLive for unapproved offer, got %v", err)
	}

	expired := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	past := time.Now().Add(-time.Hour)
	if err := db.Model(expired).Update("ends_at", past).Error; err != nil {
		t.Fatalf("update offer failed: %v", err)
	}
	if _, _, err := svc.Create(expired.ID, user.ID); !errors.Is(err, ErrOfferNotLive) {
		t.Fatalf("expected ErrOfferNotLive for expired offer, got %v", err)
	}
}

func TestCreateRejectsDisabledUser(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	user := createRedemptionTestUser(t, db, 100, constants.TierGold)
	if err := db.Model(user).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("update user failed: %v", err)
	}
	if _, _, err := svc.Create(offer.ID, user.ID); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestSettleComplete(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	user := createRedemptionTestUser(t, db, 100, constants.TierGold)

	redemption, _, err := svc.Create(offer.ID, user.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	settled, err := svc.Settle(testSettler, redemption.ID, constants.RedemptionStatusCompleted)
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if settled.Status != constants.RedemptionStatusCompleted {
		t.Fatalf("expected completed, got %q", settled.Status)
	}
	if settled.SettledBy == nil || *settled.SettledBy != testSettler.UserID {
		t.Fatalf("settling staff not recorded: %v", settled.SettledBy)
	}
	if settled.SettledAt == nil {
		t.Fatalf("settlement time not recorded")
	}

	remaining, err := svc.quota.RemainingTotal(offer.ID)
	if err != nil {
		t.Fatalf("remaining failed: %v", err)
	}
	if remaining != 4 {
		t.Fatalf("remaining = %d, want 4", remaining)
	}
}

func TestSettleQuotaExceededLeavesPending(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 1, 0, 0)
	first := createRedemptionTestUser(t, db, 100, constants.TierGold)
	second := createRedemptionTestUser(t, db, 101, constants.TierGold)

	winner, _, err := svc.Create(offer.ID, first.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	loser, _, err := svc.Create(offer.ID, second.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Settle(testSettler, winner.ID, constants.RedemptionStatusCompleted); err != nil {
		t.Fatalf("first settle failed: %v", err)
	}
	if _, err := svc.Settle(testSettler, loser.ID, constants.RedemptionStatusCompleted); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}

	// The losing redemption is still pending, not consumed.
	kept, err := svc.Get(loser.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if kept.Status != constants.RedemptionStatusPending {
		t.Fatalf("quota failure must leave the row pending, got %q", kept.Status)
	}

	// Rejection stays possible once the cap is gone.
	rejected, err := svc.Settle(testSettler, loser.ID, constants.RedemptionStatusRejected)
	if err != nil {
		t.Fatalf("reject settle failed: %v", err)
	}
	if rejected.Status != constants.RedemptionStatusRejected {
		t.Fatalf("expected rejected, got %q", rejected.Status)
	}
}

func TestSettleTwiceSingleWinner(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	user := createRedemptionTestUser(t, db, 100, constants.TierGold)

	redemption, _, err := svc.Create(offer.ID, user.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, results[idx] = svc.Settle(testSettler, redemption.ID, constants.RedemptionStatusCompleted)
		}(i)
	}
	wg.Wait()

	success := 0
	already := 0
	for _, err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrAlreadySettled):
			already++
		default:
			t.Fatalf("unexpected settle error: %v", err)
		}
	}
	if success != 1 || already != 1 {
		t.Fatalf("expected exactly one winner, got success=%d already=%d", success, already)
	}

	remaining, err := svc.quota.RemainingTotal(offer.ID)
	if err != nil {
		t.Fatalf("remaining failed: %v", err)
	}
	if remaining != 4 {
		t.Fatalf("double settle consumed quota twice, remaining = %d", remaining)
	}
}

func TestConcurrentSettlesRespectCap(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	const capacity = 2
	const scans = 5
	offer := createRedemptionTestOffer(t, db, 7, capacity, 0, 0)

	ids := make([]uint, 0, scans)
	for i := 0; i < scans; i++ {
		user := createRedemptionTestUser(t, db, uint(100+i), constants.TierGold)
		redemption, _, err := svc.Create(offer.ID, user.ID)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids = append(ids, redemption.ID)
	}

	var wg sync.WaitGroup
	results := make([]error, scans)
	for i, id := range ids {
		wg.Add(1)
		go func(idx int, redemptionID uint) {
			defer wg.Done()
			_, results[idx] = svc.Settle(testSettler, redemptionID, constants.RedemptionStatusCompleted)
		}(i, id)
	}
	wg.Wait()

	completed := 0
	exceeded := 0
	for _, err := range results {
		switch {
		case err == nil:
			completed++
		case errors.Is(err, ErrQuotaExceeded):
			exceeded++
		default:
			t.Fatalf("unexpected settle error: %v", err)
		}
	}
	if completed != capacity || exceeded != scans-capacity {
		t.Fatalf("expected %d completed and %d exceeded, got %d/%d", capacity, scans-capacity, completed, exceeded)
	}

	var stored int64
	if err := db.Model(&models.Redemption{}).
		Where("offer_id = ? AND status = ?", offer.ID, constants.RedemptionStatusCompleted).
		Count(&stored).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if stored != capacity {
		t.Fatalf("ledger holds %d completed rows, want %d", stored, capacity)
	}
}

func TestSettleCrossProviderForbidden(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	user := createRedemptionTestUser(t, db, 100, constants.TierGold)

	redemption, _, err := svc.Create(offer.ID, user.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	foreign := authz.Actor{UserID: 901, Role: constants.RoleProvider, ProviderID: 8}
	if _, err := svc.Settle(foreign, redemption.ID, constants.RedemptionStatusCompleted); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSettleInvalidOutcome(t *testing.T) {
	svc, db := setupRedemptionServiceTest(t)
	offer := createRedemptionTestOffer(t, db, 7, 5, 0, 0)
	user := createRedemptionTestUser(t, db, 100, constants.TierGold)

	redemption, _, err := svc.Create(offer.ID, user.ID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Settle(testSettler, redemption.ID, "pending"); !errors.Is(err, ErrRedemptionInvalid) {
		t.Fatalf("expected ErrRedemptionInvalid, got %v", err)
	}
}
