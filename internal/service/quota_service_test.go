package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupQuotaServiceTest(t *testing.T) (*QuotaService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:quota_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Offer{}, &models.Redemption{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewQuotaService(repository.NewOfferRepository(db), repository.NewRedemptionRepository(db))
	return svc, db
}

func createQuotaTestOffer(t *testing.T, db *gorm.DB, maxUsage, silverMax, bronzeMax int) *models.Offer {
	t.Helper()
	now := time.Now()
	offer := &models.Offer{
		ProviderID:     1,
		CategoryID:     1,
		OfferTypeID:    1,
		TitleEn:        "quota test offer",
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

func createSettledRedemption(t *testing.T, db *gorm.DB, offerID uint, tier, status string) {
	t.Helper()
	now := time.Now()
	staff := uint(99)
	redemption := &models.Redemption{
		Code:      fmt.Sprintf("code-%d-%d", offerID, time.Now().UnixNano()),
		OfferID:   offerID,
		UserID:    1,
		Tier:      tier,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status != constants.RedemptionStatusPending {
		redemption.SettledBy = &staff
		redemption.SettledAt = &now
	}
	if err := db.Create(redemption).Error; err != nil {
		t.Fatalf("create redemption failed: %v", err)
	}
}

func TestQuotaRemainingPerTier(t *testing.T) {
	svc, db := setupQuotaServiceTest(t)
	offer := createQuotaTestOffer(t, db, 10, 3, 2)

	// 2 silver, 1 bronze and 4 gold completions leave 3 of the total.
	for i := 0; i < 2; i++ {
		createSettledRedemption(t, db, offer.ID, constants.TierSilver, constants.RedemptionStatusCompleted)
	}
	createSettledRedemption(t, db, offer.ID, constants.TierBronze, constants.RedemptionStatusCompleted)
	for i := 0; i < 4; i++ {
		createSettledRedemption(t, db, offer.ID, constants.TierGold, constants.RedemptionStatusCompleted)
	}

	cases := []struct {
		tier string
		want int
	}{
		{tier: constants.TierGold, want: 3},
		{tier: constants.TierSilver, want: 1},
		{tier: constants.TierBronze, want: 1},
	}
	for _, item := range cases {
		got, err := svc.Remaining(offer.ID, item.tier)
		if err != nil {
			t.Fatalf("remaining(%s) failed: %v", item.tier, err)
		}
		if got != item.want {
			t.Fatalf("remaining(%s) = %d, want %d", item.tier, got, item.want)
		}
	}
}

func TestQuotaTierCappedByTotal(t *testing.T) {
	svc, db := setupQuotaServiceTest(t)
	offer := createQuotaTestOffer(t, db, 5, 3, 2)

	// 5 gold completions exhaust the total cap; silver still has unused
	// tier cap but nothing of the total is left to draw from.
	for i := 0; i < 5; i++ {
		createSettledRedemption(t, db, offer.ID, constants.TierGold, constants.RedemptionStatusCompleted)
	}

	for _, tier := range []string{constants.TierGold, constants.TierSilver, constants.TierBronze} {
		got, err := svc.Remaining(offer.ID, tier)
		if err != nil {
			t.Fatalf("remaining(%s) failed: %v", tier, err)
		}
		if got != 0 {
			t.Fatalf("remaining(%s) = %d, want 0", tier, got)
		}
	}
	exceeded, err := svc.WouldExceed(offer.ID, constants.TierSilver)
	if err != nil {
		t.Fatalf("would exceed failed: %v", err)
	}
	if !exceeded {
		t.Fatalf("expected silver to be exhausted")
	}
}

func TestQuotaZeroCapsDisable(t *testing.T) {
	svc, db := setupQuotaServiceTest(t)

	// Zero total cap means no redemption may complete at all.
	closed := createQuotaTestOffer(t, db, 0, 0, 0)
	for _, tier := range []string{constants.TierGold, constants.TierSilver, constants.TierBronze} {
		got, err := svc.Remaining(closed.ID, tier)
		if err != nil {
			t.Fatalf("remaining(%s) failed: %v", tier, err)
		}
		if got != 0 {
			t.Fatalf("remaining(%s) = %d, want 0", tier, got)
		}
	}

	// Zero silver cap disables silver while gold still draws the total.
	partial := createQuotaTestOffer(t, db, 4, 0, 2)
	silver, err := svc.Remaining(partial.ID, constants.TierSilver)
	if err != nil {
		t.Fatalf("remaining(silver) failed: %v", err)
	}
	if silver != 0 {
		t.Fatalf("remaining(silver) = %d, want 0", silver)
	}
	gold, err := svc.Remaining(partial.ID, constants.TierGold)
	if err != nil {
		t.Fatalf("remaining(gold) failed: %v", err)
	}
	if gold != 4 {
		t.Fatalf("remaining(gold) = %d, want 4", gold)
	}
}

func TestQuotaOnlyCompletedCount(t *testing.T) {
	svc, db := setupQuotaServiceTest(t)
	offer := createQuotaTestOffer(t, db, 3, 0, 0)

	createSettledRedemption(t, db, offer.ID, constants.TierGold, constants.RedemptionStatusPending)
	createSettledRedemption(t, db, offer.ID, constants.TierGold, constants.RedemptionStatusRejected)
	createSettledRedemption(t, db, offer.ID, constants.TierGold, constants.RedemptionStatusCompleted)

	got, err := svc.Remaining(offer.ID, constants.TierGold)
	if err != nil {
		t.Fatalf("remaining failed: %v", err)
	}
	if got != 2 {
		t.Fatalf("remaining = %d, want 2: pending and rejected rows must not consume quota", got)
	}
}

func TestQuotaSnapshot(t *testing.T) {
	svc, db := setupQuotaServiceTest(t)
	offer := createQuotaTestOffer(t, db, 10, 3, 2)

	createSettledRedemption(t, db, offer.ID, constants.TierSilver, constants.RedemptionStatusCompleted)
	createSettledRedemption(t, db, offer.ID, constants.TierBronze, constants.RedemptionStatusCompleted)
	createSettledRedemption(t, db, offer.ID, constants.TierBronze, constants.RedemptionStatusCompleted)

	snapshot, err := svc.Snapshot(offer.ID)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snapshot.TotalUsed != 3 || snapshot.TotalRemaining != 7 {
		t.Fatalf("total used/remaining = %d/%d, want 3/7", snapshot.TotalUsed, snapshot.TotalRemaining)
	}
	if snapshot.SilverUsed != 1 || snapshot.SilverRemaining != 2 {
		t.Fatalf("silver used/remaining = %d/%d, want 1/2", snapshot.SilverUsed, snapshot.SilverRemaining)
	}
	if snapshot.BronzeUsed != 2 || snapshot.BronzeRemaining != 0 {
		t.Fatalf("bronze used/remaining = %d/%d, want 2/0", snapshot.BronzeUsed, snapshot.BronzeRemaining)
	}
}

func TestQuotaUnknownOffer(t *testing.T) {
	svc, _ := setupQuotaServiceTest(t)
	if _, err := svc.Remaining(12345, constants.TierGold); !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}
}
