package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRedemptionRepositoryTest(t *testing.T) (*GormRedemptionRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:redemption_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Offer{}, &models.Redemption{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRedemptionRepository(db), db
}

func createRepoRedemption(t *testing.T, db *gorm.DB, offerID uint, tier, status string) *models.Redemption {
	t.Helper()
	now := time.Now()
	redemption := &models.Redemption{
		Code:      fmt.Sprintf("code-%d-%d", offerID, time.Now().UnixNano()),
		OfferID:   offerID,
		UserID:    1,
		Tier:      tier,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(redemption).Error; err != nil {
		t.Fatalf("create redemption failed: %v", err)
	}
	return redemption
}

func TestSettleIfOnlyMovesPendingRows(t *testing.T) {
	repo, db := setupRedemptionRepositoryTest(t)
	redemption := createRepoRedemption(t, db, 1, constants.TierGold, constants.RedemptionStatusPending)

	affected, err := repo.SettleIf(redemption.ID, constants.RedemptionStatusCompleted, 7, time.Now())
	if err != nil {
		t.Fatalf("settle failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	// Second attempt finds no pending row to update.
	affected, err = repo.SettleIf(redemption.ID, constants.RedemptionStatusRejected, 8, time.Now())
	if err != nil {
		t.Fatalf("second settle failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows affected on settled row, got %d", affected)
	}

	stored, err := repo.GetByID(redemption.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != constants.RedemptionStatusCompleted {
		t.Fatalf("expected status completed, got %s", stored.Status)
	}
	if stored.SettledBy == nil || *stored.SettledBy != 7 {
		t.Fatalf("expected settled_by 7, got %v", stored.SettledBy)
	}
}

func TestCountsSplitByStatusAndTier(t *testing.T) {
	repo, db := setupRedemptionRepositoryTest(t)

	createRepoRedemption(t, db, 1, constants.TierGold, constants.RedemptionStatusCompleted)
	createRepoRedemption(t, db, 1, constants.TierSilver, constants.RedemptionStatusCompleted)
	createRepoRedemption(t, db, 1, constants.TierSilver, constants.RedemptionStatusRejected)
	createRepoRedemption(t, db, 1, constants.TierBronze, constants.RedemptionStatusPending)
	createRepoRedemption(t, db, 2, constants.TierGold, constants.RedemptionStatusCompleted)

	total, err := repo.CountCompleted(1)
	if err != nil {
		t.Fatalf("count completed failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 completed for offer 1, got %d", total)
	}

	silver, err := repo.CountCompletedByTier(1, constants.TierSilver)
	if err != nil {
		t.Fatalf("count by tier failed: %v", err)
	}
	if silver != 1 {
		t.Fatalf("expected 1 completed silver, got %d", silver)
	}

	all, err := repo.CountByOffer(1)
	if err != nil {
		t.Fatalf("count by offer failed: %v", err)
	}
	if all != 4 {
		t.Fatalf("expected 4 rows for offer 1, got %d", all)
	}
}

func TestGetByCodeMissingReturnsNil(t *testing.T) {
	repo, db := setupRedemptionRepositoryTest(t)
	created := createRepoRedemption(t, db, 1, constants.TierGold, constants.RedemptionStatusPending)

	found, err := repo.GetByCode(created.Code)
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if found == nil || found.ID != created.ID {
		t.Fatalf("expected redemption %d, got %v", created.ID, found)
	}

	missing, err := repo.GetByCode("no-such-code")
	if err != nil {
		t.Fatalf("get missing code failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown code, got %v", missing)
	}
}

func TestListRedemptionsScopedByProvider(t *testing.T) {
	repo, db := setupRedemptionRepositoryTest(t)

	offers := []models.Offer{
		{ProviderID: 1, CategoryID: 1, OfferTypeID: 1, TitleEn: "first", Status: constants.OfferStatusLive},
		{ProviderID: 2, CategoryID: 1, OfferTypeID: 1, TitleEn: "second", Status: constants.OfferStatusLive},
	}
	for i := range offers {
		if err := db.Create(&offers[i]).Error; err != nil {
			t.Fatalf("create offer failed: %v", err)
		}
	}
	createRepoRedemption(t, db, offers[0].ID, constants.TierGold, constants.RedemptionStatusPending)
	createRepoRedemption(t, db, offers[0].ID, constants.TierSilver, constants.RedemptionStatusCompleted)
	createRepoRedemption(t, db, offers[1].ID, constants.TierGold, constants.RedemptionStatusPending)

	rows, total, err := repo.List(RedemptionListFilter{ProviderID: 1})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 rows for provider 1, got total=%d len=%d", total, len(rows))
	}
	for _, row := range rows {
		if row.OfferID != offers[0].ID {
			t.Fatalf("row %d belongs to offer %d", row.ID, row.OfferID)
		}
	}
}
