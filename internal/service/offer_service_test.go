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

func setupOfferServiceTest(t *testing.T) (*OfferService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:offer_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Category{},
		&models.Governorate{},
		&models.OfferType{},
		&models.Offer{},
		&models.Redemption{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	offerRepo := repository.NewOfferRepository(db)
	redemptionRepo := repository.NewRedemptionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	offerTypeRepo := repository.NewOfferTypeRepository(db)
	svc := NewOfferService(offerRepo, redemptionRepo, categoryRepo, offerTypeRepo, nil)
	return svc, db
}

func createTestReferenceData(t *testing.T, db *gorm.DB) {
	t.Helper()
	now := time.Now()
	if err := db.Create(&models.Category{ID: 1, NameAr: "مطاعم", NameEn: "Restaurants", IsActive: true, CreatedAt: now, UpdatedAt: now}).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := db.Create(&models.OfferType{ID: 1, NameAr: "نسبة", NameEn: "Percentage", IsActive: true, CreatedAt: now, UpdatedAt: now}).Error; err != nil {
		t.Fatalf("create offer type failed: %v", err)
	}
}

func validSubmitInput() SubmitOfferInput {
	return SubmitOfferInput{
		ProviderID:     7,
		CategoryID:     1,
		OfferTypeID:    1,
		TitleAr:        "خصم عشرة بالمئة",
		TitleEn:        "10% off",
		MaxUsage:       10,
		SilverMaxUsage: 3,
		BronzeMaxUsage: 2,
	}
}

var testAdmin = authz.Actor{UserID: 1, Role: constants.RoleAdmin}
var testProviderStaff = authz.Actor{UserID: 10, Role: constants.RoleProvider, ProviderID: 7}

func TestSubmitByProviderNeverLive(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	input := validSubmitInput()
	input.Public = true // requested visibility is ignored for providers
	offer, err := svc.Submit(testProviderStaff, input)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if offer.Status != constants.OfferStatusPendingApproval {
		t.Fatalf("expected pending_approval, got %q", offer.Status)
	}
	if offer.IsPublic {
		t.Fatalf("provider submission must not be public")
	}
	if offer.ProviderID != testProviderStaff.ProviderID {
		t.Fatalf("offer must belong to the actor's provider, got %d", offer.ProviderID)
	}
}

func TestSubmitByAdminDirectLive(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	input := validSubmitInput()
	input.Public = true
	offer, err := svc.Submit(testAdmin, input)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if offer.Status != constants.OfferStatusLive || !offer.IsPublic {
		t.Fatalf("admin public submission should go live, got status=%q public=%v", offer.Status, offer.IsPublic)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	input := validSubmitInput()
	input.TitleAr = ""
	input.TitleEn = ""
	_, err := svc.Submit(testProviderStaff, input)
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, found := ve.Fields["title"]; !found {
		t.Fatalf("expected title field error, got %v", ve.Fields)
	}
}

func TestSubmitQuotaConfigInvalid(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	cases := []struct {
		name   string
		max    int
		silver int
		bronze int
	}{
		{name: "tier exceeds total", max: 5, silver: 6, bronze: 0},
		{name: "sum exceeds total", max: 5, silver: 3, bronze: 3},
		{name: "negative cap", max: 5, silver: -1, bronze: 0},
	}
	for _, item := range cases {
		input := validSubmitInput()
		input.MaxUsage = item.max
		input.SilverMaxUsage = item.silver
		input.BronzeMaxUsage = item.bronze
		if _, err := svc.Submit(testProviderStaff, input); !errors.Is(err, ErrQuotaConfigInvalid) {
			t.Fatalf("%s: expected ErrQuotaConfigInvalid, got %v", item.name, err)
		}
	}
}

func TestApproveTransition(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	approved, err := svc.Approve(testAdmin, offer.ID)
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != constants.OfferStatusLive || !approved.IsPublic {
		t.Fatalf("expected live public offer, got status=%q public=%v", approved.Status, approved.IsPublic)
	}

	// Second approve finds no pending row.
	if _, err := svc.Approve(testAdmin, offer.ID); !errors.Is(err, ErrOfferConflict) {
		t.Fatalf("expected ErrOfferConflict, got %v", err)
	}
}

func TestApproveByProviderForbidden(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Approve(testProviderStaff, offer.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestConcurrentApproveSingleWinner(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	const attempts = 4
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, results[idx] = svc.Approve(testAdmin, offer.ID)
		}(i)
	}
	wg.Wait()

	success := 0
	conflicts := 0
	for _, err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrOfferConflict):
			conflicts++
		default:
			t.Fatalf("unexpected approve error: %v", err)
		}
	}
	if success != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 winner and %d conflicts, got %d/%d", attempts-1, success, conflicts)
	}
}

func TestRejectWithoutRedemptionsDeletes(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := svc.Reject(testAdmin, offer.ID, "duplicate"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if _, err := svc.Get(offer.ID); !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("expected offer removed, got %v", err)
	}
}

func TestRejectWithRedemptionsKeepsRow(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	redemption := models.Redemption{
		Code:    "code-reject-test",
		OfferID: offer.ID,
		UserID:  500,
		Tier:    constants.TierBronze,
		Status:  constants.RedemptionStatusPending,
	}
	if err := db.Create(&redemption).Error; err != nil {
		t.Fatalf("create redemption failed: %v", err)
	}

	if err := svc.Reject(testAdmin, offer.ID, "bad terms"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	rejected, err := svc.Get(offer.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if rejected.Status != constants.OfferStatusRejected || rejected.IsPublic {
		t.Fatalf("expected rejected non-public offer, got status=%q public=%v", rejected.Status, rejected.IsPublic)
	}

	// A second reject has no pending row left to transition.
	if err := svc.Reject(testAdmin, offer.ID, "again"); !errors.Is(err, ErrOfferConflict) {
		t.Fatalf("expected ErrOfferConflict, got %v", err)
	}
}

func TestEditByProviderRegatesLiveOffer(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Approve(testAdmin, offer.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	title := "15% off"
	edited, err := svc.Edit(testProviderStaff, offer.ID, EditOfferInput{TitleEn: &title})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Status != constants.OfferStatusPendingApproval || edited.IsPublic {
		t.Fatalf("provider edit of live offer must re-enter approval, got status=%q public=%v", edited.Status, edited.IsPublic)
	}
	if edited.TitleEn != title {
		t.Fatalf("edit not applied, got %q", edited.TitleEn)
	}
}

func TestEditByAdminKeepsState(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	input := validSubmitInput()
	input.Public = true
	offer, err := svc.Submit(testAdmin, input)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	title := "Better title"
	edited, err := svc.Edit(testAdmin, offer.ID, EditOfferInput{TitleEn: &title})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if edited.Status != constants.OfferStatusLive || !edited.IsPublic {
		t.Fatalf("admin edit must keep state, got status=%q public=%v", edited.Status, edited.IsPublic)
	}
}

func TestEditCrossProviderForbidden(t *testing.T) {
	svc, db := setupOfferServiceTest(t)
	createTestReferenceData(t, db)

	offer, err := svc.Submit(testProviderStaff, validSubmitInput())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	other := authz.Actor{UserID: 20, Role: constants.RoleProvider, ProviderID: 8}
	title := "hijack"
	if _, err := svc.Edit(other, offer.ID, EditOfferInput{TitleEn: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestEffectiveStateExpiry(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	offer := &models.Offer{Status: constants.OfferStatusLive, IsPublic: true, EndsAt: &past}
	if got := offer.EffectiveState(time.Now()); got != constants.OfferStatusExpired {
		t.Fatalf("expected expired, got %q", got)
	}
	if offer.IsRedeemable(time.Now()) {
		t.Fatalf("expired offer must not be redeemable")
	}
	if offer.Status != constants.OfferStatusLive {
		t.Fatalf("expiry must not be stored, status mutated to %q", offer.Status)
	}
}
