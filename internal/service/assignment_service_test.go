package service

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
	"github.com/dealat-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAssignmentServiceTest(t *testing.T) (*AssignmentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:assignment_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Provider{}, &models.ProviderAssignment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	svc := NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewUserRepository(db),
		repository.NewProviderRepository(db),
	)
	return svc, db
}

func createAssignmentTestUser(t *testing.T, db *gorm.DB, id uint, role string, providerID *uint) *models.User {
	t.Helper()
	now := time.Now()
	user := &models.User{
		ID:           id,
		Email:        fmt.Sprintf("user%d@example.com", id),
		PasswordHash: "x",
		Role:         role,
		ProviderID:   providerID,
		LoyaltyTier:  constants.TierBronze,
		Status:       constants.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

var assignmentOwner = authz.Actor{UserID: 50, Role: constants.RoleProvider, ProviderID: 7}

func TestSyncReplacesTargetSet(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)

	got, err := svc.Sync(assignmentOwner, 7, constants.RelationCategory, []uint{1, 2, 3})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{1, 2, 3}) {
		t.Fatalf("targets = %v, want [1 2 3]", got)
	}

	got, err = svc.Sync(assignmentOwner, 7, constants.RelationCategory, []uint{2, 3, 4})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{2, 3, 4}) {
		t.Fatalf("targets = %v, want [2 3 4]", got)
	}
}

func TestSyncEmptySetClears(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)

	if _, err := svc.Sync(assignmentOwner, 7, constants.RelationGovernorate, []uint{5, 6}); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	got, err := svc.Sync(assignmentOwner, 7, constants.RelationGovernorate, nil)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("targets = %v, want empty", got)
	}
}

func TestSyncDeduplicatesInput(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)

	got, err := svc.Sync(assignmentOwner, 7, constants.RelationCategory, []uint{3, 3, 1, 0, 1})
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{1, 3}) {
		t.Fatalf("targets = %v, want [1 3]", got)
	}
}

func TestSyncIsolatedPerRelation(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)

	if _, err := svc.Sync(assignmentOwner, 7, constants.RelationCategory, []uint{1}); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if _, err := svc.Sync(assignmentOwner, 7, constants.RelationGovernorate, []uint{9}); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if _, err := svc.Sync(assignmentOwner, 7, constants.RelationCategory, nil); err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	got, err := svc.ListTargets(7, constants.RelationGovernorate)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !reflect.DeepEqual(got, []uint{9}) {
		t.Fatalf("clearing categories touched governorates: %v", got)
	}
}

func TestSyncRefusesSubProviderRelation(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)
	if _, err := svc.Sync(assignmentOwner, 7, constants.RelationSubProvider, []uint{1}); !errors.Is(err, ErrAssignmentInvalid) {
		t.Fatalf("expected ErrAssignmentInvalid, got %v", err)
	}
}

func TestSyncScope(t *testing.T) {
	svc, _ := setupAssignmentServiceTest(t)

	foreign := authz.Actor{UserID: 51, Role: constants.RoleProvider, ProviderID: 8}
	if _, err := svc.Sync(foreign, 7, constants.RelationCategory, []uint{1}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign provider, got %v", err)
	}

	staff := authz.Actor{UserID: 52, Role: constants.RoleSubProvider, ProviderID: 7}
	if _, err := svc.Sync(staff, 7, constants.RelationCategory, []uint{1}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for sub-provider, got %v", err)
	}

	if _, err := svc.Sync(testAdmin, 7, constants.RelationCategory, []uint{1}); err != nil {
		t.Fatalf("admin sync failed: %v", err)
	}
}

func TestLinkSubProviderFlipsRole(t *testing.T) {
	svc, db := setupAssignmentServiceTest(t)
	user := createAssignmentTestUser(t, db, 200, constants.RoleUser, nil)

	if err := svc.LinkSubProvider(assignmentOwner, 7, user.ID); err != nil {
		t.Fatalf("link failed: %v", err)
	}

	var linked models.User
	if err := db.First(&linked, user.ID).Error; err != nil {
		t.Fatalf("fetch user failed: %v", err)
	}
	if linked.Role != constants.RoleSubProvider {
		t.Fatalf("role = %q, want subprovider", linked.Role)
	}
	if linked.ProviderID == nil || *linked.ProviderID != 7 {
		t.Fatalf("provider link not stored: %v", linked.ProviderID)
	}

	targets, err := svc.ListTargets(7, constants.RelationSubProvider)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !reflect.DeepEqual(targets, []uint{user.ID}) {
		t.Fatalf("relation rows = %v, want [%d]", targets, user.ID)
	}
}

func TestLinkSubProviderRoleConflict(t *testing.T) {
	svc, db := setupAssignmentServiceTest(t)

	pid := uint(8)
	staff := createAssignmentTestUser(t, db, 201, constants.RoleSubProvider, &pid)
	if err := svc.LinkSubProvider(assignmentOwner, 7, staff.ID); !errors.Is(err, ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict for staff of another provider, got %v", err)
	}

	admin := createAssignmentTestUser(t, db, 202, constants.RoleAdmin, nil)
	if err := svc.LinkSubProvider(assignmentOwner, 7, admin.ID); !errors.Is(err, ErrRoleConflict) {
		t.Fatalf("expected ErrRoleConflict for admin, got %v", err)
	}
}

func TestUnlinkSubProviderRestoresRole(t *testing.T) {
	svc, db := setupAssignmentServiceTest(t)
	user := createAssignmentTestUser(t, db, 203, constants.RoleUser, nil)

	if err := svc.LinkSubProvider(assignmentOwner, 7, user.ID); err != nil {
		t.Fatalf("link failed: %v", err)
	}
	if err := svc.UnlinkSubProvider(assignmentOwner, 7, user.ID); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}

	var restored models.User
	if err := db.First(&restored, user.ID).Error; err != nil {
		t.Fatalf("fetch user failed: %v", err)
	}
	if restored.Role != constants.RoleUser {
		t.Fatalf("role = %q, want user", restored.Role)
	}

	targets, err := svc.ListTargets(7, constants.RelationSubProvider)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(targets) != 0 {
		t.Fatalf("relation rows = %v, want empty", targets)
	}

	// Retry of a completed unlink succeeds without touching anything.
	if err := svc.UnlinkSubProvider(assignmentOwner, 7, user.ID); err != nil {
		t.Fatalf("repeated unlink failed: %v", err)
	}
}

func TestUnlinkRepairsHalfAppliedState(t *testing.T) {
	svc, db := setupAssignmentServiceTest(t)

	// Relation row without the role flip, as a crashed link would leave.
	pid := uint(7)
	user := createAssignmentTestUser(t, db, 204, constants.RoleSubProvider, &pid)
	if err := db.Create(&models.ProviderAssignment{
		ProviderID: 7,
		Relation:   constants.RelationSubProvider,
		TargetID:   user.ID,
	}).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}

	if err := svc.UnlinkSubProvider(assignmentOwner, 7, user.ID); err != nil {
		t.Fatalf("unlink failed: %v", err)
	}
	var repaired models.User
	if err := db.First(&repaired, user.ID).Error; err != nil {
		t.Fatalf("fetch user failed: %v", err)
	}
	if repaired.Role != constants.RoleUser {
		t.Fatalf("role = %q, want user", repaired.Role)
	}
}
