package service

import (
	"github.com/dealat-next/internal/authz"
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/repository"

	"gorm.io/gorm"
)

// AssignmentService keeps provider relations in sync. Category and
// governorate links are replaced wholesale; the sub-provider relation is
// 1:1 coupled with the target user's role and only moves through
// Link/Unlink so the pair can never drift.
type AssignmentService struct {
	repo         repository.AssignmentRepository
	userRepo     repository.UserRepository
	providerRepo repository.ProviderRepository
}

// NewAssignmentService creates the assignment synchronizer
func NewAssignmentService(
	repo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	providerRepo repository.ProviderRepository,
) *AssignmentService {
	return &AssignmentService{
		repo:         repo,
		userRepo:     userRepo,
		providerRepo: providerRepo,
	}
}

// Sync replaces the full target set for a relation: rows missing from
// targetIDs are deleted, absent ones inserted, the empty set clears the
// relation. The sub-provider relation is refused here, its rows carry a
// role flip and must go through LinkSubProvider/UnlinkSubProvider.
func (s *AssignmentService) Sync(actor authz.Actor, providerID uint, relation string, targetIDs []uint) ([]uint, error) {
	if s == nil || s.repo == nil {
		return nil, ErrAssignmentSyncFailed
	}
	if err := s.checkProviderScope(actor, providerID); err != nil {
		return nil, err
	}
	switch relation {
	case constants.RelationCategory, constants.RelationGovernorate:
	case constants.RelationSubProvider:
		return nil, ErrAssignmentInvalid
	default:
		return nil, ErrAssignmentInvalid
	}

	wanted := dedupeIDs(targetIDs)
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.ListTargets(providerID, relation)
		if err != nil {
			return ErrAssignmentSyncFailed
		}

		toAdd, toRemove := diffIDs(current, wanted)
		if err := repo.RemoveTargets(providerID, relation, toRemove); err != nil {
			return ErrAssignmentSyncFailed
		}
		if err := repo.AddTargets(providerID, relation, toAdd); err != nil {
			return ErrAssignmentSyncFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.repo.ListTargets(providerID, relation)
}

// ListTargets returns the current target set for a relation
func (s *AssignmentService) ListTargets(providerID uint, relation string) ([]uint, error) {
	if s == nil || s.repo == nil || providerID == 0 {
		return nil, ErrAssignmentInvalid
	}
	targets, err := s.repo.ListTargets(providerID, relation)
	if err != nil {
		return nil, ErrAssignmentSyncFailed
	}
	return targets, nil
}

// LinkSubProvider elevates a base user to sub-provider of the provider.
// Relation row and role flip commit together; a user who is anything but
// a plain active user (already staff somewhere, admin) is refused with
// ErrRoleConflict.
func (s *AssignmentService) LinkSubProvider(actor authz.Actor, providerID, userID uint) error {
	if s == nil || s.repo == nil || s.userRepo == nil {
		return ErrAssignmentSyncFailed
	}
	if err := s.checkProviderScope(actor, providerID); err != nil {
		return err
	}
	if userID == 0 {
		return ErrAssignmentInvalid
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserFetchFailed
	}
	if user == nil {
		return ErrUserNotFound
	}
	if user.Role != constants.RoleUser {
		return ErrRoleConflict
	}

	return s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		exists, err := repo.Exists(providerID, constants.RelationSubProvider, userID)
		if err != nil {
			return ErrAssignmentSyncFailed
		}
		if !exists {
			if err := repo.AddTargets(providerID, constants.RelationSubProvider, []uint{userID}); err != nil {
				return ErrAssignmentSyncFailed
			}
		}

		pid := providerID
		rows, err := s.userRepo.WithTx(tx).UpdateRoleIf(userID, constants.RoleUser, constants.RoleSubProvider, &pid)
		if err != nil {
			return ErrUserUpdateFailed
		}
		if rows == 0 {
			return ErrRoleConflict
		}
		return nil
	})
}

// UnlinkSubProvider demotes a sub-provider back to a base user.
// Idempotent under retry: a missing relation row with the role already
// restored reports success.
func (s *AssignmentService) UnlinkSubProvider(actor authz.Actor, providerID, userID uint) error {
	if s == nil || s.repo == nil || s.userRepo == nil {
		return ErrAssignmentSyncFailed
	}
	if err := s.checkProviderScope(actor, providerID); err != nil {
		return err
	}
	if userID == 0 {
		return ErrAssignmentInvalid
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserFetchFailed
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.repo.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		exists, err := repo.Exists(providerID, constants.RelationSubProvider, userID)
		if err != nil {
			return ErrAssignmentSyncFailed
		}
		if !exists && user.Role == constants.RoleUser {
			// Retried unlink after a completed one.
			return nil
		}
		if exists {
			if err := repo.RemoveTargets(providerID, constants.RelationSubProvider, []uint{userID}); err != nil {
				return ErrAssignmentSyncFailed
			}
		}

		if user.Role == constants.RoleSubProvider {
			rows, err := s.userRepo.WithTx(tx).UpdateRoleIf(userID, constants.RoleSubProvider, constants.RoleUser, nil)
			if err != nil {
				return ErrUserUpdateFailed
			}
			if rows == 0 {
				return ErrRoleConflict
			}
		}
		return nil
	})
}

// checkProviderScope admins act for any provider, provider owners only
// for their own. Sub-providers never manage assignments.
func (s *AssignmentService) checkProviderScope(actor authz.Actor, providerID uint) error {
	if providerID == 0 {
		return ErrAssignmentInvalid
	}
	switch actor.Role {
	case constants.RoleAdmin:
		return nil
	case constants.RoleProvider:
		if actor.ProviderID != providerID {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// diffIDs computes the insert and delete sets for a full replacement
func diffIDs(current, wanted []uint) (toAdd, toRemove []uint) {
	currentSet := make(map[uint]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	wantedSet := make(map[uint]struct{}, len(wanted))
	for _, id := range wanted {
		wantedSet[id] = struct{}{}
	}

	for _, id := range wanted {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if _, ok := wantedSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
