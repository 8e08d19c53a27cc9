package authz

import (
	"testing"

	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
)

func offerOwnedBy(providerID uint, isPublic bool) *models.Offer {
	return &models.Offer{ProviderID: providerID, IsPublic: isPublic}
}

func TestDecideApprovalGate(t *testing.T) {
	providerActor := Actor{UserID: 10, Role: constants.RoleProvider, ProviderID: 7}

	decision := Decide(providerActor, ActionSubmitOffer, nil)
	if !decision.Allowed {
		t.Fatalf("provider submit should be allowed, reason=%q", decision.Reason)
	}
	if got, ok := decision.Overrides["is_public"]; !ok || got != false {
		t.Fatalf("provider submit must force is_public=false, overrides=%v", decision.Overrides)
	}

	decision = Decide(providerActor, ActionEditOffer, offerOwnedBy(7, true))
	if !decision.Allowed {
		t.Fatalf("provider edit of own offer should be allowed, reason=%q", decision.Reason)
	}
	if got, ok := decision.Overrides["is_public"]; !ok || got != false {
		t.Fatalf("provider edit must force is_public=false, overrides=%v", decision.Overrides)
	}

	decision = Decide(Actor{UserID: 1, Role: constants.RoleAdmin}, ActionSubmitOffer, nil)
	if !decision.Allowed {
		t.Fatalf("admin submit should be allowed")
	}
	if len(decision.Overrides) != 0 {
		t.Fatalf("admin submit must not force overrides, got=%v", decision.Overrides)
	}
}

func TestDecideOwnership(t *testing.T) {
	subActor := Actor{UserID: 11, Role: constants.RoleSubProvider, ProviderID: 7}

	decision := Decide(subActor, ActionEditOffer, offerOwnedBy(8, false))
	if decision.Allowed {
		t.Fatalf("cross-provider edit must be denied")
	}

	decision = Decide(subActor, ActionSettle, offerOwnedBy(8, true))
	if decision.Allowed {
		t.Fatalf("cross-provider settle must be denied")
	}

	decision = Decide(subActor, ActionSettle, offerOwnedBy(7, true))
	if !decision.Allowed {
		t.Fatalf("own-provider settle should be allowed, reason=%q", decision.Reason)
	}

	decision = Decide(Actor{UserID: 12, Role: constants.RoleProvider}, ActionSubmitOffer, nil)
	if decision.Allowed {
		t.Fatalf("provider actor without provider link must be denied")
	}
}

func TestDecideAdminPrivileges(t *testing.T) {
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}
	for _, action := range []string{ActionApproveOffer, ActionRejectOffer, ActionDeleteOffer, ActionSettle} {
		decision := Decide(admin, action, offerOwnedBy(7, true))
		if !decision.Allowed {
			t.Fatalf("admin action %s should be allowed, reason=%q", action, decision.Reason)
		}
	}

	provider := Actor{UserID: 10, Role: constants.RoleProvider, ProviderID: 7}
	for _, action := range []string{ActionApproveOffer, ActionRejectOffer} {
		decision := Decide(provider, action, offerOwnedBy(7, false))
		if decision.Allowed {
			t.Fatalf("provider must not perform %s", action)
		}
	}

	decision := Decide(provider, ActionDeleteOffer, offerOwnedBy(7, true))
	if decision.Allowed {
		t.Fatalf("provider must not delete a public offer")
	}
	decision = Decide(provider, ActionDeleteOffer, offerOwnedBy(7, false))
	if !decision.Allowed {
		t.Fatalf("provider should delete own non-public offer, reason=%q", decision.Reason)
	}
}

func TestDecideUnknownRoleAndAction(t *testing.T) {
	decision := Decide(Actor{UserID: 20, Role: constants.RoleUser}, ActionSubmitOffer, nil)
	if decision.Allowed {
		t.Fatalf("regular users must not submit offers")
	}

	decision = Decide(Actor{UserID: 1, Role: constants.RoleAdmin}, "offer.publish", nil)
	if decision.Allowed {
		t.Fatalf("unknown action must be denied")
	}
}
