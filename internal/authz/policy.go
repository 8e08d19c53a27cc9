package authz

import (
	"github.com/dealat-next/internal/constants"
	"github.com/dealat-next/internal/models"
)

// Offer actions evaluated by Decide
const (
	ActionSubmitOffer  = "offer.submit"
	ActionEditOffer    = "offer.edit"
	ActionDeleteOffer  = "offer.delete"
	ActionApproveOffer = "offer.approve"
	ActionRejectOffer  = "offer.reject"
	ActionSettle       = "redemption.settle"
)

// Actor authenticated caller identity for domain decisions
type Actor struct {
	UserID     uint
	Role       string
	ProviderID uint
}

// Decision outcome of a domain authorization check.
// Overrides carries field values the caller must apply regardless of
// the request payload, e.g. forcing is_public=false for provider-side
// submissions so nothing goes live without admin approval.
type Decision struct {
	Allowed   bool
	Overrides map[string]interface{}
	Reason    string
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

func allow() Decision {
	return Decision{Allowed: true}
}

func allowWithOverride(field string, value interface{}) Decision {
	return Decision{Allowed: true, Overrides: map[string]interface{}{field: value}}
}

// Decide evaluates whether an actor may perform an offer-scoped action.
// Evaluated on every mutating service call; route RBAC only narrows which
// endpoints a role can reach, this is the source of truth for ownership
// and the approval gate.
func Decide(actor Actor, action string, target *models.Offer) Decision {
	switch actor.Role {
	case constants.RoleAdmin:
		return decideAdmin(action)
	case constants.RoleProvider, constants.RoleSubProvider:
		return decideProviderStaff(actor, action, target)
	default:
		return deny("role has no offer privileges")
	}
}

func decideAdmin(action string) Decision {
	switch action {
	case ActionSubmitOffer, ActionEditOffer:
		// Admin chooses visibility explicitly, no forced override.
		return allow()
	case ActionDeleteOffer, ActionApproveOffer, ActionRejectOffer, ActionSettle:
		return allow()
	default:
		return deny("unknown action")
	}
}

func decideProviderStaff(actor Actor, action string, target *models.Offer) Decision {
	if actor.ProviderID == 0 {
		return deny("actor is not linked to a provider")
	}
	if target != nil && target.ProviderID != actor.ProviderID {
		return deny("offer belongs to another provider")
	}

	switch action {
	case ActionSubmitOffer:
		return allowWithOverride("is_public", false)
	case ActionEditOffer:
		if target == nil {
			return deny("offer is required")
		}
		// Provider edits re-enter the approval gate even on live offers.
		return allowWithOverride("is_public", false)
	case ActionDeleteOffer:
		if target == nil {
			return deny("offer is required")
		}
		if target.IsPublic {
			return deny("public offers are removed by admins only")
		}
		return allow()
	case ActionSettle:
		if target == nil {
			return deny("offer is required")
		}
		return allow()
	case ActionApproveOffer, ActionRejectOffer:
		return deny("approval is an admin action")
	default:
		return deny("unknown action")
	}
}
