package authz

import "fmt"

// RoleSeed builtin role definition
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds builtin role matrix
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "admin",
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
				{Object: "/provider/*", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role: "subprovider",
			Policies: []Policy{
				{Object: "/provider/offers", Action: "GET"},
				{Object: "/provider/offers", Action: "POST"},
				{Object: "/provider/offers/:id", Action: "GET"},
				{Object: "/provider/offers/:id", Action: "PUT"},
				{Object: "/provider/offers/:id", Action: "DELETE"},
				{Object: "/provider/redemptions", Action: "GET"},
				{Object: "/provider/redemptions/:id", Action: "GET"},
				{Object: "/provider/redemptions/:id/settle", Action: "POST"},
				{Object: "/provider/notifications", Action: "GET"},
				{Object: "/provider/notifications/:id/read", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "provider",
			Inherits: []string{"subprovider"},
			Policies: []Policy{
				{Object: "/provider/sub-providers", Action: "GET"},
				{Object: "/provider/sub-providers", Action: "POST"},
				{Object: "/provider/sub-providers/:id", Action: "DELETE"},
				{Object: "/provider/assignments", Action: "GET"},
				{Object: "/provider/assignments", Action: "PUT"},
			},
			Immutable: true,
		},
		{
			Role: "user",
			Policies: []Policy{
				{Object: "/user/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles seeds the builtin roles and their default policies
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
