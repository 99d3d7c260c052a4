package permission

import (
	"fmt"

	"github.com/creatorhub/creatorhub/internal/shared/constants"
)

const (
	ResourceFeatureCosts = "feature_costs"
	ResourcePolicy       = "policy"

	ActionRead   = "read"
	ActionUpdate = "update"
)

// InitPermissions seeds the admin policies. Existing rows are left alone.
func (e *Enforcer) InitPermissions() error {
	policies := [][]string{
		{constants.RoleAdmin, ResourceFeatureCosts, ActionRead},
		{constants.RoleAdmin, ResourceFeatureCosts, ActionUpdate},
		{constants.RoleAdmin, ResourcePolicy, ActionRead},
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, policy := range policies {
		if _, err := e.enforcer.AddPolicy(policy); err != nil {
			e.logger.Errorw("failed to add permission policy",
				"error", err,
				"role", policy[0],
				"resource", policy[1],
				"action", policy[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	e.logger.Infow("permissions initialized", "policies", len(policies))
	return nil
}
