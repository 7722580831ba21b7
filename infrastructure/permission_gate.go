package infrastructure

import (
	"context"
	"fmt"

	"pointdesk/config"
	"pointdesk/domain/interfaces"
)

// StaticPermissionGate resolves capabilities from the configured staff ID
// lists. Operators may approve and settle; admins hold every capability.
type StaticPermissionGate struct {
	operators map[int64]bool
	admins    map[int64]bool
}

// NewStaticPermissionGate creates a permission gate from configuration
func NewStaticPermissionGate(cfg *config.Config) *StaticPermissionGate {
	gate := &StaticPermissionGate{
		operators: make(map[int64]bool),
		admins:    make(map[int64]bool),
	}
	for _, id := range cfg.OperatorIDs {
		gate.operators[id] = true
	}
	for _, id := range cfg.AdminIDs {
		gate.admins[id] = true
	}
	return gate
}

// Authorize returns nil if the actor holds the capability
func (g *StaticPermissionGate) Authorize(ctx context.Context, actorID int64, capability interfaces.Capability) error {
	if g.admins[actorID] {
		return nil
	}

	switch capability {
	case interfaces.CapabilityApprove, interfaces.CapabilitySettle:
		if g.operators[actorID] {
			return nil
		}
	case interfaces.CapabilityAdmin:
		// admins only, handled above
	}
	return fmt.Errorf("actor %d does not hold capability %s", actorID, capability)
}
