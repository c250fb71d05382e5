package orders

import (
	"github.com/mercato-app/mercato-backend/pkg/enums"
)

// transitionRule describes what one role may do to an order's status. Sources
// are expressed as a block list when Blocked is set, otherwise as an allow
// list; targets are always an allow list.
type transitionRule struct {
	blockedSources []enums.OrderStatus
	allowedSources []enums.OrderStatus
	targets        []enums.OrderStatus
}

// transitionTable encodes the status machine per role. Users can only cancel
// their own pending orders. Vendors drive fulfilment but lose control once an
// order is PROCESSING or IN_TRANSIT; from there only admins move it forward.
// Admins cannot touch orders that never reached fulfilment (PENDING) or that
// ended in a terminal customer-facing state.
var transitionTable = map[enums.Role]transitionRule{
	enums.RoleUser: {
		allowedSources: []enums.OrderStatus{enums.OrderStatusPending},
		targets:        []enums.OrderStatus{enums.OrderStatusCancelled},
	},
	enums.RoleVendor: {
		blockedSources: []enums.OrderStatus{
			enums.OrderStatusProcessing,
			enums.OrderStatusInTransit,
		},
		targets: []enums.OrderStatus{
			enums.OrderStatusRejected,
			enums.OrderStatusApproved,
			enums.OrderStatusProcessing,
			enums.OrderStatusInTransit,
			enums.OrderStatusDelivered,
			enums.OrderStatusReturned,
		},
	},
	enums.RoleAdmin: {
		blockedSources: []enums.OrderStatus{
			enums.OrderStatusPending,
			enums.OrderStatusRejected,
			enums.OrderStatusCancelled,
			enums.OrderStatusReturned,
		},
		targets: []enums.OrderStatus{
			enums.OrderStatusProcessing,
			enums.OrderStatusInTransit,
			enums.OrderStatusDelivered,
		},
	},
}

// ruleFor resolves the transition rule for a role. Super admins share the
// admin rule.
func ruleFor(role enums.Role) (transitionRule, bool) {
	if role == enums.RoleSuperAdmin {
		role = enums.RoleAdmin
	}
	rule, ok := transitionTable[role]
	return rule, ok
}

// TargetAllowed reports whether the role may ever set the given status.
func TargetAllowed(role enums.Role, target enums.OrderStatus) bool {
	rule, ok := ruleFor(role)
	if !ok {
		return false
	}
	for _, candidate := range rule.targets {
		if candidate == target {
			return true
		}
	}
	return false
}

// SourceAllowed reports whether the role may move an order out of the given
// status.
func SourceAllowed(role enums.Role, source enums.OrderStatus) bool {
	rule, ok := ruleFor(role)
	if !ok {
		return false
	}
	if len(rule.allowedSources) > 0 {
		for _, candidate := range rule.allowedSources {
			if candidate == source {
				return true
			}
		}
		return false
	}
	for _, candidate := range rule.blockedSources {
		if candidate == source {
			return false
		}
	}
	return true
}

// legalSources enumerates every status the role may transition away from.
// The repository folds this into the conditional UPDATE predicate.
func legalSources(role enums.Role) []enums.OrderStatus {
	rule, ok := ruleFor(role)
	if !ok {
		return nil
	}
	if len(rule.allowedSources) > 0 {
		return rule.allowedSources
	}
	var sources []enums.OrderStatus
	for _, status := range enums.OrderStatuses() {
		blocked := false
		for _, candidate := range rule.blockedSources {
			if candidate == status {
				blocked = true
				break
			}
		}
		if !blocked {
			sources = append(sources, status)
		}
	}
	return sources
}
