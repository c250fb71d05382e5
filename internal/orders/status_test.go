package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mercato-app/mercato-backend/pkg/enums"
)

func TestTargetAllowed(t *testing.T) {
	cases := []struct {
		name   string
		role   enums.Role
		target enums.OrderStatus
		want   bool
	}{
		{"user may cancel", enums.RoleUser, enums.OrderStatusCancelled, true},
		{"user may not approve", enums.RoleUser, enums.OrderStatusApproved, false},
		{"user may not deliver", enums.RoleUser, enums.OrderStatusDelivered, false},
		{"vendor may approve", enums.RoleVendor, enums.OrderStatusApproved, true},
		{"vendor may reject", enums.RoleVendor, enums.OrderStatusRejected, true},
		{"vendor may deliver", enums.RoleVendor, enums.OrderStatusDelivered, true},
		{"vendor may mark returned", enums.RoleVendor, enums.OrderStatusReturned, true},
		{"vendor may not cancel", enums.RoleVendor, enums.OrderStatusCancelled, false},
		{"vendor may not reset to pending", enums.RoleVendor, enums.OrderStatusPending, false},
		{"admin may process", enums.RoleAdmin, enums.OrderStatusProcessing, true},
		{"admin may ship", enums.RoleAdmin, enums.OrderStatusInTransit, true},
		{"admin may deliver", enums.RoleAdmin, enums.OrderStatusDelivered, true},
		{"admin may not cancel", enums.RoleAdmin, enums.OrderStatusCancelled, false},
		{"admin may not reject", enums.RoleAdmin, enums.OrderStatusRejected, false},
		{"super admin shares admin targets", enums.RoleSuperAdmin, enums.OrderStatusProcessing, true},
		{"super admin may not cancel", enums.RoleSuperAdmin, enums.OrderStatusCancelled, false},
		{"guest has no targets", enums.RoleUnspecified, enums.OrderStatusCancelled, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TargetAllowed(tc.role, tc.target))
		})
	}
}

func TestSourceAllowed(t *testing.T) {
	cases := []struct {
		name   string
		role   enums.Role
		source enums.OrderStatus
		want   bool
	}{
		{"user may leave pending", enums.RoleUser, enums.OrderStatusPending, true},
		{"user may not leave approved", enums.RoleUser, enums.OrderStatusApproved, false},
		{"user may not leave cancelled", enums.RoleUser, enums.OrderStatusCancelled, false},
		{"vendor may leave pending", enums.RoleVendor, enums.OrderStatusPending, true},
		{"vendor may leave approved", enums.RoleVendor, enums.OrderStatusApproved, true},
		{"vendor may leave delivered", enums.RoleVendor, enums.OrderStatusDelivered, true},
		{"vendor blocked once processing", enums.RoleVendor, enums.OrderStatusProcessing, false},
		{"vendor blocked once in transit", enums.RoleVendor, enums.OrderStatusInTransit, false},
		{"admin may leave approved", enums.RoleAdmin, enums.OrderStatusApproved, true},
		{"admin may leave processing", enums.RoleAdmin, enums.OrderStatusProcessing, true},
		{"admin may not leave pending", enums.RoleAdmin, enums.OrderStatusPending, false},
		{"admin may not revive rejected", enums.RoleAdmin, enums.OrderStatusRejected, false},
		{"admin may not revive cancelled", enums.RoleAdmin, enums.OrderStatusCancelled, false},
		{"admin may not revive returned", enums.RoleAdmin, enums.OrderStatusReturned, false},
		{"super admin shares admin sources", enums.RoleSuperAdmin, enums.OrderStatusApproved, true},
		{"guest has no sources", enums.RoleUnspecified, enums.OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SourceAllowed(tc.role, tc.source))
		})
	}
}

func TestLegalSourcesCoverEveryRole(t *testing.T) {
	assert.ElementsMatch(t,
		[]enums.OrderStatus{enums.OrderStatusPending},
		legalSources(enums.RoleUser))

	vendorSources := legalSources(enums.RoleVendor)
	assert.NotContains(t, vendorSources, enums.OrderStatusProcessing)
	assert.NotContains(t, vendorSources, enums.OrderStatusInTransit)
	assert.Len(t, vendorSources, 6)

	adminSources := legalSources(enums.RoleAdmin)
	assert.ElementsMatch(t,
		[]enums.OrderStatus{
			enums.OrderStatusApproved,
			enums.OrderStatusProcessing,
			enums.OrderStatusInTransit,
			enums.OrderStatusDelivered,
		},
		adminSources)
	assert.ElementsMatch(t, adminSources, legalSources(enums.RoleSuperAdmin))

	assert.Empty(t, legalSources(enums.RoleUnspecified))
}
