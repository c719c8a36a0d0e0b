package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/supplykz/supplier-console/models"
)

func TestResolve_RoleMatrix(t *testing.T) {
	tests := []struct {
		capability Capability
		owner      bool
		manager    bool
		sales      bool
	}{
		{AccessLinkRequests, true, true, true},
		{AccessOrders, true, true, true},
		{AccessComplaints, true, true, true},
		{AccessChat, true, true, true},
		{AccessSettings, true, true, false},
		{ApproveLinkRequests, true, true, true},
		{RejectLinkRequests, true, true, true},
		{BlockLinks, true, true, false},
		{ViewOrders, true, true, true},
		{UpdateOrderStatus, true, true, false},
		{AcceptOrders, true, true, false},
		{RejectOrders, true, true, false},
		{ViewComplaints, true, true, true},
		{ResolveComplaints, true, true, false},
		{EscalateComplaints, true, true, false},
		{ViewChat, true, true, true},
		{SendMessages, true, true, true},
		{ManageProducts, true, true, false},
		{ManageTeam, true, false, false},
		{ManageSuppliers, true, false, false},
	}

	owner := Resolve(models.RoleSupplierOwner)
	manager := Resolve(models.RoleSupplierManager)
	sales := Resolve(models.RoleSupplierSales)

	for _, tt := range tests {
		t.Run(string(tt.capability), func(t *testing.T) {
			assert.Equal(t, tt.owner, owner.Has(tt.capability), "owner")
			assert.Equal(t, tt.manager, manager.Has(tt.capability), "manager")
			assert.Equal(t, tt.sales, sales.Has(tt.capability), "sales")
		})
	}
}

func TestResolve_FailsClosed(t *testing.T) {
	for _, role := range []models.Role{models.RoleConsumer, models.RoleUnknown, models.Role("admin"), models.Role("")} {
		t.Run(string(role), func(t *testing.T) {
			set := Resolve(role)
			assert.Equal(t, CapabilitySet{}, set)
			assert.Empty(t, set.Granted())
			assert.False(t, set.CanEnterConsole())
		})
	}
}

func TestResolveString_FailsClosedOnNearMisses(t *testing.T) {
	for _, raw := range []string{"SUPPLIER_OWNER", " supplier_manager ", "Supplier_Sales", "supplier_owner\n", "unknown", ""} {
		t.Run(raw, func(t *testing.T) {
			set := ResolveString(raw)
			assert.Equal(t, CapabilitySet{}, set)
			assert.False(t, set.Has(AccessOrders))
			assert.False(t, set.CanEnterConsole())
		})
	}
}

func TestResolve_IsDeterministic(t *testing.T) {
	assert.Equal(t, Resolve(models.RoleSupplierManager), Resolve(models.RoleSupplierManager))
	assert.Equal(t, ResolveString("supplier_owner"), Resolve(models.RoleSupplierOwner))
	assert.Equal(t, CapabilitySet{}, ResolveString("superuser"))
}

func TestCapabilitySet_NamedFlags(t *testing.T) {
	owner := Resolve(models.RoleSupplierOwner)
	assert.True(t, owner.CanManageTeam)
	assert.True(t, owner.CanManageSuppliers)
	assert.Len(t, owner.Granted(), len(AllCapabilities))

	sales := Resolve(models.RoleSupplierSales)
	assert.True(t, sales.CanAccessChat)
	assert.False(t, sales.CanAccessSettings)
	assert.False(t, sales.CanBlockLinks)
}

func TestCapabilitySet_HasAnyHasAll(t *testing.T) {
	sales := Resolve(models.RoleSupplierSales)

	assert.True(t, sales.HasAny(ManageTeam, SendMessages))
	assert.False(t, sales.HasAny(ManageTeam, ManageProducts))
	assert.True(t, sales.HasAll(ViewOrders, ViewChat))
	assert.False(t, sales.HasAll(ViewOrders, AcceptOrders))
	assert.True(t, sales.HasAll())
	assert.False(t, sales.HasAny())
	assert.False(t, sales.Has(Capability("unknown:verb")))
}

func TestForUser(t *testing.T) {
	assert.Equal(t, CapabilitySet{}, ForUser(nil))
	assert.True(t, ForUser(&models.User{Role: models.RoleSupplierManager}).CanAcceptOrders)
}

func TestRoleHelpers(t *testing.T) {
	assert.Equal(t, "Sales Representative", RoleDisplayName(models.RoleSupplierSales))
	assert.True(t, IsSupplierStaff(models.RoleSupplierOwner))
	assert.False(t, IsSupplierStaff(models.RoleConsumer))
}
