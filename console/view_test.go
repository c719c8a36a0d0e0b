package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
	"github.com/supplykz/supplier-console/session"
)

func TestResolveScreen(t *testing.T) {
	staff := &models.User{ID: "1", Role: models.RoleSupplierSales}
	consumer := &models.User{ID: "2", Role: models.RoleConsumer}

	tests := []struct {
		name  string
		state session.State
		user  *models.User
		want  Screen
	}{
		{"uninitialized", session.StateUninitialized, nil, ScreenLoading},
		{"restoring", session.StateRestoring, staff, ScreenLoading},
		{"anonymous", session.StateAnonymous, nil, ScreenLogin},
		{"staff", session.StateAuthenticated, staff, ScreenConsole},
		{"consumer", session.StateAuthenticated, consumer, ScreenStaffOnly},
		{"unknown role", session.StateAuthenticated, &models.User{Role: models.RoleUnknown}, ScreenStaffOnly},
		{"authenticated without user", session.StateAuthenticated, nil, ScreenLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveScreen(tt.state, tt.user))
		})
	}
	assert.Equal(t, "This application is for supplier staff only.", StaffOnlyMessage)
}

func pageNames(infos []PageInfo) []Page {
	out := make([]Page, 0, len(infos))
	for _, info := range infos {
		out = append(out, info.Page)
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		role models.Role
		want []Page
	}{
		{models.RoleSupplierOwner, []Page{PageDashboard, PageLinkRequests, PageOrders, PageComplaints, PageChat, PageCatalog, PageSettings}},
		{models.RoleSupplierManager, []Page{PageDashboard, PageLinkRequests, PageOrders, PageComplaints, PageChat, PageCatalog, PageSettings}},
		{models.RoleSupplierSales, []Page{PageDashboard, PageLinkRequests, PageOrders, PageComplaints, PageChat}},
		{models.RoleConsumer, []Page{}},
		{models.RoleUnknown, []Page{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.want, pageNames(Navigation(permissions.Resolve(tt.role))))
		})
	}

	assert.False(t, CanOpen(permissions.Resolve(models.RoleSupplierOwner), Page("reports")))
	assert.Len(t, Pages(), 7)
}

func TestRouter(t *testing.T) {
	ctx := context.Background()
	role := models.RoleSupplierSales
	router := NewRouter(func() permissions.CapabilitySet { return permissions.Resolve(role) })

	var seen []Destination
	unsubscribe := router.OnNavigate(func(d Destination) { seen = append(seen, d) })

	assert.Equal(t, PageDashboard, router.Current().Page)

	require.NoError(t, router.Navigate(ctx, Destination{Page: PageChat, ConsumerID: 50}))
	assert.Equal(t, Destination{Page: PageChat, ConsumerID: 50}, router.Current())

	err := router.Navigate(ctx, Destination{Page: PageSettings})
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrInsufficientPermissions))
	assert.Equal(t, PageChat, router.Current().Page)

	err = router.Navigate(ctx, Destination{Page: "reports"})
	assert.True(t, services.IsNotFoundError(err))

	role = models.RoleSupplierOwner
	require.NoError(t, router.Navigate(ctx, Destination{Page: PageSettings}))

	unsubscribe()
	require.NoError(t, router.Navigate(ctx, Destination{Page: PageOrders}))
	assert.Len(t, seen, 2)

	router.Reset()
	assert.Equal(t, PageDashboard, router.Current().Page)
}

func actions(controls []Control) []Action {
	out := make([]Action, 0, len(controls))
	for _, c := range controls {
		out = append(out, c.Action)
	}
	return out
}

func TestLinkControls(t *testing.T) {
	owner := permissions.Resolve(models.RoleSupplierOwner)
	sales := permissions.Resolve(models.RoleSupplierSales)
	consumer := permissions.Resolve(models.RoleConsumer)

	tests := []struct {
		name   string
		status models.LinkStatus
		caps   permissions.CapabilitySet
		want   []Action
	}{
		{"pending owner", models.LinkStatusPending, owner, []Action{ActionApprove, ActionReject}},
		{"pending sales", models.LinkStatusPending, sales, []Action{ActionApprove, ActionReject}},
		{"accepted owner", models.LinkStatusAccepted, owner, []Action{ActionUnlink, ActionBlock}},
		{"accepted sales", models.LinkStatusAccepted, sales, []Action{}},
		{"blocked owner", models.LinkStatusBlocked, owner, []Action{ActionUnblock}},
		{"blocked sales", models.LinkStatusBlocked, sales, []Action{}},
		{"denied sales", models.LinkStatusDenied, sales, []Action{ActionApprove}},
		{"unlinked owner", models.LinkStatusUnlinked, owner, []Action{ActionApprove}},
		{"pending consumer", models.LinkStatusPending, consumer, []Action{}},
		{"unknown status", models.LinkStatus("archived"), owner, []Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, actions(LinkControls(tt.status, tt.caps)))
		})
	}

	reject, ok := FindControl(LinkControls(models.LinkStatusPending, owner), ActionReject)
	require.True(t, ok)
	assert.True(t, reject.Destructive())
	approve, _ := FindControl(LinkControls(models.LinkStatusPending, owner), ActionApprove)
	assert.False(t, approve.Destructive())
}

func TestOrderControls(t *testing.T) {
	manager := permissions.Resolve(models.RoleSupplierManager)
	sales := permissions.Resolve(models.RoleSupplierSales)

	tests := []struct {
		name   string
		status models.OrderStatus
		caps   permissions.CapabilitySet
		want   []Action
	}{
		{"pending manager", models.OrderStatusPending, manager, []Action{ActionAccept, ActionReject, ActionOpenChat}},
		{"accepted manager", models.OrderStatusAccepted, manager, []Action{ActionStart, ActionOpenChat}},
		{"in progress manager", models.OrderStatusInProgress, manager, []Action{ActionComplete, ActionOpenChat}},
		{"completed manager", models.OrderStatusCompleted, manager, []Action{ActionOpenChat}},
		{"rejected manager", models.OrderStatusRejected, manager, []Action{ActionOpenChat}},
		{"pending sales", models.OrderStatusPending, sales, []Action{ActionOpenChat}},
		{"pending nobody", models.OrderStatusPending, permissions.CapabilitySet{}, []Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, actions(OrderControls(tt.status, tt.caps)))
		})
	}
}

func TestComplaintControls(t *testing.T) {
	owner := permissions.Resolve(models.RoleSupplierOwner)
	sales := permissions.Resolve(models.RoleSupplierSales)

	tests := []struct {
		name   string
		status models.ComplaintStatus
		caps   permissions.CapabilitySet
		want   []Action
	}{
		{"open owner", models.ComplaintStatusOpen, owner, []Action{ActionResolve, ActionEscalate}},
		{"open sales", models.ComplaintStatusOpen, sales, []Action{}},
		{"escalated owner", models.ComplaintStatusEscalated, owner, []Action{ActionResolve, ActionOpenChat}},
		{"escalated sales", models.ComplaintStatusEscalated, sales, []Action{ActionOpenChat}},
		{"resolved owner", models.ComplaintStatusResolved, owner, []Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, actions(ComplaintControls(tt.status, tt.caps)))
		})
	}
}
