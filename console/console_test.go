package console

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/notify"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
	"github.com/supplykz/supplier-console/utils"
)

type fixture struct {
	console *Console
	data    *mockData
	confirm *recordingConfirmer
	toasts  *notify.Recorder
	router  *Router
}

func newFixture(sess *fakeSession, confirmAnswer bool) *fixture {
	data := &mockData{}
	confirm := &recordingConfirmer{answer: confirmAnswer}
	bus := notify.NewBus(zap.NewNop())
	rec := &notify.Recorder{}
	bus.Subscribe(rec.Handle)
	router := NewRouter(sess.Capabilities)

	return &fixture{
		console: New(data, sess, confirm, bus, router, zap.NewNop()),
		data:    data,
		confirm: confirm,
		toasts:  rec,
		router:  router,
	}
}

func TestConsole_DeniedActionsNeverReachTheBackend(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierSales), true)

	calls := map[string]func() error{
		"block":             func() error { _, err := f.console.BlockLink(ctx, 2); return err },
		"unblock":           func() error { _, err := f.console.UnblockLink(ctx, 3); return err },
		"unlink":            func() error { _, err := f.console.UnlinkConsumer(ctx, 2); return err },
		"accept order":      func() error { _, err := f.console.AcceptOrder(ctx, 1); return err },
		"reject order":      func() error { _, err := f.console.RejectOrder(ctx, 1); return err },
		"start order":       func() error { _, err := f.console.StartOrder(ctx, 2); return err },
		"complete order":    func() error { _, err := f.console.CompleteOrder(ctx, 3); return err },
		"resolve complaint": func() error { _, err := f.console.ResolveComplaint(ctx, 1, "refund", false); return err },
		"escalate":          func() error { _, err := f.console.EscalateComplaint(ctx, 1); return err },
		"list products":     func() error { _, err := f.console.Products(ctx, models.PageRequest{}, nil); return err },
		"delete product":    func() error { return f.console.DeleteProduct(ctx, 1) },
		"remove staff":      func() error { return f.console.RemoveStaff(ctx, 2) },
		"delete supplier":   func() error { return f.console.DeleteSupplierAccount(ctx) },
		"list team":         func() error { _, err := f.console.Team(ctx); return err },
		"settings":          func() error { _, err := f.console.SupplierProfile(ctx); return err },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, services.ErrInsufficientPermissions))
			assert.True(t, services.IsForbiddenError(err))
		})
	}

	assert.Empty(t, f.data.Calls)
	assert.Empty(t, f.confirm.prompts)
	assert.Empty(t, f.toasts.Toasts())
}

func TestConsole_SignedOut(t *testing.T) {
	f := newFixture(&fakeSession{}, true)

	_, err := f.console.Orders(context.Background(), models.PageRequest{}, "")
	assert.ErrorIs(t, err, services.ErrNotAuthenticated)

	err = f.console.ChangePassword(context.Background(), models.PasswordChange{CurrentPassword: "a", NewPassword: "Secret123"})
	assert.ErrorIs(t, err, services.ErrNotAuthenticated)
	assert.Empty(t, f.data.Calls)
}

func TestConsole_DeclinedConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierOwner), false)

	_, err := f.console.BlockLink(ctx, 2)
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = f.console.RejectOrder(ctx, 1)
	assert.ErrorIs(t, err, ErrCancelled)

	err = f.console.DeleteSupplierAccount(ctx)
	assert.ErrorIs(t, err, ErrCancelled)

	assert.Equal(t, []string{confirmBlockLink, confirmRejectOrder, confirmDeleteAccount}, f.confirm.prompts)
	f.data.AssertNotCalled(t, "BlockLink", mock.Anything, mock.Anything)
	f.data.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	f.data.AssertNotCalled(t, "DeleteSupplierAccount", mock.Anything)
	assert.Empty(t, f.toasts.Toasts())
}

func TestConsole_LinkActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierManager), true)

	f.data.On("UpdateLinkStatus", ctx, int64(1), models.LinkStatusAccepted).
		Return(&models.Link{ID: 1, Status: models.LinkStatusAccepted}, nil).Once()
	f.data.On("UpdateLinkStatus", ctx, int64(4), models.LinkStatusDenied).
		Return(&models.Link{ID: 4, Status: models.LinkStatusDenied}, nil).Once()
	f.data.On("BlockLink", ctx, int64(2)).Return(&models.Link{ID: 2, Status: models.LinkStatusBlocked}, nil).Once()
	f.data.On("UnblockLink", ctx, int64(3)).Return(&models.Link{ID: 3, Status: models.LinkStatusAccepted}, nil).Once()
	f.data.On("UnlinkConsumer", ctx, int64(2)).Return(&models.Link{ID: 2, Status: models.LinkStatusPending}, nil).Once()

	link, err := f.console.ApproveLink(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.LinkStatusAccepted, link.Status)

	_, err = f.console.RejectLink(ctx, 4)
	require.NoError(t, err)
	_, err = f.console.BlockLink(ctx, 2)
	require.NoError(t, err)
	_, err = f.console.UnblockLink(ctx, 3)
	require.NoError(t, err)
	_, err = f.console.UnlinkConsumer(ctx, 2)
	require.NoError(t, err)

	f.data.AssertExpectations(t)
	assert.Equal(t, []string{confirmRejectLink, confirmBlockLink, confirmUnblockLink, confirmUnlink}, f.confirm.prompts)
	assert.Equal(t, []string{
		"Link request approved successfully",
		"Link request rejected successfully",
		"Consumer blocked successfully",
		"Consumer unblocked successfully",
		"Consumer unlinked successfully",
	}, f.toasts.Messages())
}

func TestConsole_SalesHandlesLinkRequests(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierSales), true)
	f.data.On("UpdateLinkStatus", ctx, int64(1), models.LinkStatusAccepted).
		Return(&models.Link{ID: 1, Status: models.LinkStatusAccepted}, nil).Once()

	_, err := f.console.ApproveLink(ctx, 1)
	require.NoError(t, err)
	f.data.AssertExpectations(t)
}

func TestConsole_BackendErrorsPassThroughWithoutToast(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierOwner), true)
	backendErr := errors.New("update order 1 status: 422 Cannot change order status")
	f.data.On("UpdateOrderStatus", ctx, int64(1), models.OrderStatusCompleted).Return(nil, backendErr).Once()

	_, err := f.console.CompleteOrder(ctx, 1)
	assert.ErrorIs(t, err, backendErr)
	assert.Empty(t, f.toasts.Toasts())
}

func TestConsole_OrderActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierOwner), true)

	for _, status := range []models.OrderStatus{
		models.OrderStatusAccepted, models.OrderStatusRejected, models.OrderStatusInProgress, models.OrderStatusCompleted,
	} {
		f.data.On("UpdateOrderStatus", ctx, int64(7), status).Return(&models.Order{ID: 7, Status: status}, nil).Once()
	}

	order, err := f.console.AcceptOrder(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusAccepted, order.Status)
	_, err = f.console.RejectOrder(ctx, 7)
	require.NoError(t, err)
	_, err = f.console.StartOrder(ctx, 7)
	require.NoError(t, err)
	_, err = f.console.CompleteOrder(ctx, 7)
	require.NoError(t, err)

	f.data.AssertExpectations(t)
	assert.Equal(t, []string{confirmRejectOrder}, f.confirm.prompts)
	assert.Len(t, f.toasts.Toasts(), 4)
}

func TestConsole_ComplaintActions(t *testing.T) {
	ctx := context.Background()

	t.Run("resolution is required", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierOwner), true)

		_, err := f.console.ResolveComplaint(ctx, 1, "   ", false)
		assert.ErrorIs(t, err, services.ErrResolutionRequired)
		assert.Empty(t, f.data.Calls)
	})

	t.Run("resolve open complaint without confirmation", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierOwner), true)
		resolution := "Refunded"
		f.data.On("UpdateComplaintStatus", ctx, int64(1), models.ComplaintStatusResolved, &resolution).
			Return(&models.Complaint{ID: 1, Status: models.ComplaintStatusResolved}, nil).Once()

		_, err := f.console.ResolveComplaint(ctx, 1, "  Refunded ", false)
		require.NoError(t, err)
		assert.Empty(t, f.confirm.prompts)
		assert.Equal(t, []string{"Complaint resolved successfully"}, f.toasts.Messages())
	})

	t.Run("resolving an escalated complaint asks first", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierManager), false)

		_, err := f.console.ResolveComplaint(ctx, 2, "Replaced the goods", true)
		assert.ErrorIs(t, err, ErrCancelled)
		assert.Equal(t, []string{confirmResolveEscalate}, f.confirm.prompts)
		assert.Empty(t, f.data.Calls)
	})

	t.Run("escalate", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierManager), true)
		f.data.On("UpdateComplaintStatus", ctx, int64(1), models.ComplaintStatusEscalated, (*string)(nil)).
			Return(&models.Complaint{ID: 1, Status: models.ComplaintStatusEscalated}, nil).Once()

		complaint, err := f.console.EscalateComplaint(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, models.ComplaintStatusEscalated, complaint.Status)
		assert.Equal(t, []string{confirmEscalate}, f.confirm.prompts)
	})
}

func TestConsole_Chat(t *testing.T) {
	ctx := context.Background()

	t.Run("empty message", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)

		_, err := f.console.SendMessage(ctx, 1, " \n ")
		assert.ErrorIs(t, err, services.ErrEmptyMessage)
		assert.Empty(t, f.data.Calls)
	})

	t.Run("send trims the message", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)
		f.data.On("SendMessage", ctx, int64(1), models.NewChatMessage{Text: "Hello"}).
			Return(&models.ChatMessage{ID: 9, Text: "Hello"}, nil).Once()

		msg, err := f.console.SendMessage(ctx, 1, " Hello ")
		require.NoError(t, err)
		assert.Equal(t, int64(9), msg.ID)
	})

	t.Run("open chat navigates", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)

		require.NoError(t, f.console.OpenChat(ctx, 50))
		assert.Equal(t, Destination{Page: PageChat, ConsumerID: 50}, f.router.Current())
	})

	t.Run("open chat without consumer", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)

		err := f.console.OpenChat(ctx, 0)
		assert.True(t, services.IsValidationError(err))
		assert.Equal(t, PageDashboard, f.router.Current().Page)
	})

	t.Run("consumer cannot open chat", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleConsumer), true)

		err := f.console.OpenChat(ctx, 50)
		assert.ErrorIs(t, err, services.ErrInsufficientPermissions)
	})
}

func TestConsole_Catalog(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid product is rejected locally", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierManager), true)

		_, err := f.console.CreateProduct(ctx, models.ProductInput{Name: "Rice", Price: 0, Currency: "KZT"})
		require.Error(t, err)
		assert.True(t, utils.IsValidationError(err))
		assert.Contains(t, utils.GetValidationFields(err), "price")
		assert.Empty(t, f.data.Calls)
	})

	t.Run("create and delete", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierManager), true)
		input := models.ProductInput{Name: "Rice", Price: 4200, Currency: "KZT", StockQty: 10}
		f.data.On("CreateProduct", ctx, input).Return(&models.Product{ID: 5, Name: "Rice"}, nil).Once()
		f.data.On("DeleteProduct", ctx, int64(5)).Return(nil).Once()

		product, err := f.console.CreateProduct(ctx, input)
		require.NoError(t, err)
		require.NoError(t, f.console.DeleteProduct(ctx, product.ID))

		assert.Equal(t, []string{confirmDeleteProduct}, f.confirm.prompts)
		assert.Equal(t, []string{"Product created successfully", "Product deleted successfully"}, f.toasts.Messages())
	})

	t.Run("toggle flips activity", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierOwner), true)
		product := models.Product{ID: 2, Name: "Oil", Price: "900.00", Currency: "KZT", StockQty: 3, IsActive: false}
		f.data.On("UpdateProduct", ctx, int64(2), mock.MatchedBy(func(in models.ProductInput) bool {
			return in.IsActive != nil && *in.IsActive && in.Price == 900 && in.Name == "Oil"
		})).Return(&models.Product{ID: 2, IsActive: true}, nil).Once()

		updated, err := f.console.ToggleProduct(ctx, product)
		require.NoError(t, err)
		assert.True(t, updated.IsActive)
		assert.Equal(t, []string{"Product activated successfully"}, f.toasts.Messages())
	})

	t.Run("sales cannot see the catalog", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)

		_, err := f.console.Products(ctx, models.PageRequest{}, nil)
		assert.ErrorIs(t, err, services.ErrInsufficientPermissions)
	})
}

func TestConsole_Team(t *testing.T) {
	ctx := context.Background()

	t.Run("owner manages staff", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierOwner), true)
		f.data.On("Staff", ctx).Return([]models.StaffMember{{ID: 2}, {ID: 3}}, nil).Once()
		f.data.On("RemoveStaff", ctx, int64(3)).Return(nil).Once()
		f.data.On("DeactivateStaff", ctx, int64(2)).Return(nil).Once()

		staff, err := f.console.Team(ctx)
		require.NoError(t, err)
		assert.Len(t, staff, 2)
		require.NoError(t, f.console.RemoveStaff(ctx, 3))
		require.NoError(t, f.console.DeactivateStaff(ctx, 2))
		assert.Equal(t, []string{confirmRemoveStaff, confirmDeactivateStaff}, f.confirm.prompts)
	})

	t.Run("manager cannot manage staff", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierManager), true)

		err := f.console.DeactivateStaff(ctx, 3)
		assert.ErrorIs(t, err, services.ErrInsufficientPermissions)
		assert.Empty(t, f.data.Calls)
	})

	t.Run("adding staff is unsupported", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierOwner), true)
		f.data.On("AddStaff", ctx, "new@astanafoods.kz").Return(services.ErrUnsupported).Once()

		err := f.console.AddStaff(ctx, "new@astanafoods.kz")
		assert.Equal(t, services.ErrorTypeUnsupported, services.GetErrorType(err))

		err = f.console.AddStaff(ctx, "not-an-email")
		assert.True(t, utils.IsValidationError(err))
		f.data.AssertNumberOfCalls(t, "AddStaff", 1)
	})
}

func TestConsole_Settings(t *testing.T) {
	ctx := context.Background()

	t.Run("manager reads but cannot change the supplier account", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierManager), true)
		f.data.On("SupplierProfile", ctx).Return(&models.SupplierProfile{CompanyName: "Astana Foods"}, nil).Once()

		profile, err := f.console.SupplierProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Astana Foods", profile.CompanyName)

		name := "Other"
		_, err = f.console.UpdateSupplierProfile(ctx, models.SupplierProfileUpdate{CompanyName: &name})
		assert.ErrorIs(t, err, services.ErrInsufficientPermissions)
		err = f.console.DeactivateSupplierAccount(ctx)
		assert.ErrorIs(t, err, services.ErrInsufficientPermissions)
	})

	t.Run("owner changes the supplier account", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierOwner), true)
		name := "Astana Foods LLP"
		update := models.SupplierProfileUpdate{CompanyName: &name}
		f.data.On("UpdateSupplierProfile", ctx, update).Return(&models.SupplierProfile{CompanyName: name}, nil).Once()
		f.data.On("DeactivateSupplierAccount", ctx).Return(nil).Once()

		_, err := f.console.UpdateSupplierProfile(ctx, update)
		require.NoError(t, err)
		require.NoError(t, f.console.DeactivateSupplierAccount(ctx))
		assert.Equal(t, []string{confirmDeactivate}, f.confirm.prompts)
	})

	t.Run("weak new password is rejected locally", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)

		err := f.console.ChangePassword(ctx, models.PasswordChange{CurrentPassword: "Secret123", NewPassword: "weak"})
		assert.True(t, utils.IsValidationError(err))
		assert.Empty(t, f.data.Calls)
	})

	t.Run("any staff member edits their own profile", func(t *testing.T) {
		f := newFixture(sessionFor(models.RoleSupplierSales), true)
		first := "Saule"
		update := models.UserProfileUpdate{FirstName: &first}
		f.data.On("UpdateUserProfile", ctx, update).Return(&models.UserResponse{FirstName: first}, nil).Once()
		f.data.On("ChangePassword", ctx, mock.Anything).Return(nil).Once()

		_, err := f.console.UpdateProfile(ctx, update)
		require.NoError(t, err)
		require.NoError(t, f.console.ChangePassword(ctx, models.PasswordChange{CurrentPassword: "Secret123", NewPassword: "Better2024"}))
		assert.Equal(t, []string{"Profile updated successfully", "Password changed successfully"}, f.toasts.Messages())
	})
}

func TestConsole_ReadsFollowPageAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(sessionFor(models.RoleSupplierSales), true)
	f.data.On("IncomingLinks", ctx, models.PageRequest{}, models.LinkStatusPending).
		Return(&models.Page[models.Link]{Total: 1}, nil).Once()
	f.data.On("Complaints", ctx, models.PageRequest{}, models.ComplaintStatus("")).
		Return(&models.Page[models.Complaint]{}, nil).Once()

	page, err := f.console.Links(ctx, models.PageRequest{}, models.LinkStatusPending)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	_, err = f.console.Complaints(ctx, models.PageRequest{}, "")
	require.NoError(t, err)

	assert.True(t, f.console.Capabilities().Has(permissions.SendMessages))
	assert.False(t, f.console.Capabilities().Has(permissions.ManageProducts))
}
