package console

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/notify"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
)

// ErrCancelled is returned when the user declines a confirmation
var ErrCancelled = errors.New("action cancelled")

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm accepts every prompt
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Session is the view of the signed-in user the console needs
type Session interface {
	User() *models.User
	Capabilities() permissions.CapabilitySet
}

// DataSource is the backend surface behind the console pages
type DataSource interface {
	IncomingLinks(ctx context.Context, page models.PageRequest, status models.LinkStatus) (*models.Page[models.Link], error)
	UpdateLinkStatus(ctx context.Context, linkID int64, status models.LinkStatus) (*models.Link, error)
	BlockLink(ctx context.Context, linkID int64) (*models.Link, error)
	UnblockLink(ctx context.Context, linkID int64) (*models.Link, error)
	UnlinkConsumer(ctx context.Context, linkID int64) (*models.Link, error)

	Orders(ctx context.Context, page models.PageRequest, status models.OrderStatus) (*models.Page[models.Order], error)
	Order(ctx context.Context, orderID int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error)

	Complaints(ctx context.Context, page models.PageRequest, status models.ComplaintStatus) (*models.Page[models.Complaint], error)
	Complaint(ctx context.Context, complaintID int64) (*models.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, complaintID int64, status models.ComplaintStatus, resolution *string) (*models.Complaint, error)

	ChatSessions(ctx context.Context, page models.PageRequest) (*models.Page[models.ChatSession], error)
	ChatMessages(ctx context.Context, sessionID int64, page models.PageRequest) (*models.Page[models.ChatMessage], error)
	SendMessage(ctx context.Context, sessionID int64, msg models.NewChatMessage) (*models.ChatMessage, error)

	MyProducts(ctx context.Context, page models.PageRequest, isActive *bool) (*models.Page[models.Product], error)
	CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, productID int64, input models.ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, productID int64) error

	Staff(ctx context.Context) ([]models.StaffMember, error)
	AddStaff(ctx context.Context, email string) error
	RemoveStaff(ctx context.Context, staffID int64) error
	DeactivateStaff(ctx context.Context, staffID int64) error

	SupplierProfile(ctx context.Context) (*models.SupplierProfile, error)
	UpdateSupplierProfile(ctx context.Context, update models.SupplierProfileUpdate) (*models.SupplierProfile, error)
	DeactivateSupplierAccount(ctx context.Context) error
	DeleteSupplierAccount(ctx context.Context) error
	UserProfile(ctx context.Context) (*models.UserResponse, error)
	UpdateUserProfile(ctx context.Context, update models.UserProfileUpdate) (*models.UserResponse, error)
	ChangePassword(ctx context.Context, change models.PasswordChange) error
}

// Console runs the console's actions. Every handler re-checks the caller's
// capabilities before touching the network, whatever the controls showed.
type Console struct {
	data    DataSource
	session Session
	confirm Confirmer
	toasts  notify.Publisher
	nav     Navigator
	logger  *zap.Logger
}

// New creates a Console
func New(data DataSource, sess Session, confirm Confirmer, toasts notify.Publisher, nav Navigator, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &Console{
		data:    data,
		session: sess,
		confirm: confirm,
		toasts:  toasts,
		nav:     nav,
		logger:  logger,
	}
}

// Capabilities returns the signed-in user's capabilities
func (c *Console) Capabilities() permissions.CapabilitySet {
	return c.session.Capabilities()
}

var denials = map[permissions.Capability]string{
	permissions.ApproveLinkRequests: "You do not have permission to approve link requests",
	permissions.RejectLinkRequests:  "You do not have permission to reject link requests",
	permissions.BlockLinks:          "You do not have permission to manage linked consumers. Only owners and managers can block, unblock or unlink.",
	permissions.AcceptOrders:        "You do not have permission to accept orders",
	permissions.RejectOrders:        "You do not have permission to reject orders",
	permissions.UpdateOrderStatus:   "You do not have permission to update order status",
	permissions.ResolveComplaints:   "You do not have permission to resolve complaints",
	permissions.EscalateComplaints:  "You do not have permission to escalate complaints",
	permissions.ManageProducts:      "You do not have permission to manage products",
	permissions.ManageTeam:          "Only the owner can manage the team",
	permissions.ManageSuppliers:     "Only the owner can manage the supplier account",
}

func denied(capability permissions.Capability) error {
	msg, ok := denials[capability]
	if !ok {
		msg = "You do not have permission to perform this action"
	}
	return services.NewDomainError(services.ErrorTypeForbidden, msg, services.ErrInsufficientPermissions).
		WithDetail("capability", string(capability))
}

// authorize fails unless the signed-in user holds capability
func (c *Console) authorize(capability permissions.Capability) error {
	if c.session.User() == nil {
		return services.ErrNotAuthenticated
	}
	if !c.session.Capabilities().Has(capability) {
		c.logger.Debug("action denied", zap.String("capability", string(capability)))
		return denied(capability)
	}
	return nil
}

// guard authorizes and, for destructive actions, asks for confirmation
func (c *Console) guard(ctx context.Context, capability permissions.Capability, prompt string) error {
	if err := c.authorize(capability); err != nil {
		return err
	}
	return c.confirmAction(ctx, prompt)
}

func (c *Console) confirmAction(ctx context.Context, prompt string) error {
	if prompt == "" {
		return nil
	}
	ok, err := c.confirm.Confirm(ctx, prompt)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCancelled
	}
	return nil
}

func (c *Console) success(message string) {
	if c.toasts != nil {
		c.toasts.Publish(notify.LevelSuccess, message)
	}
}
