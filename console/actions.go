package console

import (
	"context"
	"strings"

	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
	"github.com/supplykz/supplier-console/services"
)

// Links lists incoming link requests
func (c *Console) Links(ctx context.Context, page models.PageRequest, status models.LinkStatus) (*models.Page[models.Link], error) {
	if err := c.authorize(permissions.AccessLinkRequests); err != nil {
		return nil, err
	}
	return c.data.IncomingLinks(ctx, page, status)
}

// ApproveLink accepts a pending, denied or unlinked link request
func (c *Console) ApproveLink(ctx context.Context, linkID int64) (*models.Link, error) {
	if err := c.guard(ctx, permissions.ApproveLinkRequests, ""); err != nil {
		return nil, err
	}
	link, err := c.data.UpdateLinkStatus(ctx, linkID, models.LinkStatusAccepted)
	if err != nil {
		return nil, err
	}
	c.success("Link request approved successfully")
	return link, nil
}

// RejectLink denies a link request
func (c *Console) RejectLink(ctx context.Context, linkID int64) (*models.Link, error) {
	if err := c.guard(ctx, permissions.RejectLinkRequests, confirmRejectLink); err != nil {
		return nil, err
	}
	link, err := c.data.UpdateLinkStatus(ctx, linkID, models.LinkStatusDenied)
	if err != nil {
		return nil, err
	}
	c.success("Link request rejected successfully")
	return link, nil
}

// BlockLink blocks a linked consumer
func (c *Console) BlockLink(ctx context.Context, linkID int64) (*models.Link, error) {
	if err := c.guard(ctx, permissions.BlockLinks, confirmBlockLink); err != nil {
		return nil, err
	}
	link, err := c.data.BlockLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	c.success("Consumer blocked successfully")
	return link, nil
}

// UnblockLink restores a blocked consumer
func (c *Console) UnblockLink(ctx context.Context, linkID int64) (*models.Link, error) {
	if err := c.guard(ctx, permissions.BlockLinks, confirmUnblockLink); err != nil {
		return nil, err
	}
	link, err := c.data.UnblockLink(ctx, linkID)
	if err != nil {
		return nil, err
	}
	c.success("Consumer unblocked successfully")
	return link, nil
}

// UnlinkConsumer drops an accepted link back to a pending request
func (c *Console) UnlinkConsumer(ctx context.Context, linkID int64) (*models.Link, error) {
	if err := c.guard(ctx, permissions.BlockLinks, confirmUnlink); err != nil {
		return nil, err
	}
	link, err := c.data.UnlinkConsumer(ctx, linkID)
	if err != nil {
		return nil, err
	}
	c.success("Consumer unlinked successfully")
	return link, nil
}

// Orders lists orders
func (c *Console) Orders(ctx context.Context, page models.PageRequest, status models.OrderStatus) (*models.Page[models.Order], error) {
	if err := c.authorize(permissions.ViewOrders); err != nil {
		return nil, err
	}
	return c.data.Orders(ctx, page, status)
}

// Order fetches one order
func (c *Console) Order(ctx context.Context, orderID int64) (*models.Order, error) {
	if err := c.authorize(permissions.ViewOrders); err != nil {
		return nil, err
	}
	return c.data.Order(ctx, orderID)
}

// AcceptOrder accepts a pending order
func (c *Console) AcceptOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return c.changeOrder(ctx, orderID, models.OrderStatusAccepted, permissions.AcceptOrders, "", "Order accepted successfully")
}

// RejectOrder rejects a pending order
func (c *Console) RejectOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return c.changeOrder(ctx, orderID, models.OrderStatusRejected, permissions.RejectOrders, confirmRejectOrder, "Order rejected successfully")
}

// StartOrder moves an accepted order into progress
func (c *Console) StartOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return c.changeOrder(ctx, orderID, models.OrderStatusInProgress, permissions.UpdateOrderStatus, "", "Order status updated successfully")
}

// CompleteOrder completes an order in progress
func (c *Console) CompleteOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	return c.changeOrder(ctx, orderID, models.OrderStatusCompleted, permissions.UpdateOrderStatus, "", "Order status updated successfully")
}

func (c *Console) changeOrder(ctx context.Context, orderID int64, status models.OrderStatus, capability permissions.Capability, prompt, done string) (*models.Order, error) {
	if err := c.guard(ctx, capability, prompt); err != nil {
		return nil, err
	}
	order, err := c.data.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	c.success(done)
	return order, nil
}

// Complaints lists complaints
func (c *Console) Complaints(ctx context.Context, page models.PageRequest, status models.ComplaintStatus) (*models.Page[models.Complaint], error) {
	if err := c.authorize(permissions.ViewComplaints); err != nil {
		return nil, err
	}
	return c.data.Complaints(ctx, page, status)
}

// Complaint fetches one complaint
func (c *Console) Complaint(ctx context.Context, complaintID int64) (*models.Complaint, error) {
	if err := c.authorize(permissions.ViewComplaints); err != nil {
		return nil, err
	}
	return c.data.Complaint(ctx, complaintID)
}

// ResolveComplaint resolves a complaint with a non-empty resolution. Resolving
// an escalated complaint asks for confirmation first.
func (c *Console) ResolveComplaint(ctx context.Context, complaintID int64, resolution string, escalated bool) (*models.Complaint, error) {
	if err := c.authorize(permissions.ResolveComplaints); err != nil {
		return nil, err
	}
	resolution = strings.TrimSpace(resolution)
	if resolution == "" {
		return nil, services.ErrResolutionRequired
	}
	if escalated {
		if err := c.confirmAction(ctx, confirmResolveEscalate); err != nil {
			return nil, err
		}
	}

	complaint, err := c.data.UpdateComplaintStatus(ctx, complaintID, models.ComplaintStatusResolved, &resolution)
	if err != nil {
		return nil, err
	}
	c.success("Complaint resolved successfully")
	return complaint, nil
}

// EscalateComplaint hands an open complaint to the manager
func (c *Console) EscalateComplaint(ctx context.Context, complaintID int64) (*models.Complaint, error) {
	if err := c.guard(ctx, permissions.EscalateComplaints, confirmEscalate); err != nil {
		return nil, err
	}
	complaint, err := c.data.UpdateComplaintStatus(ctx, complaintID, models.ComplaintStatusEscalated, nil)
	if err != nil {
		return nil, err
	}
	c.success("Complaint escalated to manager successfully")
	return complaint, nil
}

// ChatSessions lists conversations
func (c *Console) ChatSessions(ctx context.Context, page models.PageRequest) (*models.Page[models.ChatSession], error) {
	if err := c.authorize(permissions.ViewChat); err != nil {
		return nil, err
	}
	return c.data.ChatSessions(ctx, page)
}

// ChatMessages lists a conversation's messages
func (c *Console) ChatMessages(ctx context.Context, sessionID int64, page models.PageRequest) (*models.Page[models.ChatMessage], error) {
	if err := c.authorize(permissions.ViewChat); err != nil {
		return nil, err
	}
	return c.data.ChatMessages(ctx, sessionID, page)
}

// SendMessage posts a non-empty message to a conversation
func (c *Console) SendMessage(ctx context.Context, sessionID int64, text string) (*models.ChatMessage, error) {
	if err := c.authorize(permissions.SendMessages); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, services.ErrEmptyMessage
	}
	return c.data.SendMessage(ctx, sessionID, models.NewChatMessage{Text: text})
}

// OpenChat navigates to the conversation with a consumer
func (c *Console) OpenChat(ctx context.Context, consumerID int64) error {
	if err := c.authorize(permissions.AccessChat); err != nil {
		return err
	}
	if consumerID <= 0 {
		return services.NewDomainError(services.ErrorTypeValidation, "Consumer information not available.", nil)
	}
	if c.nav == nil {
		return services.NewDomainError(services.ErrorTypeInternal, "Unable to open chat. Please navigate to the Chat page manually.", nil)
	}
	return c.nav.Navigate(ctx, Destination{Page: PageChat, ConsumerID: consumerID})
}
