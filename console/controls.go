package console

import (
	"github.com/supplykz/supplier-console/models"
	"github.com/supplykz/supplier-console/permissions"
)

// Action names an operation a control triggers
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionBlock    Action = "block"
	ActionUnblock  Action = "unblock"
	ActionUnlink   Action = "unlink"
	ActionAccept   Action = "accept"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionResolve  Action = "resolve"
	ActionEscalate Action = "escalate"
	ActionOpenChat Action = "open-chat"
)

// Control is an actionable button for an entity
type Control struct {
	Action     Action
	Label      string
	Capability permissions.Capability
	// Confirm is the question asked before running the action; empty means none
	Confirm string
}

// Destructive reports whether the control asks for confirmation
func (c Control) Destructive() bool {
	return c.Confirm != ""
}

// Confirmation prompts
const (
	confirmRejectLink      = "Are you sure you want to reject this link request?"
	confirmBlockLink       = "Are you sure you want to block this consumer? They will no longer be able to place orders with you."
	confirmUnblockLink     = "Are you sure you want to unblock this consumer? They will be able to place orders with you again."
	confirmUnlink          = "Are you sure you want to unlink this consumer? They will have to request a link again."
	confirmRejectOrder     = "Are you sure you want to reject this order? This action cannot be undone."
	confirmEscalate        = "Are you sure you want to escalate this complaint to the manager?"
	confirmResolveEscalate = "Are you sure you want to resolve this complaint?"
	confirmDeleteProduct   = "Are you sure you want to delete this product?"
	confirmRemoveStaff     = "Are you sure you want to remove this staff member?"
	confirmDeactivateStaff = "Are you sure you want to deactivate this staff member?"
	confirmDeactivate      = "Are you sure you want to deactivate the supplier account?"
	confirmDeleteAccount   = "Are you sure you want to delete the supplier account? This action cannot be undone."
)

var (
	approveControl  = Control{Action: ActionApprove, Label: "Approve", Capability: permissions.ApproveLinkRequests}
	reacceptControl = Control{Action: ActionApprove, Label: "Accept", Capability: permissions.ApproveLinkRequests}
	rejectControl   = Control{Action: ActionReject, Label: "Reject", Capability: permissions.RejectLinkRequests, Confirm: confirmRejectLink}
	unlinkControl   = Control{Action: ActionUnlink, Label: "Unlink", Capability: permissions.BlockLinks, Confirm: confirmUnlink}
	blockControl    = Control{Action: ActionBlock, Label: "Block", Capability: permissions.BlockLinks, Confirm: confirmBlockLink}
	unblockControl  = Control{Action: ActionUnblock, Label: "Unblock", Capability: permissions.BlockLinks, Confirm: confirmUnblockLink}

	acceptOrderControl   = Control{Action: ActionAccept, Label: "Accept Order", Capability: permissions.AcceptOrders}
	rejectOrderControl   = Control{Action: ActionReject, Label: "Reject Order", Capability: permissions.RejectOrders, Confirm: confirmRejectOrder}
	startOrderControl    = Control{Action: ActionStart, Label: "Start Processing", Capability: permissions.UpdateOrderStatus}
	completeOrderControl = Control{Action: ActionComplete, Label: "Mark as Completed", Capability: permissions.UpdateOrderStatus}
	orderChatControl     = Control{Action: ActionOpenChat, Label: "Open Chat", Capability: permissions.AccessChat}

	resolveControl          = Control{Action: ActionResolve, Label: "Resolve", Capability: permissions.ResolveComplaints}
	resolveEscalatedControl = Control{Action: ActionResolve, Label: "Resolve", Capability: permissions.ResolveComplaints, Confirm: confirmResolveEscalate}
	escalateControl         = Control{Action: ActionEscalate, Label: "Escalate to Manager", Capability: permissions.EscalateComplaints, Confirm: confirmEscalate}
	complaintChatControl    = Control{Action: ActionOpenChat, Label: "Chat with Consumer", Capability: permissions.AccessChat}
)

func allowed(caps permissions.CapabilitySet, controls ...Control) []Control {
	out := make([]Control, 0, len(controls))
	for _, c := range controls {
		if caps.Has(c.Capability) {
			out = append(out, c)
		}
	}
	return out
}

// LinkControls returns the controls shown for a link in status
func LinkControls(status models.LinkStatus, caps permissions.CapabilitySet) []Control {
	switch status {
	case models.LinkStatusPending:
		return allowed(caps, approveControl, rejectControl)
	case models.LinkStatusAccepted:
		return allowed(caps, unlinkControl, blockControl)
	case models.LinkStatusBlocked:
		return allowed(caps, unblockControl)
	case models.LinkStatusDenied, models.LinkStatusUnlinked:
		return allowed(caps, reacceptControl)
	}
	return []Control{}
}

// OrderControls returns the controls shown for an order in status
func OrderControls(status models.OrderStatus, caps permissions.CapabilitySet) []Control {
	var controls []Control
	switch status {
	case models.OrderStatusPending:
		controls = allowed(caps, acceptOrderControl, rejectOrderControl)
	case models.OrderStatusAccepted:
		controls = allowed(caps, startOrderControl)
	case models.OrderStatusInProgress:
		controls = allowed(caps, completeOrderControl)
	default:
		controls = []Control{}
	}
	return append(controls, allowed(caps, orderChatControl)...)
}

// ComplaintControls returns the controls shown for a complaint in status
func ComplaintControls(status models.ComplaintStatus, caps permissions.CapabilitySet) []Control {
	switch status {
	case models.ComplaintStatusOpen:
		return allowed(caps, resolveControl, escalateControl)
	case models.ComplaintStatusEscalated:
		return allowed(caps, resolveEscalatedControl, complaintChatControl)
	}
	return []Control{}
}

// FindControl returns the control for action among controls
func FindControl(controls []Control, action Action) (Control, bool) {
	for _, c := range controls {
		if c.Action == action {
			return c, true
		}
	}
	return Control{}, false
}
