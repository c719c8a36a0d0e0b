// Package permissions derives what a supplier staff member may see and do
// from their role. Resolution is pure and fails closed: roles outside the
// supplier staff set receive no capabilities.
package permissions

import "github.com/supplykz/supplier-console/models"

// Capability names a single permitted page or action in resource:verb form.
type Capability string

const (
	AccessLinkRequests Capability = "link_requests:access"
	AccessOrders       Capability = "orders:access"
	AccessComplaints   Capability = "complaints:access"
	AccessChat         Capability = "chat:access"
	AccessSettings     Capability = "settings:access"

	ApproveLinkRequests Capability = "link_requests:approve"
	RejectLinkRequests  Capability = "link_requests:reject"
	BlockLinks          Capability = "links:block"

	ViewOrders        Capability = "orders:read"
	UpdateOrderStatus Capability = "orders:update_status"
	AcceptOrders      Capability = "orders:accept"
	RejectOrders      Capability = "orders:reject"

	ViewComplaints     Capability = "complaints:read"
	ResolveComplaints  Capability = "complaints:resolve"
	EscalateComplaints Capability = "complaints:escalate"

	ViewChat     Capability = "chat:read"
	SendMessages Capability = "chat:send"

	ManageProducts  Capability = "products:manage"
	ManageTeam      Capability = "team:manage"
	ManageSuppliers Capability = "suppliers:manage"
)

// CapabilitySet is the full record of capabilities for one role.
type CapabilitySet struct {
	CanAccessLinkRequests bool
	CanAccessOrders       bool
	CanAccessComplaints   bool
	CanAccessChat         bool
	CanAccessSettings     bool

	CanApproveLinkRequests bool
	CanRejectLinkRequests  bool
	CanBlockLinks          bool

	CanViewOrders         bool
	CanUpdateOrderStatus  bool
	CanAcceptOrders       bool
	CanRejectOrders       bool
	CanViewComplaints     bool
	CanResolveComplaints  bool
	CanEscalateComplaints bool

	CanViewChat     bool
	CanSendMessages bool

	CanManageProducts  bool
	CanManageTeam      bool
	CanManageSuppliers bool
}

var fields = []struct {
	capability Capability
	flag       func(*CapabilitySet) *bool
}{
	{AccessLinkRequests, func(s *CapabilitySet) *bool { return &s.CanAccessLinkRequests }},
	{AccessOrders, func(s *CapabilitySet) *bool { return &s.CanAccessOrders }},
	{AccessComplaints, func(s *CapabilitySet) *bool { return &s.CanAccessComplaints }},
	{AccessChat, func(s *CapabilitySet) *bool { return &s.CanAccessChat }},
	{AccessSettings, func(s *CapabilitySet) *bool { return &s.CanAccessSettings }},
	{ApproveLinkRequests, func(s *CapabilitySet) *bool { return &s.CanApproveLinkRequests }},
	{RejectLinkRequests, func(s *CapabilitySet) *bool { return &s.CanRejectLinkRequests }},
	{BlockLinks, func(s *CapabilitySet) *bool { return &s.CanBlockLinks }},
	{ViewOrders, func(s *CapabilitySet) *bool { return &s.CanViewOrders }},
	{UpdateOrderStatus, func(s *CapabilitySet) *bool { return &s.CanUpdateOrderStatus }},
	{AcceptOrders, func(s *CapabilitySet) *bool { return &s.CanAcceptOrders }},
	{RejectOrders, func(s *CapabilitySet) *bool { return &s.CanRejectOrders }},
	{ViewComplaints, func(s *CapabilitySet) *bool { return &s.CanViewComplaints }},
	{ResolveComplaints, func(s *CapabilitySet) *bool { return &s.CanResolveComplaints }},
	{EscalateComplaints, func(s *CapabilitySet) *bool { return &s.CanEscalateComplaints }},
	{ViewChat, func(s *CapabilitySet) *bool { return &s.CanViewChat }},
	{SendMessages, func(s *CapabilitySet) *bool { return &s.CanSendMessages }},
	{ManageProducts, func(s *CapabilitySet) *bool { return &s.CanManageProducts }},
	{ManageTeam, func(s *CapabilitySet) *bool { return &s.CanManageTeam }},
	{ManageSuppliers, func(s *CapabilitySet) *bool { return &s.CanManageSuppliers }},
}

// AllCapabilities is the full set of known capabilities.
var AllCapabilities = func() []Capability {
	all := make([]Capability, 0, len(fields))
	for _, f := range fields {
		all = append(all, f.capability)
	}
	return all
}()

var staffCapabilities = []Capability{
	AccessLinkRequests, AccessOrders, AccessComplaints, AccessChat,
	ApproveLinkRequests, RejectLinkRequests,
	ViewOrders, ViewComplaints, ViewChat, SendMessages,
}

var managementCapabilities = []Capability{
	AccessSettings,
	BlockLinks,
	UpdateOrderStatus, AcceptOrders, RejectOrders,
	ResolveComplaints, EscalateComplaints,
	ManageProducts,
}

var ownerCapabilities = []Capability{
	ManageTeam, ManageSuppliers,
}

// DefaultRoleCapabilities maps each role to its granted capabilities.
// Roles missing from the map get nothing.
var DefaultRoleCapabilities = map[models.Role][]Capability{
	models.RoleSupplierOwner:   concat(staffCapabilities, managementCapabilities, ownerCapabilities),
	models.RoleSupplierManager: concat(staffCapabilities, managementCapabilities),
	models.RoleSupplierSales:   concat(staffCapabilities),
}

// Resolve computes the capability set for a role.
func Resolve(role models.Role) CapabilitySet {
	var set CapabilitySet
	for _, c := range DefaultRoleCapabilities[role] {
		set.grant(c)
	}
	return set
}

// ResolveString parses a raw role string and resolves it.
func ResolveString(role string) CapabilitySet {
	return Resolve(models.ParseRole(role))
}

// ForUser resolves the capabilities of a user; nil users get nothing.
func ForUser(user *models.User) CapabilitySet {
	if user == nil {
		return CapabilitySet{}
	}
	return Resolve(user.Role)
}

// Has reports whether the capability is granted.
func (s CapabilitySet) Has(c Capability) bool {
	for _, f := range fields {
		if f.capability == c {
			return *f.flag(&s)
		}
	}
	return false
}

// HasAny reports whether at least one of the capabilities is granted.
func (s CapabilitySet) HasAny(caps ...Capability) bool {
	for _, c := range caps {
		if s.Has(c) {
			return true
		}
	}
	return false
}

// HasAll reports whether every capability is granted.
func (s CapabilitySet) HasAll(caps ...Capability) bool {
	for _, c := range caps {
		if !s.Has(c) {
			return false
		}
	}
	return true
}

// Granted lists the granted capabilities in declaration order.
func (s CapabilitySet) Granted() []Capability {
	var out []Capability
	for _, f := range fields {
		if *f.flag(&s) {
			out = append(out, f.capability)
		}
	}
	return out
}

// CanEnterConsole reports whether any console page is reachable.
func (s CapabilitySet) CanEnterConsole() bool {
	return s.HasAny(AccessLinkRequests, AccessOrders, AccessComplaints, AccessChat, AccessSettings)
}

func (s *CapabilitySet) grant(c Capability) {
	for _, f := range fields {
		if f.capability == c {
			*f.flag(s) = true
			return
		}
	}
}

// RoleDisplayName returns the label shown for a role.
func RoleDisplayName(role models.Role) string {
	return role.DisplayName()
}

// IsSupplierStaff reports whether the role may use the supplier console.
func IsSupplierStaff(role models.Role) bool {
	return role.IsSupplierStaff()
}

func concat(groups ...[]Capability) []Capability {
	var out []Capability
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
