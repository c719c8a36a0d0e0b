package models

import "strings"

// TeamRole is the collapsed staff role shown in team management
type TeamRole string

const (
	TeamRoleManager TeamRole = "manager"
	TeamRoleSales   TeamRole = "sales"
)

// StaffMember is an entry of GET /suppliers/staff
type StaffMember struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt Timestamp `json:"created_at"`
}

// Name returns the member's full name
func (s *StaffMember) Name() string {
	if name := strings.TrimSpace(s.FirstName + " " + s.LastName); name != "" {
		return name
	}
	return "Unknown"
}

// TeamRole maps owners and managers to manager, everyone else to sales
func (s *StaffMember) TeamRole() TeamRole {
	switch s.Role {
	case "owner", "manager", string(RoleSupplierOwner), string(RoleSupplierManager):
		return TeamRoleManager
	default:
		return TeamRoleSales
	}
}
