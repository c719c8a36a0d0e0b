package models

import (
	"encoding/json"
	"unicode"
)

// Role is the account role reported by the backend
type Role string

const (
	RoleSupplierOwner   Role = "supplier_owner"
	RoleSupplierManager Role = "supplier_manager"
	RoleSupplierSales   Role = "supplier_sales"
	RoleConsumer        Role = "consumer"
	// RoleUnknown stands in for any role string this client does not recognise.
	RoleUnknown Role = "unknown"
)

// ParseRole maps a raw backend role onto the closed set of roles.
// Matching is exact; anything else, including case or whitespace
// variants of a known role, becomes RoleUnknown.
func ParseRole(raw string) Role {
	switch r := Role(raw); r {
	case RoleSupplierOwner, RoleSupplierManager, RoleSupplierSales, RoleConsumer:
		return r
	default:
		return RoleUnknown
	}
}

// UnmarshalJSON parses the role at the JSON boundary.
func (r *Role) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = ParseRole(raw)
	return nil
}

// IsSupplierStaff returns true for owner, manager and sales roles
func (r Role) IsSupplierStaff() bool {
	return r == RoleSupplierOwner || r == RoleSupplierManager || r == RoleSupplierSales
}

// IsValid returns true if the role is a known role
func (r Role) IsValid() bool {
	return r.IsSupplierStaff() || r == RoleConsumer
}

// DisplayName returns a human readable role label
func (r Role) DisplayName() string {
	switch r {
	case RoleSupplierOwner:
		return "Supplier Owner"
	case RoleSupplierManager:
		return "Supplier Manager"
	case RoleSupplierSales:
		return "Sales Representative"
	case RoleConsumer:
		return "Consumer"
	default:
		return capitalize(string(r))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
