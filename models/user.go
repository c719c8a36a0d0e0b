package models

import (
	"strconv"
	"strings"
	"unicode"
)

// SupplierSummary is the supplier block some user payloads embed
type SupplierSummary struct {
	CompanyLogo *string `json:"company_logo,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// UserResponse is the backend representation returned by GET /users/me
type UserResponse struct {
	ID          int64            `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Role        Role             `json:"role"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   Timestamp        `json:"created_at"`
	CompanyLogo *string          `json:"company_logo,omitempty"`
	Supplier    *SupplierSummary `json:"supplier,omitempty"`
}

// User is the view model held by the session and persisted under the "user" key
type User struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Role        Role    `json:"role"`
	Avatar      string  `json:"avatar"`
	CompanyLogo *string `json:"companyLogo,omitempty"`
}

// NewUser builds the view model from a backend user payload
func NewUser(resp *UserResponse) *User {
	first := strings.TrimSpace(resp.FirstName)
	last := strings.TrimSpace(resp.LastName)

	name := strings.TrimSpace(first + " " + last)
	avatar := strings.ToUpper(firstRune(first) + firstRune(last))
	if name == "" {
		name, _, _ = strings.Cut(resp.Email, "@")
	}
	if avatar == "" {
		avatar = strings.ToUpper(prefix(resp.Email, 2))
	}

	var logo *string
	if resp.CompanyLogo != nil && *resp.CompanyLogo != "" {
		logo = resp.CompanyLogo
	} else if resp.Supplier != nil && resp.Supplier.CompanyLogo != nil && *resp.Supplier.CompanyLogo != "" {
		logo = resp.Supplier.CompanyLogo
	}

	return &User{
		ID:          strconv.FormatInt(resp.ID, 10),
		Email:       resp.Email,
		Name:        name,
		FirstName:   first,
		LastName:    last,
		Role:        resp.Role,
		Avatar:      avatar,
		CompanyLogo: logo,
	}
}

// IsSupplierStaff returns true if the user may enter the supplier console
func (u *User) IsSupplierStaff() bool {
	return u != nil && u.Role.IsSupplierStaff()
}

// NumericID returns the backend identifier, or 0 when it cannot be parsed
func (u *User) NumericID() int64 {
	id, err := strconv.ParseInt(u.ID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// UserSummary is the abbreviated user block nested in other resources
type UserSummary struct {
	ID        int64  `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// FullName joins first and last name
func (u *UserSummary) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserProfileUpdate is the body of PUT /users/me
type UserProfileUpdate struct {
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
}

// PasswordChange is the body of PATCH /users/me/password
type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}

func firstRune(s string) string {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return string(r)
		}
	}
	return ""
}

func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) < n {
		return s
	}
	return string(runes[:n])
}
