package utils

import "strings"

// LoginForm holds sign-in credentials
type LoginForm struct {
	Email    string `json:"email" validate:"required,loginemail"`
	Password string `json:"password" validate:"notblank"`
}

// SignupForm holds the registration fields. The console only registers
// supplier owners, so no role is collected.
type SignupForm struct {
	Email       string `json:"email" validate:"required,loginemail"`
	Password    string `json:"password" validate:"required,password"`
	FirstName   string `json:"first_name" validate:"notblank"`
	LastName    string `json:"last_name" validate:"notblank"`
	CompanyName string `json:"company_name" validate:"notblank"`
}

// Normalize trims surrounding whitespace from the name fields
func (f *SignupForm) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.CompanyName = strings.TrimSpace(f.CompanyName)
}

// ResetPasswordForm holds a password reset request
type ResetPasswordForm struct {
	Email       string `json:"email" validate:"required,loginemail"`
	NewPassword string `json:"new_password" validate:"required,password"`
}
