package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,loginemail"`
	Age   int    `validate:"gte=0,lte=150"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		s := TestStruct{Name: "Aliya", Email: "aliya@supply.kz", Age: 30}
		assert.NoError(t, ValidateStruct(&s))
	})

	t.Run("missing required field uses json name", func(t *testing.T) {
		err := ValidateStruct(&TestStruct{Email: "aliya@supply.kz"})
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
		assert.Equal(t, "name is required", GetValidationFields(err)["name"])
	})

	t.Run("invalid email", func(t *testing.T) {
		err := ValidateStruct(&TestStruct{Name: "Aliya", Email: "aliya"})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "email")
	})

	t.Run("falls back to go field name", func(t *testing.T) {
		err := ValidateStruct(&TestStruct{Name: "A", Email: "a@b.kz", Age: 200})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "Age")
	})
}

func TestValidationError_Message(t *testing.T) {
	err := NewFieldError("resolution", "resolution is required")
	assert.Equal(t, "Validation failed: resolution is required", err.Error())
	assert.Equal(t, "Validation failed", (&ValidationError{Message: "Validation failed"}).Error())
	assert.False(t, IsValidationError(assert.AnError))
	assert.Nil(t, GetValidationFields(assert.AnError))
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"owner@supply.kz", true},
		{"a@b.c", true},
		{"no-at-sign.kz", false},
		{"missing@tld", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"digit", "Passw0rdX", true},
		{"symbol", "Password!", true},
		{"underscore", "Pass_word", true},
		{"too short", "Pa1!", false},
		{"no uppercase", "password1", false},
		{"no lowercase", "PASSWORD1", false},
		{"letters only", "Passwordxx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestPasswordChecks(t *testing.T) {
	checks := PasswordChecks("abc")
	require.Len(t, checks, 4)
	assert.False(t, checks[0].OK)
	assert.False(t, checks[1].OK)
	assert.True(t, checks[2].OK)
	assert.False(t, checks[3].OK)
}

func TestForms(t *testing.T) {
	t.Run("login requires a password but no strength rule", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&LoginForm{Email: "o@s.kz", Password: "x"}))

		err := ValidateStruct(&LoginForm{Email: "o@s.kz", Password: "   "})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "password")
	})

	t.Run("signup requires names and company", func(t *testing.T) {
		form := SignupForm{Email: " o@s.kz ", Password: "Secret123", FirstName: "  ", LastName: "B", CompanyName: ""}
		form.Normalize()
		assert.Equal(t, "o@s.kz", form.Email)

		err := ValidateStruct(&form)
		require.Error(t, err)
		fields := GetValidationFields(err)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "company_name")
		assert.NotContains(t, fields, "last_name")
	})

	t.Run("signup enforces password strength", func(t *testing.T) {
		err := ValidateStruct(&SignupForm{Email: "o@s.kz", Password: "weak", FirstName: "A", LastName: "B", CompanyName: "C"})
		require.Error(t, err)
		assert.Contains(t, GetValidationFields(err), "password")
	})

	t.Run("reset password", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(&ResetPasswordForm{Email: "o@s.kz", NewPassword: "NewPass1"}))
		assert.Error(t, ValidateStruct(&ResetPasswordForm{Email: "o@s.kz", NewPassword: "newpass"}))
	})
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired("x", "text"))
	assert.EqualError(t, ValidateRequired("  ", "text"), "text is required")
}
