package services

import (
	"context"
	"fmt"

	"github.com/supplykz/supplier-console/models"
)

// SupplierProfile fetches the supplier account of the signed-in user
func (s *DataService) SupplierProfile(ctx context.Context) (*models.SupplierProfile, error) {
	var out models.SupplierProfile
	if err := s.api.Get(ctx, "/suppliers/me", nil, &out); err != nil {
		return nil, fmt.Errorf("get supplier profile: %w", err)
	}
	return &out, nil
}

// UpdateSupplierProfile changes the supplier account
func (s *DataService) UpdateSupplierProfile(ctx context.Context, update models.SupplierProfileUpdate) (*models.SupplierProfile, error) {
	var out models.SupplierProfile
	if err := s.api.Put(ctx, "/suppliers/me", update, &out); err != nil {
		return nil, fmt.Errorf("update supplier profile: %w", err)
	}
	return &out, nil
}

// DeactivateSupplierAccount disables the supplier account
func (s *DataService) DeactivateSupplierAccount(ctx context.Context) error {
	if err := s.api.Patch(ctx, "/suppliers/me/deactivate", nil, nil); err != nil {
		return fmt.Errorf("deactivate supplier account: %w", err)
	}
	return nil
}

// DeleteSupplierAccount removes the supplier account
func (s *DataService) DeleteSupplierAccount(ctx context.Context) error {
	if err := s.api.Delete(ctx, "/suppliers/me", nil); err != nil {
		return fmt.Errorf("delete supplier account: %w", err)
	}
	return nil
}

// UserProfile fetches the signed-in user's profile
func (s *DataService) UserProfile(ctx context.Context) (*models.UserResponse, error) {
	var out models.UserResponse
	if err := s.api.Get(ctx, "/users/me", nil, &out); err != nil {
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return &out, nil
}

// UpdateUserProfile changes the signed-in user's profile
func (s *DataService) UpdateUserProfile(ctx context.Context, update models.UserProfileUpdate) (*models.UserResponse, error) {
	var out models.UserResponse
	if err := s.api.Put(ctx, "/users/me", update, &out); err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return &out, nil
}

// ChangePassword replaces the signed-in user's password
func (s *DataService) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if err := s.api.Patch(ctx, "/users/me/password", change, nil); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
