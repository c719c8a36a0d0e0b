package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// Staff lists the supplier's staff. The endpoint returns a plain list.
func (s *DataService) Staff(ctx context.Context) ([]models.StaffMember, error) {
	var out []models.StaffMember
	if err := s.api.Get(ctx, "/suppliers/staff", nil, &out); err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return out, nil
}

// AddStaff is not offered by the backend; staff join through registration.
func (s *DataService) AddStaff(ctx context.Context, email string) error {
	return NewDomainError(ErrorTypeUnsupported,
		"Staff member creation should be done via user registration. Please contact support.", nil).
		WithDetail("email", email)
}

// RemoveStaff deletes a staff member
func (s *DataService) RemoveStaff(ctx context.Context, staffID int64) error {
	if err := s.api.Delete(ctx, idPath("/suppliers/staff/%d", staffID), nil); err != nil {
		return fmt.Errorf("remove staff member %d: %w", staffID, err)
	}
	s.logger.Info("staff member removed", zap.Int64("staff_id", staffID))
	return nil
}

// DeactivateStaff disables a staff member's account
func (s *DataService) DeactivateStaff(ctx context.Context, staffID int64) error {
	if err := s.api.Patch(ctx, idPath("/suppliers/staff/%d/deactivate", staffID), nil, nil); err != nil {
		return fmt.Errorf("deactivate staff member %d: %w", staffID, err)
	}
	s.logger.Info("staff member deactivated", zap.Int64("staff_id", staffID))
	return nil
}

// Suppliers lists supplier accounts managed by the owner. The backend has no
// such endpoint yet, so the list is always empty.
func (s *DataService) Suppliers(ctx context.Context) ([]models.SupplierProfile, error) {
	return []models.SupplierProfile{}, nil
}

// CreateSupplier is not offered by the backend
func (s *DataService) CreateSupplier(ctx context.Context, companyName string) error {
	return NewDomainError(ErrorTypeUnsupported, "Creating suppliers is not supported via this endpoint", nil).
		WithDetail("company_name", companyName)
}
