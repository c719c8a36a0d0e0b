package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// Complaints lists complaints, optionally filtered by status
func (s *DataService) Complaints(ctx context.Context, page models.PageRequest, status models.ComplaintStatus) (*models.Page[models.Complaint], error) {
	var out models.Page[models.Complaint]
	q := withStatus(listQuery(page, models.DefaultPageSize), string(status))
	if err := s.api.Get(ctx, "/complaints", q, &out); err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	return &out, nil
}

// Complaint fetches one complaint
func (s *DataService) Complaint(ctx context.Context, complaintID int64) (*models.Complaint, error) {
	var out models.Complaint
	if err := s.api.Get(ctx, idPath("/complaints/%d", complaintID), nil, &out); err != nil {
		return nil, fmt.Errorf("get complaint %d: %w", complaintID, err)
	}
	return &out, nil
}

// UpdateComplaintStatus moves a complaint to status, recording resolution when given
func (s *DataService) UpdateComplaintStatus(ctx context.Context, complaintID int64, status models.ComplaintStatus, resolution *string) (*models.Complaint, error) {
	var out models.Complaint
	body := models.ComplaintStatusUpdate{Status: status, Resolution: resolution}
	if err := s.api.Patch(ctx, idPath("/complaints/%d/status", complaintID), body, &out); err != nil {
		return nil, fmt.Errorf("update complaint %d status: %w", complaintID, err)
	}
	s.logger.Info("complaint status updated", zap.Int64("complaint_id", complaintID), zap.String("status", string(status)))
	return &out, nil
}
