package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// IncomingLinks lists link requests addressed to the supplier, optionally filtered by status
func (s *DataService) IncomingLinks(ctx context.Context, page models.PageRequest, status models.LinkStatus) (*models.Page[models.Link], error) {
	var out models.Page[models.Link]
	q := withStatus(listQuery(page, models.DefaultPageSize), string(status))
	if err := s.api.Get(ctx, "/links/incoming", q, &out); err != nil {
		return nil, fmt.Errorf("list incoming links: %w", err)
	}
	return &out, nil
}

// ActiveLinks lists accepted links
func (s *DataService) ActiveLinks(ctx context.Context, page models.PageRequest) (*models.Page[models.Link], error) {
	return s.IncomingLinks(ctx, page, models.LinkStatusAccepted)
}

// UpdateLinkStatus moves a link to status
func (s *DataService) UpdateLinkStatus(ctx context.Context, linkID int64, status models.LinkStatus) (*models.Link, error) {
	if !status.IsValid() {
		return nil, NewDomainError(ErrorTypeValidation, fmt.Sprintf("unknown link status %q", status), nil)
	}

	var out models.Link
	if err := s.api.Patch(ctx, idPath("/links/%d/status", linkID), models.LinkStatusUpdate{Status: status}, &out); err != nil {
		return nil, fmt.Errorf("update link %d status: %w", linkID, err)
	}
	s.logger.Info("link status updated", zap.Int64("link_id", linkID), zap.String("status", string(status)))
	return &out, nil
}

// BlockLink blocks an accepted consumer
func (s *DataService) BlockLink(ctx context.Context, linkID int64) (*models.Link, error) {
	return s.UpdateLinkStatus(ctx, linkID, models.LinkStatusBlocked)
}

// UnblockLink restores a blocked link to accepted
func (s *DataService) UnblockLink(ctx context.Context, linkID int64) (*models.Link, error) {
	return s.UpdateLinkStatus(ctx, linkID, models.LinkStatusAccepted)
}

// UnlinkConsumer returns the link to pending so the consumer must be approved again
func (s *DataService) UnlinkConsumer(ctx context.Context, linkID int64) (*models.Link, error) {
	return s.UpdateLinkStatus(ctx, linkID, models.LinkStatusPending)
}
