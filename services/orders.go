package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// Orders lists the supplier's orders, optionally filtered by status
func (s *DataService) Orders(ctx context.Context, page models.PageRequest, status models.OrderStatus) (*models.Page[models.Order], error) {
	var out models.Page[models.Order]
	q := withStatus(listQuery(page, models.DefaultPageSize), string(status))
	if err := s.api.Get(ctx, "/orders", q, &out); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return &out, nil
}

// Order fetches one order with its items
func (s *DataService) Order(ctx context.Context, orderID int64) (*models.Order, error) {
	var out models.Order
	if err := s.api.Get(ctx, idPath("/orders/%d", orderID), nil, &out); err != nil {
		return nil, fmt.Errorf("get order %d: %w", orderID, err)
	}
	return &out, nil
}

// UpdateOrderStatus moves an order to status
func (s *DataService) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, NewDomainError(ErrorTypeValidation, fmt.Sprintf("unknown order status %q", status), nil)
	}

	var out models.Order
	if err := s.api.Patch(ctx, idPath("/orders/%d/status", orderID), models.OrderStatusUpdate{Status: status}, &out); err != nil {
		return nil, fmt.Errorf("update order %d status: %w", orderID, err)
	}
	s.logger.Info("order status updated", zap.Int64("order_id", orderID), zap.String("status", string(status)))
	return &out, nil
}
