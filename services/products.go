package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/supplykz/supplier-console/models"
)

// MyProducts lists the supplier's products, optionally only active or inactive ones
func (s *DataService) MyProducts(ctx context.Context, page models.PageRequest, isActive *bool) (*models.Page[models.Product], error) {
	var out models.Page[models.Product]
	q := listQuery(page, models.DefaultPageSize)
	if isActive != nil {
		q.Set("is_active", strconv.FormatBool(*isActive))
	}
	if err := s.api.Get(ctx, "/products/me", q, &out); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &out, nil
}

// CreateProduct adds a product to the catalog
func (s *DataService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := s.api.Post(ctx, "/products", input, &out); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("product created", zap.Int64("product_id", out.ID))
	return &out, nil
}

// UpdateProduct replaces a product's fields
func (s *DataService) UpdateProduct(ctx context.Context, productID int64, input models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := s.api.Put(ctx, idPath("/products/%d", productID), input, &out); err != nil {
		return nil, fmt.Errorf("update product %d: %w", productID, err)
	}
	return &out, nil
}

// DeleteProduct removes a product from the catalog
func (s *DataService) DeleteProduct(ctx context.Context, productID int64) error {
	if err := s.api.Delete(ctx, idPath("/products/%d", productID), nil); err != nil {
		return fmt.Errorf("delete product %d: %w", productID, err)
	}
	s.logger.Info("product deleted", zap.Int64("product_id", productID))
	return nil
}
