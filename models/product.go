package models

import "encoding/json"

// Product is a catalog entry owned by the supplier
type Product struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Currency    string      `json:"currency"`
	SKU         string      `json:"sku"`
	StockQty    int         `json:"stock_qty"`
	IsActive    bool        `json:"is_active"`
	SupplierID  int64       `json:"supplier_id"`
	CreatedAt   Timestamp   `json:"created_at"`
}

// ProductInput is the body of POST /products and PUT /products/{id}
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description string  `json:"description,omitempty" validate:"max=2000"`
	Price       float64 `json:"price" validate:"gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3,alpha"`
	SKU         string  `json:"sku,omitempty" validate:"max=64"`
	StockQty    int     `json:"stock_qty" validate:"gte=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
}
