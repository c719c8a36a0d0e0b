package models

import (
	"encoding/json"
	"fmt"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusRejected   OrderStatus = "rejected"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusAccepted, OrderStatusRejected},
	OrderStatusAccepted:   {OrderStatusInProgress},
	OrderStatusInProgress: {OrderStatusCompleted},
}

// NextStatuses lists the statuses an order may move to from s
func (s OrderStatus) NextStatuses() []OrderStatus {
	return orderTransitions[s]
}

// CanTransitionTo returns true if next is a legal successor of s
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// IsValid returns true for statuses the backend recognises
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusInProgress, OrderStatusCompleted, OrderStatusRejected:
		return true
	}
	return false
}

// ProductSummary is the abbreviated product nested in order items
type ProductSummary struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// OrderItem is a single line of an order
type OrderItem struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPriceKZT json.Number     `json:"unit_price_kzt"`
	Product      *ProductSummary `json:"product,omitempty"`
}

// Order is a consumer order placed with the supplier
type Order struct {
	ID         int64       `json:"id"`
	ConsumerID int64       `json:"consumer_id"`
	SupplierID int64       `json:"supplier_id"`
	Status     OrderStatus `json:"status"`
	TotalKZT   json.Number `json:"total_kzt"`
	CreatedAt  Timestamp   `json:"created_at"`
	Items      []OrderItem `json:"items,omitempty"`
	Consumer   *Consumer   `json:"consumer,omitempty"`
}

// Number returns the human facing order reference
func (o *Order) Number() string {
	return fmt.Sprintf("ORD-%d", o.ID)
}

// ConsumerName returns the consumer's display name
func (o *Order) ConsumerName() string {
	return ConsumerDisplayName(o.Consumer, o.ConsumerID)
}

// Total returns the order total as a float, 0 if unparseable
func (o *Order) Total() float64 {
	f, err := o.TotalKZT.Float64()
	if err != nil {
		return 0
	}
	return f
}

// OrderStatusUpdate is the body of PATCH /orders/{id}/status
type OrderStatusUpdate struct {
	Status OrderStatus `json:"status"`
}
