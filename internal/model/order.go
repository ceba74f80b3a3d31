package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatusValues lists every accepted status, in lifecycle order.
var OrderStatusValues = []OrderStatus{StatusPending, StatusDelivered, StatusCancelled}

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatusValues {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order represents a persisted purchase record. TotalAmount and TotalItems
// are derived from the line items at creation time and never set by callers.
type Order struct {
	ID          uuid.UUID   `json:"id" db:"id"`
	TotalAmount float64     `json:"totalAmount" db:"total_amount"`
	TotalItems  int         `json:"totalItems" db:"total_items"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
	Items       []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderItem is a line item snapshot. Price is the product's price at
// order-creation time; it is never re-read from the product service.
type OrderItem struct {
	ID        uuid.UUID `json:"-" db:"id"`
	OrderID   uuid.UUID `json:"-" db:"order_id"`
	ProductID int64     `json:"productId" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Price     float64   `json:"price" db:"price"`
}

// CreateOrderRequest is the request payload for creating an order.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// OrderItemRequest is a single requested line item.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// ChangeOrderStatusRequest is the request payload for a status transition.
type ChangeOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}

// ListOrdersQuery holds the pagination and filter parameters for listings.
type ListOrdersQuery struct {
	Page   int
	Limit  int
	Status *OrderStatus
}

// Offset returns the row offset for the requested page.
func (q ListOrdersQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// OrderItemResponse is a line item joined with the product's current name.
type OrderItemResponse struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name,omitempty"`
}

// OrderResponse is an order rendered with enriched line items.
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	TotalAmount float64             `json:"totalAmount"`
	TotalItems  int                 `json:"totalItems"`
	Status      OrderStatus         `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
	Items       []OrderItemResponse `json:"items"`
}

// ListMeta is the pagination metadata returned with listings.
type ListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"lastPage"`
}

// OrderPage is one page of orders. List views carry no product names.
type OrderPage struct {
	Data []Order  `json:"data"`
	Meta ListMeta `json:"meta"`
}
