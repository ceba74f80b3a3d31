package service

import (
	"context"

	"orders-service/internal/model"

	"github.com/google/uuid"
)

// OrderService defines the order workflow operations.
type OrderService interface {
	// Create validates the referenced products, prices the line items,
	// persists the order atomically, and returns it enriched with product
	// names.
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderResponse, error)

	// FindAll returns one page of orders with pagination metadata. List
	// views are not enriched with product names.
	FindAll(ctx context.Context, query model.ListOrdersQuery) (*model.OrderPage, error)

	// FindOne returns an order with its items enriched with current
	// product names. Prices remain the creation-time snapshot.
	FindOne(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// ChangeStatus transitions an order to the given status. Setting the
	// current status again is a no-op that touches no storage.
	ChangeStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.OrderResponse, error)
}
