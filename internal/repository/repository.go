package repository

import (
	"context"

	"orders-service/internal/model"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create persists an order and its line items as one atomic unit.
	// Either the order row and every item row exist, or none do.
	Create(ctx context.Context, totalAmount float64, totalItems int, items []model.OrderItem) (*model.Order, error)

	// Count returns the number of orders, optionally filtered by status.
	Count(ctx context.Context, status *model.OrderStatus) (int64, error)

	// List retrieves a page of orders without their items, optionally
	// filtered by status.
	List(ctx context.Context, status *model.OrderStatus, limit, offset int) ([]model.Order, error)

	// GetByID retrieves an order with its items, or model.ErrOrderNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// UpdateStatus sets a new status on a single order row and returns the
	// updated order, or model.ErrOrderNotFound. Items are untouched.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
}
