package service

import (
	"context"
	"errors"
	"fmt"

	"orders-service/internal/events"
	"orders-service/internal/model"
	"orders-service/internal/pricing"
	"orders-service/internal/product"
	"orders-service/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService. It composes the repository, the
// product validation client, and the event publisher; it owns no storage
// lifecycle of its own.
type orderService struct {
	orderRepo repository.OrderRepository
	products  product.Validator
	publisher events.Publisher
	logger    zerolog.Logger
}

// NewOrderService creates a new order workflow service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	products product.Validator,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		products:  products,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create runs the order-creation workflow: validate products, price the
// items, persist atomically, enrich the response with names.
func (s *orderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	productIDs := distinctProductIDs(req.Items)

	products, err := s.products.ValidateProducts(ctx, productIDs)
	if err != nil {
		s.logger.Warn().Err(err).Int("product_count", len(productIDs)).Msg("product validation failed")
		return nil, fmt.Errorf("%w: %w", model.ErrOrderCreation, err)
	}

	names := productNames(products)
	for _, id := range productIDs {
		if _, ok := names[id]; !ok {
			s.logger.Warn().Int64("product_id", id).Msg("requested product missing from validation response")
			return nil, fmt.Errorf("%w: product %d: %w", model.ErrOrderCreation, id, model.ErrProductNotFound)
		}
	}

	totals, err := pricing.Aggregate(req.Items, products)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrOrderCreation, err)
	}

	order, err := s.orderRepo.Create(ctx, totals.TotalAmount, totals.TotalItems, totals.Items)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Float64("total_amount", order.TotalAmount).
		Int("total_items", order.TotalItems).
		Msg("order created")

	s.publish(ctx, events.Event{
		OrderID: order.ID.String(),
		Type:    events.TypeOrderCreated,
		Payload: map[string]any{
			"totalAmount": order.TotalAmount,
			"totalItems":  order.TotalItems,
			"status":      order.Status.String(),
		},
	})

	return toOrderResponse(order, names), nil
}

// FindAll returns a page of orders with listing metadata.
func (s *orderService) FindAll(ctx context.Context, query model.ListOrdersQuery) (*model.OrderPage, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	total, err := s.orderRepo.Count(ctx, query.Status)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count orders")
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	data, err := s.orderRepo.List(ctx, query.Status, query.Limit, query.Offset())
	if err != nil {
		s.logger.Error().Err(err).Int("page", query.Page).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	lastPage := int((total + int64(query.Limit) - 1) / int64(query.Limit))

	return &model.OrderPage{
		Data: data,
		Meta: model.ListMeta{
			Total:    total,
			Page:     query.Page,
			LastPage: lastPage,
		},
	}, nil
}

// FindOne fetches an order and re-validates its products for current names.
func (s *orderService) FindOne(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, fmt.Errorf("order with id %s not found: %w", id, model.ErrOrderNotFound)
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	productIDs := make([]int64, 0, len(order.Items))
	seen := make(map[int64]struct{}, len(order.Items))
	for _, item := range order.Items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			productIDs = append(productIDs, item.ProductID)
		}
	}

	// Names are never cached; every read is a fresh validation round trip.
	products, err := s.products.ValidateProducts(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to enrich order items")
		return nil, fmt.Errorf("failed to enrich order %s: %w", id, err)
	}

	return toOrderResponse(order, productNames(products)), nil
}

// ChangeStatus transitions an order's status, short-circuiting when the
// order is already in the requested state.
func (s *orderService) ChangeStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.OrderResponse, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("status %q: %w", status, model.ErrInvalidStatus)
	}

	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status == status {
		s.logger.Debug().
			Str("order_id", id.String()).
			Str("status", status.String()).
			Msg("order already in requested status")
		return current, nil
	}

	updated, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, model.ErrOrderNotFound) {
			return nil, fmt.Errorf("order with id %s not found: %w", id, model.ErrOrderNotFound)
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", current.Status.String()).
		Str("to", status.String()).
		Msg("order status changed")

	s.publish(ctx, events.Event{
		OrderID: id.String(),
		Type:    events.TypeOrderStatusChanged,
		Payload: map[string]any{
			"from": current.Status.String(),
			"to":   status.String(),
		},
	})

	return toOrderResponse(updated, nil), nil
}

// publish emits an event without affecting the calling operation.
func (s *orderService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", event.OrderID).
			Str("type", event.Type).
			Msg("event publish failed")
	}
}

// distinctProductIDs deduplicates the requested product IDs, preserving
// first-seen order to keep the validation payload small.
func distinctProductIDs(items []model.OrderItemRequest) []int64 {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; !ok {
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}

func productNames(products []model.Product) map[int64]string {
	names := make(map[int64]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	return names
}

// toOrderResponse renders an order, joining each item with its product
// name when one is known.
func toOrderResponse(order *model.Order, names map[int64]string) *model.OrderResponse {
	items := make([]model.OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = model.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      names[item.ProductID],
		}
	}

	return &model.OrderResponse{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
		Items:       items,
	}
}
