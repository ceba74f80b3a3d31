// Package pricing computes order totals from requested line items and the
// product records returned by the validation round trip.
package pricing

import (
	"fmt"

	"orders-service/internal/model"
)

// Totals is the result of aggregating an order's line items.
type Totals struct {
	TotalAmount float64
	TotalItems  int
	Items       []model.OrderItem
}

// Aggregate prices each requested item against the validated products and
// sums the order totals. Prices always come from the validated products,
// never from the caller. A requested productId with no matching product
// aborts the whole aggregation; partial orders are never produced.
func Aggregate(items []model.OrderItemRequest, products []model.Product) (*Totals, error) {
	byID := make(map[int64]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	totals := &Totals{
		Items: make([]model.OrderItem, 0, len(items)),
	}

	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, model.ErrProductNotFound)
		}

		totals.Items = append(totals.Items, model.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		totals.TotalAmount += product.Price * float64(item.Quantity)
		totals.TotalItems += item.Quantity
	}

	return totals, nil
}
