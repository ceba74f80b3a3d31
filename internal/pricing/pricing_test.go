package pricing

import (
	"errors"
	"testing"

	"orders-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Success(t *testing.T) {
	items := []model.OrderItemRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	products := []model.Product{
		{ID: 1, Name: "A", Price: 10},
		{ID: 2, Name: "B", Price: 5},
	}

	totals, err := Aggregate(items, products)

	require.NoError(t, err)
	assert.Equal(t, 25.0, totals.TotalAmount)
	assert.Equal(t, 3, totals.TotalItems)
	require.Len(t, totals.Items, 2)
	assert.Equal(t, int64(1), totals.Items[0].ProductID)
	assert.Equal(t, 10.0, totals.Items[0].Price)
	assert.Equal(t, 2, totals.Items[0].Quantity)
	assert.Equal(t, int64(2), totals.Items[1].ProductID)
	assert.Equal(t, 5.0, totals.Items[1].Price)
}

func TestAggregate_UsesValidatedPrices(t *testing.T) {
	// A single product referenced twice with different quantities still
	// prices both lines from the same validated record.
	items := []model.OrderItemRequest{
		{ProductID: 7, Quantity: 1},
		{ProductID: 7, Quantity: 4},
	}
	products := []model.Product{
		{ID: 7, Name: "Widget", Price: 2.5},
	}

	totals, err := Aggregate(items, products)

	require.NoError(t, err)
	assert.Equal(t, 12.5, totals.TotalAmount)
	assert.Equal(t, 5, totals.TotalItems)
}

func TestAggregate_MissingProduct(t *testing.T) {
	items := []model.OrderItemRequest{
		{ProductID: 1, Quantity: 1},
		{ProductID: 99, Quantity: 1},
	}
	products := []model.Product{
		{ID: 1, Name: "A", Price: 10},
	}

	totals, err := Aggregate(items, products)

	require.Error(t, err)
	assert.Nil(t, totals)
	assert.True(t, errors.Is(err, model.ErrProductNotFound))
	assert.Contains(t, err.Error(), "99")
}

func TestAggregate_EmptyValidationResponse(t *testing.T) {
	items := []model.OrderItemRequest{
		{ProductID: 99, Quantity: 1},
	}

	totals, err := Aggregate(items, nil)

	require.Error(t, err)
	assert.Nil(t, totals)
	assert.True(t, errors.Is(err, model.ErrProductNotFound))
}

func TestAggregate_NoItems(t *testing.T) {
	totals, err := Aggregate(nil, []model.Product{{ID: 1, Price: 10}})

	require.NoError(t, err)
	assert.Equal(t, 0.0, totals.TotalAmount)
	assert.Equal(t, 0, totals.TotalItems)
	assert.Empty(t, totals.Items)
}
