package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"orders-service/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and returns a connected pool.
func setupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// createOrderSchema creates the order tables used by the repository tests.
func createOrderSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	schema := `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			total_amount DECIMAL(10,2) NOT NULL CHECK (total_amount >= 0),
			total_items INTEGER NOT NULL CHECK (total_items >= 0),
			status TEXT NOT NULL DEFAULT 'PENDING',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			price DECIMAL(10,2) NOT NULL CHECK (price >= 0)
		);
	`

	_, err := pool.Exec(context.Background(), schema)
	require.NoError(t, err)
}

func setupOrderTestDB(t *testing.T) (OrderRepository, *pgxpool.Pool, func()) {
	pool, cleanup := setupTestDB(t)
	createOrderSchema(t, pool)
	repo := NewOrderRepository(pool, zerolog.Nop())
	return repo, pool, cleanup
}

func TestOrderRepository_Create(t *testing.T) {
	repo, pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	ctx := context.Background()

	items := []model.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 10},
		{ProductID: 2, Quantity: 1, Price: 5},
	}

	order, err := repo.Create(ctx, 25, 3, items)

	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, 25.0, order.TotalAmount)
	assert.Equal(t, 3, order.TotalItems)
	assert.Equal(t, model.StatusPending, order.Status)
	require.Len(t, order.Items, 2)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotEqual(t, uuid.Nil, item.ID)
	}

	// Both the order row and every item row must exist.
	var orderCount, itemCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orderCount))
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items WHERE order_id = $1`, order.ID).Scan(&itemCount))
	assert.Equal(t, 1, orderCount)
	assert.Equal(t, 2, itemCount)
}

func TestOrderRepository_Create_RollbackOnItemFailure(t *testing.T) {
	repo, pool, cleanup := setupOrderTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Zero quantity violates the items CHECK constraint, so the whole
	// transaction must roll back and leave no order row behind.
	items := []model.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 10},
		{ProductID: 2, Quantity: 0, Price: 5},
	}

	order, err := repo.Create(ctx, 20, 2, items)

	require.Error(t, err)
	assert.Nil(t, order)

	var orderCount, itemCount int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&orderCount))
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM order_items`).Scan(&itemCount))
	assert.Equal(t, 0, orderCount)
	assert.Equal(t, 0, itemCount)
}

func TestOrderRepository_GetByID(t *testing.T) {
	repo, _, cleanup := setupOrderTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created, err := repo.Create(ctx, 25, 3, []model.OrderItem{
		{ProductID: 1, Quantity: 2, Price: 10},
		{ProductID: 2, Quantity: 1, Price: 5},
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 25.0, got.TotalAmount)
	assert.Equal(t, 3, got.TotalItems)
	assert.Equal(t, model.StatusPending, got.Status)
	require.Len(t, got.Items, 2)
}

func TestOrderRepository_GetByID_NotFound(t *testing.T) {
	repo, _, cleanup := setupOrderTestDB(t)
	defer cleanup()

	got, err := repo.GetByID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, model.ErrOrderNotFound))
}

func TestOrderRepository_CountAndList(t *testing.T) {
	repo, _, cleanup := setupOrderTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, 10, 1, []model.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
		require.NoError(t, err)
	}
	delivered, err := repo.Create(ctx, 10, 1, []model.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, delivered.ID, model.StatusDelivered)
	require.NoError(t, err)

	total, err := repo.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	pending := model.StatusPending
	pendingTotal, err := repo.Count(ctx, &pending)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pendingTotal)

	all, err := repo.List(ctx, nil, 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	// List views carry no items.
	for _, o := range all {
		assert.Empty(t, o.Items)
	}

	deliveredStatus := model.StatusDelivered
	filtered, err := repo.List(ctx, &deliveredStatus, 10, 0)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, delivered.ID, filtered[0].ID)

	paged, err := repo.List(ctx, nil, 2, 2)
	require.NoError(t, err)
	assert.Len(t, paged, 2)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo, _, cleanup := setupOrderTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created, err := repo.Create(ctx, 10, 1, []model.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}})
	require.NoError(t, err)

	updated, err := repo.UpdateStatus(ctx, created.ID, model.StatusDelivered)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, model.StatusDelivered, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	// Items are untouched by a status update.
	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 10.0, got.Items[0].Price)
}

func TestOrderRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, _, cleanup := setupOrderTestDB(t)
	defer cleanup()

	updated, err := repo.UpdateStatus(context.Background(), uuid.New(), model.StatusDelivered)

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.True(t, errors.Is(err, model.ErrOrderNotFound))
}
