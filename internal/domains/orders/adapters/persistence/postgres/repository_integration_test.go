//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	orderspostgres "github.com/belandja/commerce-api/internal/domains/orders/adapters/persistence/postgres"
	"github.com/belandja/commerce-api/internal/domains/orders/domain"
	"github.com/belandja/commerce-api/internal/domains/orders/ports"
	"github.com/belandja/commerce-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("commerce_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newOrder(t *testing.T, owner string, total float64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("", total, []domain.OrderItem{
		{ProductID: "p-1", Name: "Robusta Beans", Price: total / 2, Quantity: 2},
	}, owner)
	require.NoError(t, err)
	return order
}

func TestPostgresOrders_InsertRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	order, err := domain.NewOrder("", 80.0, []domain.OrderItem{
		{ProductID: "p-1", Name: "Robusta Beans", Price: 25.0, Quantity: 2},
		{ProductID: "p-2", Name: "Arabica Beans", Price: 30.0, Quantity: 1},
	}, "user-1")
	require.NoError(t, err)

	saved, err := repo.Insert(ctx, order)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)
	assert.False(t, saved.CreatedAt.IsZero())

	// Item order must survive the round trip.
	require.Len(t, saved.Items, 2)
	assert.Equal(t, "p-1", saved.Items[0].ProductID)
	assert.Equal(t, "p-2", saved.Items[1].ProductID)
	assert.Equal(t, 2, saved.Items[0].Quantity)
}

func TestPostgresOrders_FindByOwnerNewestFirst(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		_, err := repo.Insert(ctx, newOrder(t, "user-1", float64((i+1)*10)))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
	_, err := repo.Insert(ctx, newOrder(t, "someone-else", 10.0))
	require.NoError(t, err)

	pageOne, total, err := repo.FindByOwner(ctx, "user-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	require.Len(t, pageOne, 10)
	for i := 1; i < len(pageOne); i++ {
		assert.False(t, pageOne[i].CreatedAt.After(pageOne[i-1].CreatedAt),
			fmt.Sprintf("orders must be newest first at position %d", i))
	}

	pageTwo, _, err := repo.FindByOwner(ctx, "user-1", 2, 10)
	require.NoError(t, err)
	assert.Len(t, pageTwo, 5)

	empty, _, err := repo.FindByOwner(ctx, "user-1", 3, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPostgresOrders_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := orderspostgres.NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Insert(ctx, newOrder(t, "user-1", 50.0))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))

	err = repo.Delete(ctx, saved.ID)
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)

	_, total, err := repo.FindByOwner(ctx, "user-1", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
