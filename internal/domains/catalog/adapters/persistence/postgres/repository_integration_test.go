//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/belandja/commerce-api/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/belandja/commerce-api/internal/domains/catalog/domain"
	"github.com/belandja/commerce-api/internal/domains/catalog/ports"
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

func seedProduct(t *testing.T, repo *catalogpostgres.Repository, id, sku string, qty int) {
	t.Helper()
	_, err := repo.SaveProduct(context.Background(), &domain.Product{
		ID: id, Name: "Robusta Beans", SKU: sku, Price: 25.0, Qty: qty,
	})
	require.NoError(t, err)
}

func TestPostgresCatalog_ProductRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()

	seedProduct(t, repo, "p-1", "RB-01", 10)

	loaded, err := repo.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Robusta Beans", loaded.Name)
	assert.Equal(t, 10, loaded.Qty)
	assert.False(t, loaded.CreatedAt.IsZero())

	loaded.Qty = 7
	updated, err := repo.SaveProduct(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Qty)
	assert.Equal(t, loaded.CreatedAt.Unix(), updated.CreatedAt.Unix())

	err = repo.DeleteProduct(ctx, "p-1")
	require.NoError(t, err)
	_, err = repo.GetProduct(ctx, "p-1")
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestPostgresCatalog_ReserveConditionalDecrement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	seedProduct(t, repo, "p-1", "RB-01", 3)

	require.NoError(t, repo.Reserve(ctx, "p-1", 2))

	err := repo.Reserve(ctx, "p-1", 2)
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)

	err = repo.Reserve(ctx, "missing", 1)
	assert.ErrorIs(t, err, ports.ErrProductNotFound)

	loaded, err := repo.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Qty)
}

func TestPostgresCatalog_ReserveAllRollsBackOnShortfall(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	seedProduct(t, repo, "p-1", "RB-01", 5)
	seedProduct(t, repo, "p-2", "AB-01", 1)

	err := repo.ReserveAll(ctx, []ports.Reservation{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-2", Quantity: 2},
	})
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)

	for id, want := range map[string]int{"p-1": 5, "p-2": 1} {
		loaded, err := repo.GetProduct(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, loaded.Qty)
	}
}

func TestPostgresCatalog_ConcurrentReserveLastUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	seedProduct(t, repo, "p-1", "RB-01", 1)

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Reserve(ctx, "p-1", 1)
		}()
	}
	wg.Wait()
	close(errs)

	var successes int
	for err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ports.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, successes, "only one reservation may win the last unit")

	loaded, err := repo.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Zero(t, loaded.Qty)
}

func TestPostgresCatalog_ReleaseRestoresStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := catalogpostgres.NewRepository(db)
	ctx := context.Background()
	seedProduct(t, repo, "p-1", "RB-01", 3)

	require.NoError(t, repo.Reserve(ctx, "p-1", 2))
	require.NoError(t, repo.Release(ctx, []ports.Reservation{{ProductID: "p-1", Quantity: 2}}))

	loaded, err := repo.GetProduct(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Qty)
}
