package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/belandja/commerce-api/internal/domains/orders/domain"
)

func insertOrder(t *testing.T, repo *Repository, owner string, total float64) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("", total, []domain.OrderItem{
		{ProductID: "p-1", Name: "Robusta Beans", Price: total, Quantity: 1},
	}, owner)
	require.NoError(t, err)
	saved, err := repo.Insert(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestInsert_AssignsIDAndTimestamps(t *testing.T) {
	repo := NewRepository()
	saved := insertOrder(t, repo, "user-1", 25.0)
	require.NotEmpty(t, saved.ID)
	require.False(t, saved.CreatedAt.IsZero())
	require.Equal(t, saved.CreatedAt, saved.UpdatedAt)
}

func TestFindByOwner_NewestFirstPagination(t *testing.T) {
	repo := NewRepository()
	const count = 25
	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		saved := insertOrder(t, repo, "user-1", float64(i+1))
		ids = append(ids, saved.ID)
	}
	insertOrder(t, repo, "someone-else", 10.0)

	page, total, err := repo.FindByOwner(context.Background(), "user-1", 2, 10)
	require.NoError(t, err)
	require.Equal(t, int64(count), total)
	require.Len(t, page, 10)

	// Page 2 of a newest-first listing holds inserts 15 down to 6.
	for i, order := range page {
		wantID := ids[count-1-10-i]
		require.Equal(t, wantID, order.ID, fmt.Sprintf("position %d", i))
	}
}

func TestFindByOwner_PastLastPageIsEmpty(t *testing.T) {
	repo := NewRepository()
	insertOrder(t, repo, "user-1", 25.0)

	page, total, err := repo.FindByOwner(context.Background(), "user-1", 3, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Empty(t, page)
}

func TestFindByOwner_ScopedToOwner(t *testing.T) {
	repo := NewRepository()
	insertOrder(t, repo, "user-1", 25.0)
	insertOrder(t, repo, "user-2", 30.0)

	page, total, err := repo.FindByOwner(context.Background(), "user-2", 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, page, 1)
	require.Equal(t, "user-2", page[0].CreatedBy)
}
