package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/belandja/commerce-api/internal/domains/catalog/ports"
)

func TestLockOrder_SortsByProduct(t *testing.T) {
	items := []ports.Reservation{
		{ProductID: "p-3", Quantity: 1},
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-2", Quantity: 3},
	}

	sorted := lockOrder(items)

	require.Equal(t, []ports.Reservation{
		{ProductID: "p-1", Quantity: 2},
		{ProductID: "p-2", Quantity: 3},
		{ProductID: "p-3", Quantity: 1},
	}, sorted)
	// The caller's batch keeps its request order.
	require.Equal(t, "p-3", items[0].ProductID)
}
