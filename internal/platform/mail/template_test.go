package mail

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type invoiceOrderItem struct {
	Name     string
	Price    float64
	Quantity int
	Subtotal float64
}

type invoiceOrder struct {
	ID     string
	Status string
	Items  []invoiceOrderItem
}

func TestRenderTemplate_Invoice(t *testing.T) {
	content, err := RenderTemplate("invoice.html", map[string]any{
		"CompanyName":  "Belandja",
		"CustomerName": "Jane Roe",
		"ContactEmail": "cropnesia@gmail.com",
		"Year":         2026,
		"GrandTotal":   20.0,
		"Order": invoiceOrder{
			ID:     "ord-1",
			Status: "pending",
			Items: []invoiceOrderItem{
				{Name: "Arabica Beans", Price: 10, Quantity: 2, Subtotal: 20},
			},
		},
	})
	require.NoError(t, err)
	require.Contains(t, content, "Belandja")
	require.Contains(t, content, "Jane Roe")
	require.Contains(t, content, "Arabica Beans")
	require.Contains(t, content, "20.00")
}

func TestRenderTemplate_UnknownTemplate(t *testing.T) {
	_, err := RenderTemplate("missing.html", nil)
	require.Error(t, err)
}
