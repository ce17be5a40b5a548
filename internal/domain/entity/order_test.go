package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestOrder_ComputeTotal(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{ProductID: strPtr("p1"), Quantity: 2, Price: decimal.RequireFromString("50.25")},
		{ProductID: strPtr("p2"), Quantity: 1, Price: decimal.RequireFromString("10")},
	}}
	assert.True(t, decimal.RequireFromString("110.5").Equal(o.ComputeTotal()))
}

func TestOrder_ProductIDs_SinRepetirYSinEliminados(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{ProductID: strPtr("p1"), Quantity: 1},
		{ProductID: nil, Quantity: 3},
		{ProductID: strPtr("p2"), Quantity: 1},
		{ProductID: strPtr("p1"), Quantity: 4},
	}}
	assert.Equal(t, []string{"p1", "p2"}, o.ProductIDs())
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Paid", "Packed", "Shipped", "Delivered", "Cancelled"} {
		assert.True(t, IsValidOrderStatus(s), s)
	}
	assert.False(t, IsValidOrderStatus("pending"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestAddress_String(t *testing.T) {
	a := Address{Street: "12 MG Road", City: "Jaipur", State: " ", Zip: "302001"}
	assert.Equal(t, "12 MG Road, Jaipur, 302001", a.String())
}
