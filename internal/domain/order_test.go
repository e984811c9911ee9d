package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrder_Creation(t *testing.T) {
	scheduled := time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)
	ref := "BAG-01"

	order := Order{
		ID:                 "ord-1",
		Reference:          "CMD-2026-0001",
		BakeryName:         "Saint-Michel",
		DeliveryPersonID:   "drv-7",
		DeliveryPersonName: "Luc",
		ScheduledDate:      scheduled,
		Status:             OrderStatusPending,
		DeliveryAddress:    "12 rue des Fours",
		Items: []OrderLineItem{
			{ProductName: "Baguette", ProductRef: &ref, Quantity: 10},
		},
	}

	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, "Saint-Michel", order.BakeryName)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, scheduled, order.ScheduledDate)
	assert.Nil(t, order.DeliveredAt)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, &ref, order.Items[0].ProductRef)
}

func TestOrderLineItem_ComputeTotals(t *testing.T) {
	item := OrderLineItem{
		ProductName: "Croissant",
		UnitPriceHT: decimal.RequireFromString("0.90"),
		TaxRate:     decimal.RequireFromString("0.055"),
		Quantity:    10,
	}

	item.ComputeTotals()

	assert.True(t, decimal.RequireFromString("9.00").Equal(item.TotalHT))
	assert.True(t, decimal.RequireFromString("0.495").Equal(item.TotalTVA), item.TotalTVA.String())
	assert.True(t, decimal.RequireFromString("9.495").Equal(item.TotalTTC), item.TotalTTC.String())
	assert.True(t, decimal.RequireFromString("0.95").Equal(item.UnitPriceTTC))
}

func TestOrderLineItem_ComputeTotals_TaxIsNotRoundedPerLine(t *testing.T) {
	item := OrderLineItem{
		ProductName: "Chouquette",
		UnitPriceHT: decimal.RequireFromString("0.35"),
		TaxRate:     decimal.RequireFromString("0.055"),
		Quantity:    3,
	}

	item.ComputeTotals()

	assert.True(t, decimal.RequireFromString("1.05").Equal(item.TotalHT), item.TotalHT.String())
	assert.True(t, item.TotalHT.Mul(item.TaxRate).Equal(item.TotalTVA), item.TotalTVA.String())
	assert.True(t, decimal.RequireFromString("0.05775").Equal(item.TotalTVA), item.TotalTVA.String())
	assert.True(t, decimal.RequireFromString("1.10775").Equal(item.TotalTTC), item.TotalTTC.String())
}

func TestOrder_RecomputeTotals_SumsExactLineTaxes(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			{ProductName: "Chouquette", UnitPriceHT: decimal.RequireFromString("0.35"), TaxRate: decimal.RequireFromString("0.055"), Quantity: 3},
			{ProductName: "Chouquette", UnitPriceHT: decimal.RequireFromString("0.35"), TaxRate: decimal.RequireFromString("0.055"), Quantity: 3},
		},
	}

	order.RecomputeTotals()

	// two lines of 0.05775 tax: 0.1155, where per-line cent rounding would give 0.12
	assert.True(t, decimal.RequireFromString("0.1155").Equal(order.TotalTVA), order.TotalTVA.String())
	assert.True(t, decimal.RequireFromString("2.2155").Equal(order.TotalTTC), order.TotalTTC.String())
	assert.True(t, order.TotalsConsistent())
}

func TestOrderLineItem_ComputeTotals_KeepsGivenUnitPriceTTC(t *testing.T) {
	item := OrderLineItem{
		UnitPriceHT:  decimal.RequireFromString("1.00"),
		UnitPriceTTC: decimal.RequireFromString("1.06"),
		TaxRate:      decimal.RequireFromString("0.055"),
		Quantity:     1,
	}

	item.ComputeTotals()

	assert.True(t, decimal.RequireFromString("1.06").Equal(item.UnitPriceTTC))
}

func TestOrder_RecomputeTotals(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			{ProductName: "Baguette", UnitPriceHT: decimal.RequireFromString("1.00"), TaxRate: decimal.RequireFromString("0.055"), Quantity: 10},
			{ProductName: "Croissant", UnitPriceHT: decimal.RequireFromString("0.80"), TaxRate: decimal.RequireFromString("0.20"), Quantity: 5},
		},
	}

	order.RecomputeTotals()

	assert.True(t, decimal.RequireFromString("14.00").Equal(order.TotalHT))
	assert.True(t, decimal.RequireFromString("1.35").Equal(order.TotalTVA), order.TotalTVA.String())
	assert.True(t, decimal.RequireFromString("15.35").Equal(order.TotalTTC))
	assert.True(t, order.TotalsConsistent())
}

func TestOrder_TotalsConsistent_Mismatch(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			{TotalHT: decimal.NewFromInt(10), TotalTVA: decimal.NewFromInt(1), TotalTTC: decimal.NewFromInt(11)},
		},
		TotalHT:  decimal.NewFromInt(10),
		TotalTVA: decimal.NewFromInt(1),
		TotalTTC: decimal.NewFromInt(12),
	}

	assert.False(t, order.TotalsConsistent())
}

func TestOrder_ItemCount(t *testing.T) {
	order := Order{Items: []OrderLineItem{{Quantity: 10}, {Quantity: 5}}}
	assert.Equal(t, 15, order.ItemCount())
	assert.Equal(t, 0, Order{}.ItemCount())
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, OrderStatusPending.Valid())
	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusInProgress, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusInProgress, OrderStatusReadyForDelivery, true},
		{OrderStatusReadyForDelivery, OrderStatusInTransit, true},
		{OrderStatusReadyForDelivery, OrderStatusDelivered, true},
		{OrderStatusInTransit, OrderStatusFailed, true},
		{OrderStatusFailed, OrderStatusInTransit, true},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderFilter_Matches(t *testing.T) {
	order := Order{Status: OrderStatusPending, BakeryName: "Saint-Michel", DeliveryPersonID: "drv-1"}

	assert.True(t, OrderFilter{}.Matches(order))
	assert.True(t, OrderFilter{Status: OrderStatusPending, BakeryName: "Saint-Michel"}.Matches(order))
	assert.False(t, OrderFilter{Status: OrderStatusDelivered}.Matches(order))
	assert.False(t, OrderFilter{BakeryName: "Le Fournil"}.Matches(order))
	assert.False(t, OrderFilter{DeliveryPersonID: "drv-2"}.Matches(order))
}

func TestParseStatusFilter(t *testing.T) {
	tests := []struct {
		raw      string
		fallback OrderStatus
		want     OrderStatus
		ok       bool
	}{
		{raw: "", fallback: OrderStatusPending, want: OrderStatusPending, ok: true},
		{raw: "  ", fallback: "", want: "", ok: true},
		{raw: "all", fallback: OrderStatusPending, want: "", ok: true},
		{raw: "delivered", fallback: OrderStatusPending, want: OrderStatusDelivered, ok: true},
		{raw: "IN_TRANSIT", fallback: "", want: OrderStatusInTransit, ok: true},
		{raw: "shipped", fallback: OrderStatusPending, want: "SHIPPED", ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseStatusFilter(tt.raw, tt.fallback)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}
