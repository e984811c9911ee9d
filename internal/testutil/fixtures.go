package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	"bakerydash/internal/domain"
)

// LineItem builds a line item with its totals already derived.
func LineItem(product string, quantity int, unitPriceHT, taxRate string) domain.OrderLineItem {
	item := domain.OrderLineItem{
		ProductName: product,
		Laboratory:  "Labo Central",
		UnitPriceHT: decimal.RequireFromString(unitPriceHT),
		TaxRate:     decimal.RequireFromString(taxRate),
		Quantity:    quantity,
	}
	item.ComputeTotals()
	return item
}

// Order builds an order whose totals match its line items.
func Order(id, bakery string, status domain.OrderStatus, items ...domain.OrderLineItem) domain.Order {
	order := domain.Order{
		ID:              id,
		Reference:       "CMD-" + id,
		BakeryName:      bakery,
		ScheduledDate:   time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC),
		Status:          status,
		DeliveryAddress: "1 place du Marché",
		Items:           items,
	}
	order.RecomputeTotals()
	return order
}
