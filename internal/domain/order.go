package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusInProgress       OrderStatus = "IN_PROGRESS"
	OrderStatusReadyForDelivery OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusInTransit        OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusFailed           OrderStatus = "FAILED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress:       {OrderStatusReadyForDelivery, OrderStatusCancelled},
	OrderStatusReadyForDelivery: {OrderStatusInTransit, OrderStatusDelivered},
	OrderStatusInTransit:        {OrderStatusDelivered, OrderStatusFailed},
	OrderStatusFailed:           {OrderStatusInTransit},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusReadyForDelivery,
		OrderStatusInTransit, OrderStatusDelivered, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

// AllStatuses is the status query keyword that disables status filtering.
const AllStatuses = "ALL"

// ParseStatusFilter reads a status query value, case-insensitively. An empty
// value selects fallback and AllStatuses selects every status (""). The
// second result is false for unknown statuses.
func ParseStatusFilter(raw string, fallback OrderStatus) (OrderStatus, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	switch raw {
	case "":
		return fallback, true
	case AllStatuses:
		return "", true
	}

	status := OrderStatus(raw)
	return status, status.Valid()
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID                 string
	Reference          string
	BakeryName         string
	DeliveryPersonID   string
	DeliveryPersonName string
	ScheduledDate      time.Time
	DeliveredAt        *time.Time
	Status             OrderStatus
	Notes              string
	DeliveryAddress    string
	Items              []OrderLineItem
	TotalHT            decimal.Decimal
	TotalTVA           decimal.Decimal
	TotalTTC           decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RecomputeTotals derives every line total and then the order totals from
// unit prices, tax rates and quantities.
func (o *Order) RecomputeTotals() {
	o.TotalHT = decimal.Zero
	o.TotalTVA = decimal.Zero
	o.TotalTTC = decimal.Zero
	for i := range o.Items {
		o.Items[i].ComputeTotals()
		o.TotalHT = o.TotalHT.Add(o.Items[i].TotalHT)
		o.TotalTVA = o.TotalTVA.Add(o.Items[i].TotalTVA)
		o.TotalTTC = o.TotalTTC.Add(o.Items[i].TotalTTC)
	}
}

// TotalsConsistent reports whether the order totals equal the sum of its line totals.
func (o Order) TotalsConsistent() bool {
	ht, tva, ttc := decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range o.Items {
		ht = ht.Add(item.TotalHT)
		tva = tva.Add(item.TotalTVA)
		ttc = ttc.Add(item.TotalTTC)
	}
	return ht.Equal(o.TotalHT) && tva.Equal(o.TotalTVA) && ttc.Equal(o.TotalTTC)
}

func (o Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}

type OrderLineItem struct {
	ID           int64
	OrderID      string
	ProductName  string
	ProductRef   *string
	Laboratory   string
	UnitPriceHT  decimal.Decimal
	UnitPriceTTC decimal.Decimal
	TaxRate      decimal.Decimal
	Quantity     int
	TotalHT      decimal.Decimal
	TotalTVA     decimal.Decimal
	TotalTTC     decimal.Decimal
}

// ComputeTotals fills the line totals with exact decimals. Rounding to the
// cent happens only when amounts are rendered.
func (li *OrderLineItem) ComputeTotals() {
	qty := decimal.NewFromInt(int64(li.Quantity))
	li.TotalHT = li.UnitPriceHT.Mul(qty)
	li.TotalTVA = li.TotalHT.Mul(li.TaxRate)
	li.TotalTTC = li.TotalHT.Add(li.TotalTVA)
	if li.UnitPriceTTC.IsZero() {
		li.UnitPriceTTC = li.UnitPriceHT.Add(li.UnitPriceHT.Mul(li.TaxRate)).Round(2)
	}
}

type OrderFilter struct {
	Status           OrderStatus
	BakeryName       string
	DeliveryPersonID string
}

func (f OrderFilter) Matches(o Order) bool {
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.BakeryName != "" && o.BakeryName != f.BakeryName {
		return false
	}
	if f.DeliveryPersonID != "" && o.DeliveryPersonID != f.DeliveryPersonID {
		return false
	}
	return true
}

// StatusUpdate moves an order from one status to another. Stores apply it
// only while the order is still in From.
type StatusUpdate struct {
	From        OrderStatus
	To          OrderStatus
	Notes       *string
	DeliveredAt *time.Time
}
