package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateOrderRequest struct {
	BakeryName      string            `json:"bakeryName"`
	ScheduledDate   time.Time         `json:"scheduledDate"`
	DeliveryAddress string            `json:"deliveryAddress"`
	Notes           string            `json:"notes"`
	Items           []CreateOrderItem `json:"items"`
}

type CreateOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

type OrderDTO struct {
	ID                 string             `json:"id"`
	Reference          string             `json:"reference"`
	BakeryName         string             `json:"bakeryName"`
	DeliveryPersonID   string             `json:"deliveryPersonId,omitempty"`
	DeliveryPersonName string             `json:"deliveryPersonName,omitempty"`
	ScheduledDate      time.Time          `json:"scheduledDate"`
	DeliveredAt        *time.Time         `json:"deliveredAt"`
	Status             string             `json:"status"`
	Notes              string             `json:"notes"`
	DeliveryAddress    string             `json:"deliveryAddress"`
	Items              []OrderLineItemDTO `json:"items"`
	TotalHT            float64            `json:"totalHT"`
	TotalTVA           float64            `json:"totalTVA"`
	TotalTTC           float64            `json:"totalTTC"`
}

type OrderLineItemDTO struct {
	ProductName  string  `json:"productName"`
	ProductRef   *string `json:"productRef,omitempty"`
	Laboratory   string  `json:"laboratory"`
	UnitPriceHT  float64 `json:"unitPriceHT"`
	UnitPriceTTC float64 `json:"unitPriceTTC"`
	TaxRate      float64 `json:"taxRate"`
	Quantity     int     `json:"quantity"`
	TotalHT      float64 `json:"totalHT"`
	TotalTVA     float64 `json:"totalTVA"`
	TotalTTC     float64 `json:"totalTTC"`
}

type OrderListResponse struct {
	Orders []OrderDTO `json:"orders"`
	Count  int        `json:"count"`
}

// Money converts an exact amount to the two-decimal float sent to clients.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
