package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"bakerydash/internal/domain"
)

type orderPayload struct {
	ID                 string            `json:"id"`
	Reference          string            `json:"reference"`
	BakeryName         string            `json:"bakeryName"`
	DeliveryPersonID   string            `json:"deliveryPersonId,omitempty"`
	DeliveryPersonName string            `json:"deliveryPersonName,omitempty"`
	ScheduledDate      time.Time         `json:"scheduledDate"`
	DeliveredAt        *time.Time        `json:"deliveredAt"`
	Status             string            `json:"status"`
	Notes              string            `json:"notes"`
	DeliveryAddress    string            `json:"deliveryAddress"`
	Items              []lineItemPayload `json:"items"`
	TotalHT            decimal.Decimal   `json:"totalHT"`
	TotalTVA           decimal.Decimal   `json:"totalTVA"`
	TotalTTC           decimal.Decimal   `json:"totalTTC"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

type lineItemPayload struct {
	ProductName  string          `json:"productName"`
	ProductRef   *string         `json:"productRef,omitempty"`
	Laboratory   string          `json:"laboratory"`
	UnitPriceHT  decimal.Decimal `json:"unitPriceHT"`
	UnitPriceTTC decimal.Decimal `json:"unitPriceTTC"`
	TaxRate      decimal.Decimal `json:"taxRate"`
	Quantity     int             `json:"quantity"`
}

type statusPayload struct {
	Status         string     `json:"status"`
	ExpectedStatus string     `json:"expectedStatus"`
	Notes          *string    `json:"notes,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}

// toDomain converts the payload and re-derives every total from the line
// items so totals never drift from their lines.
func (p orderPayload) toDomain() domain.Order {
	order := domain.Order{
		ID:                 p.ID,
		Reference:          p.Reference,
		BakeryName:         p.BakeryName,
		DeliveryPersonID:   p.DeliveryPersonID,
		DeliveryPersonName: p.DeliveryPersonName,
		ScheduledDate:      p.ScheduledDate,
		DeliveredAt:        p.DeliveredAt,
		Status:             domain.OrderStatus(p.Status),
		Notes:              p.Notes,
		DeliveryAddress:    p.DeliveryAddress,
		Items:              make([]domain.OrderLineItem, len(p.Items)),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	for i, item := range p.Items {
		order.Items[i] = domain.OrderLineItem{
			OrderID:      p.ID,
			ProductName:  item.ProductName,
			ProductRef:   item.ProductRef,
			Laboratory:   item.Laboratory,
			UnitPriceHT:  item.UnitPriceHT,
			UnitPriceTTC: item.UnitPriceTTC,
			TaxRate:      item.TaxRate,
			Quantity:     item.Quantity,
		}
	}
	order.RecomputeTotals()
	return order
}

func orderFromDomain(o *domain.Order) orderPayload {
	p := orderPayload{
		ID:                 o.ID,
		Reference:          o.Reference,
		BakeryName:         o.BakeryName,
		DeliveryPersonID:   o.DeliveryPersonID,
		DeliveryPersonName: o.DeliveryPersonName,
		ScheduledDate:      o.ScheduledDate,
		DeliveredAt:        o.DeliveredAt,
		Status:             string(o.Status),
		Notes:              o.Notes,
		DeliveryAddress:    o.DeliveryAddress,
		Items:              make([]lineItemPayload, len(o.Items)),
		TotalHT:            o.TotalHT,
		TotalTVA:           o.TotalTVA,
		TotalTTC:           o.TotalTTC,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	for i, item := range o.Items {
		p.Items[i] = lineItemPayload{
			ProductName:  item.ProductName,
			ProductRef:   item.ProductRef,
			Laboratory:   item.Laboratory,
			UnitPriceHT:  item.UnitPriceHT,
			UnitPriceTTC: item.UnitPriceTTC,
			TaxRate:      item.TaxRate,
			Quantity:     item.Quantity,
		}
	}
	return p
}

// OrderClient reads and writes orders through the upstream API.
type OrderClient struct {
	client *Client
}

func (c *OrderClient) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.BakeryName != "" {
		query.Set("bakeryName", filter.BakeryName)
	}
	if filter.DeliveryPersonID != "" {
		query.Set("deliveryPersonId", filter.DeliveryPersonID)
	}

	var payload []orderPayload
	if err := c.client.do(ctx, http.MethodGet, "/orders", query, nil, &payload); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(payload))
	for _, p := range payload {
		o := p.toDomain()
		if filter.Matches(o) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (c *OrderClient) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	var payload orderPayload
	if err := c.client.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	order := payload.toDomain()
	return &order, nil
}

func (c *OrderClient) Create(ctx context.Context, order *domain.Order) error {
	var created orderPayload
	if err := c.client.do(ctx, http.MethodPost, "/orders", nil, orderFromDomain(order), &created); err != nil {
		return err
	}
	if created.ID != "" {
		order.ID = created.ID
	}
	if created.Reference != "" {
		order.Reference = created.Reference
	}
	return nil
}

// UpdateStatus sends the expected current status along so the upstream can
// refuse a stale transition with 409.
func (c *OrderClient) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	body := statusPayload{
		Status:         string(update.To),
		ExpectedStatus: string(update.From),
		Notes:          update.Notes,
		DeliveredAt:    update.DeliveredAt,
	}
	return c.client.do(ctx, http.MethodPatch, "/orders/"+url.PathEscape(id)+"/status", nil, body, nil)
}
