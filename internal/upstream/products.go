package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bakerydash/internal/domain"
)

type productPayload struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Laboratory      string          `json:"laboratory"`
	Ingredients     []string        `json:"ingredients"`
	UnitPriceHT     decimal.Decimal `json:"unitPriceHT"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	IsActive        bool            `json:"isActive"`
	IsAvailable     bool            `json:"isAvailable"`
	Category        string          `json:"category"`
	ImageURL        *string         `json:"imageUrl,omitempty"`
	PrepTimeMinutes *int            `json:"prepTimeMinutes,omitempty"`
	CreatedBy       string          `json:"createdBy"`
	UpdatedBy       string          `json:"updatedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (p productPayload) toDomain() domain.Product {
	ingredients := p.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return domain.Product{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Laboratory:      p.Laboratory,
		Ingredients:     ingredients,
		UnitPriceHT:     p.UnitPriceHT,
		TaxRate:         p.TaxRate,
		IsActive:        p.IsActive,
		IsAvailable:     p.IsAvailable,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		PrepTimeMinutes: p.PrepTimeMinutes,
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func productFromDomain(p *domain.Product) productPayload {
	return productPayload{
		ID:              p.ID,
		Name:            p.Name,
		Description:     p.Description,
		Laboratory:      p.Laboratory,
		Ingredients:     p.Ingredients,
		UnitPriceHT:     p.UnitPriceHT,
		TaxRate:         p.TaxRate,
		IsActive:        p.IsActive,
		IsAvailable:     p.IsAvailable,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		PrepTimeMinutes: p.PrepTimeMinutes,
		CreatedBy:       p.CreatedBy,
		UpdatedBy:       p.UpdatedBy,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ProductClient manages the product catalogue through the upstream API.
type ProductClient struct {
	client *Client
}

func (c *ProductClient) list(ctx context.Context, query url.Values) ([]domain.Product, error) {
	var payload []productPayload
	if err := c.client.do(ctx, http.MethodGet, "/products", query, nil, &payload); err != nil {
		return nil, err
	}

	products := make([]domain.Product, len(payload))
	for i, p := range payload {
		products[i] = p.toDomain()
	}
	return products, nil
}

func (c *ProductClient) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	if filter.Laboratory != "" {
		query.Set("laboratory", filter.Laboratory)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Active != nil {
		query.Set("active", strconv.FormatBool(*filter.Active))
	}

	products, err := c.list(ctx, query)
	if err != nil {
		return nil, err
	}

	filtered := products[:0]
	for _, p := range products {
		if filter.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (c *ProductClient) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var payload productPayload
	if err := c.client.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, nil, &payload); err != nil {
		return nil, err
	}
	p := payload.toDomain()
	return &p, nil
}

func (c *ProductClient) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	products, err := c.list(ctx, url.Values{"ids": {strings.Join(ids, ",")}})
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	found := products[:0]
	for _, p := range products {
		if _, ok := wanted[p.ID]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (c *ProductClient) Create(ctx context.Context, p *domain.Product) error {
	return c.client.do(ctx, http.MethodPost, "/products", nil, productFromDomain(p), nil)
}

func (c *ProductClient) Update(ctx context.Context, p *domain.Product) error {
	return c.client.do(ctx, http.MethodPut, "/products/"+url.PathEscape(p.ID), nil, productFromDomain(p), nil)
}

func (c *ProductClient) Delete(ctx context.Context, id string) error {
	return c.client.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil, nil)
}
