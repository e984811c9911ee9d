package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Laboratory      string          `json:"laboratory"`
	Ingredients     []string        `json:"ingredients"`
	UnitPriceHT     decimal.Decimal `json:"unitPriceHT"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	IsActive        *bool           `json:"isActive"`
	IsAvailable     *bool           `json:"isAvailable"`
	Category        string          `json:"category"`
	ImageURL        *string         `json:"imageUrl"`
	PrepTimeMinutes *int            `json:"prepTimeMinutes"`
}

type ProductDTO struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Laboratory      string    `json:"laboratory"`
	Ingredients     []string  `json:"ingredients"`
	UnitPriceHT     float64   `json:"unitPriceHT"`
	UnitPriceTTC    float64   `json:"unitPriceTTC"`
	TaxRate         float64   `json:"taxRate"`
	IsActive        bool      `json:"isActive"`
	IsAvailable     bool      `json:"isAvailable"`
	Category        string    `json:"category"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	PrepTimeMinutes *int      `json:"prepTimeMinutes,omitempty"`
	CreatedBy       string    `json:"createdBy"`
	UpdatedBy       string    `json:"updatedBy"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type ProductListResponse struct {
	Products []ProductDTO `json:"products"`
	Count    int          `json:"count"`
}
