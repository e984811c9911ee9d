package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID              string
	Name            string
	Description     string
	Laboratory      string
	Ingredients     []string
	UnitPriceHT     decimal.Decimal
	TaxRate         decimal.Decimal
	IsActive        bool
	IsAvailable     bool
	Category        string
	ImageURL        *string
	PrepTimeMinutes *int
	CreatedBy       string
	UpdatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Product) UnitPriceTTC() decimal.Decimal {
	return p.UnitPriceHT.Add(p.UnitPriceHT.Mul(p.TaxRate)).Round(2)
}

// Orderable reports whether bakeries can currently order the product.
func (p Product) Orderable() bool {
	return p.IsActive && p.IsAvailable
}

type ProductFilter struct {
	Laboratory string
	Category   string
	Active     *bool
}

func (f ProductFilter) Matches(p Product) bool {
	if f.Laboratory != "" && p.Laboratory != f.Laboratory {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Active != nil && p.IsActive != *f.Active {
		return false
	}
	return true
}
