package dto

import (
	"bakerydash/internal/domain"
	"bakerydash/internal/recap"
)

type BakeryRecapDTO struct {
	BakeryName   string         `json:"bakeryName"`
	OrderCount   int            `json:"orderCount"`
	ArticleCount int            `json:"articleCount"`
	TotalAmount  float64        `json:"totalAmount"`
	Products     map[string]int `json:"products"`
}

type ProductRecapDTO struct {
	ProductName   string  `json:"productName"`
	ProductRef    *string `json:"productRef,omitempty"`
	TotalQuantity int     `json:"totalQuantity"`
	OrderCount    int     `json:"orderCount"`
}

type BakeryRecapResponse struct {
	Status   string           `json:"status"`
	Bakeries []BakeryRecapDTO `json:"bakeries"`
	Summary  RecapSummaryDTO  `json:"summary"`
}

type ProductRecapResponse struct {
	Status   string            `json:"status,omitempty"`
	Products []ProductRecapDTO `json:"products"`
}

type RecapSummaryDTO struct {
	BakeryCount  int     `json:"bakeryCount"`
	OrderCount   int     `json:"orderCount"`
	ProductCount int     `json:"productCount"`
	ItemCount    int     `json:"itemCount"`
	TotalAmount  float64 `json:"totalAmount"`
}

func NewBakeryRecapResponse(status domain.OrderStatus, bakeries []recap.BakeryRecap, summary recap.Summary) BakeryRecapResponse {
	response := BakeryRecapResponse{
		Status:   string(status),
		Bakeries: make([]BakeryRecapDTO, len(bakeries)),
		Summary: RecapSummaryDTO{
			BakeryCount:  summary.BakeryCount,
			OrderCount:   summary.OrderCount,
			ProductCount: summary.ProductCount,
			ItemCount:    summary.ItemCount,
			TotalAmount:  Money(summary.TotalAmount),
		},
	}
	for i, b := range bakeries {
		response.Bakeries[i] = BakeryRecapDTO{
			BakeryName:   b.BakeryName,
			OrderCount:   b.OrderCount,
			ArticleCount: b.ArticleCount,
			TotalAmount:  Money(b.TotalAmount),
			Products:     b.Products,
		}
	}
	return response
}

func NewProductRecapResponse(status domain.OrderStatus, products []recap.ProductRecap) ProductRecapResponse {
	response := ProductRecapResponse{
		Status:   string(status),
		Products: make([]ProductRecapDTO, len(products)),
	}
	for i, p := range products {
		response.Products[i] = ProductRecapDTO{
			ProductName:   p.ProductName,
			ProductRef:    p.ProductRef,
			TotalQuantity: p.TotalQuantity,
			OrderCount:    p.OrderCount,
		}
	}
	return response
}
