// Package recap folds order lists into the per-bakery production recap and
// the per-product global recap shown on the dashboard and in exports.
//
// Every function here is pure: inputs are never mutated, results are sorted
// by name so they do not depend on the order of the input slice, and money is
// summed with exact decimals.
package recap

import (
	"sort"

	"github.com/shopspring/decimal"

	"bakerydash/internal/domain"
)

type BakeryRecap struct {
	BakeryName   string
	OrderCount   int
	ArticleCount int
	TotalAmount  decimal.Decimal
	Products     map[string]int
}

type ProductRecap struct {
	ProductName   string
	ProductRef    *string
	TotalQuantity int
	OrderCount    int
}

// Bakeries returns the production recap of PENDING orders grouped by bakery.
func Bakeries(orders []domain.Order) []BakeryRecap {
	return BakeriesWithStatus(orders, domain.OrderStatusPending)
}

// BakeriesWithStatus groups the orders in the given status by bakery name.
// An empty status keeps every order.
func BakeriesWithStatus(orders []domain.Order, status domain.OrderStatus) []BakeryRecap {
	groups := make(map[string]*BakeryRecap)

	for _, order := range orders {
		if status != "" && order.Status != status {
			continue
		}

		group, ok := groups[order.BakeryName]
		if !ok {
			group = &BakeryRecap{
				BakeryName:  order.BakeryName,
				TotalAmount: decimal.Zero,
				Products:    make(map[string]int),
			}
			groups[order.BakeryName] = group
		}

		group.OrderCount++
		group.TotalAmount = group.TotalAmount.Add(order.TotalTTC)
		for _, item := range order.Items {
			group.Products[item.ProductName] += item.Quantity
		}
	}

	result := make([]BakeryRecap, 0, len(groups))
	for _, group := range groups {
		group.ArticleCount = len(group.Products)
		result = append(result, *group)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].BakeryName < result[j].BakeryName
	})

	return result
}

// Products groups every line item of the orders by product name.
//
// OrderCount grows by one per matching line item: an order listing the same
// product twice is counted twice.
func Products(orders []domain.Order) []ProductRecap {
	groups := make(map[string]*ProductRecap)

	for _, order := range orders {
		for _, item := range order.Items {
			group, ok := groups[item.ProductName]
			if !ok {
				group = &ProductRecap{ProductName: item.ProductName}
				groups[item.ProductName] = group
			}

			group.TotalQuantity += item.Quantity
			group.OrderCount++
			group.ProductRef = smallestRef(group.ProductRef, item.ProductRef)
		}
	}

	result := make([]ProductRecap, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductName < result[j].ProductName
	})

	return result
}

// smallestRef keeps the lexicographically smallest non-empty reference so the
// chosen reference does not depend on iteration order.
func smallestRef(current, candidate *string) *string {
	if candidate == nil || *candidate == "" {
		return current
	}
	if current == nil || *candidate < *current {
		ref := *candidate
		return &ref
	}
	return current
}

type Summary struct {
	BakeryCount  int
	OrderCount   int
	ProductCount int
	ItemCount    int
	TotalAmount  decimal.Decimal
}

// Totals folds a bakery recap into grand totals.
func Totals(recaps []BakeryRecap) Summary {
	summary := Summary{
		BakeryCount: len(recaps),
		TotalAmount: decimal.Zero,
	}

	products := make(map[string]struct{})
	for _, r := range recaps {
		summary.OrderCount += r.OrderCount
		summary.TotalAmount = summary.TotalAmount.Add(r.TotalAmount)
		for name, qty := range r.Products {
			products[name] = struct{}{}
			summary.ItemCount += qty
		}
	}
	summary.ProductCount = len(products)

	return summary
}

// ProductNames returns the sorted union of product names across the recaps.
func ProductNames(recaps []BakeryRecap) []string {
	seen := make(map[string]struct{})
	for _, r := range recaps {
		for name := range r.Products {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
