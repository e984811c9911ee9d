package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bakerydash/internal/domain"
)

type MySQLOrderItemRepository struct {
	db *sql.DB
}

func NewMySQLOrderItemRepository(db *sql.DB) *MySQLOrderItemRepository {
	return &MySQLOrderItemRepository{db: db}
}

func (r *MySQLOrderItemRepository) Insert(ctx context.Context, tx *sql.Tx, item domain.OrderLineItem) (int64, error) {
	query := `
		INSERT INTO OrderItems (orderId, productName, productRef, laboratory,
		                        unitPriceHT, unitPriceTTC, taxRate, quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query,
		item.OrderID, item.ProductName, item.ProductRef, item.Laboratory,
		item.UnitPriceHT, item.UnitPriceTTC, item.TaxRate, item.Quantity,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting order item: %w", err)
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting last insert id: %w", err)
	}

	return lastInsertID, nil
}

// FindByOrderIDs returns the line items of the given orders keyed by order id,
// each list in insertion order.
func (r *MySQLOrderItemRepository) FindByOrderIDs(ctx context.Context, orderIDs []string) (map[string][]domain.OrderLineItem, error) {
	items := make(map[string][]domain.OrderLineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	placeholders := make([]string, len(orderIDs))
	args := make([]interface{}, len(orderIDs))
	for i, id := range orderIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`
		SELECT id, orderId, productName, productRef, laboratory,
		       unitPriceHT, unitPriceTTC, taxRate, quantity
		FROM OrderItems
		WHERE orderId IN (%s)
		ORDER BY id ASC`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderLineItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductName, &item.ProductRef, &item.Laboratory,
			&item.UnitPriceHT, &item.UnitPriceTTC, &item.TaxRate, &item.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order item row: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}
