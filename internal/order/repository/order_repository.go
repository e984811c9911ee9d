package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"bakerydash/internal/domain"
	"bakerydash/internal/errors"
)

const orderColumns = `
	id, reference, bakeryName, deliveryPersonId, deliveryPersonName,
	scheduledDate, deliveredAt, status, notes, deliveryAddress, createdAt, updatedAt`

type MySQLOrderRepository struct {
	db    *sql.DB
	items *MySQLOrderItemRepository
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db, items: NewMySQLOrderItemRepository(db)}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order domain.Order
		notes sql.NullString
	)
	err := row.Scan(
		&order.ID, &order.Reference, &order.BakeryName, &order.DeliveryPersonID, &order.DeliveryPersonName,
		&order.ScheduledDate, &order.DeliveredAt, &order.Status, &notes, &order.DeliveryAddress,
		&order.CreatedAt, &order.UpdatedAt,
	)
	order.Notes = notes.String
	return order, err
}

func (r *MySQLOrderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.BakeryName != "" {
		conditions = append(conditions, "bakeryName = ?")
		args = append(args, filter.BakeryName)
	}
	if filter.DeliveryPersonID != "" {
		conditions = append(conditions, "deliveryPersonId = ?")
		args = append(args, filter.DeliveryPersonID)
	}

	query := "SELECT " + orderColumns + " FROM Orders"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY scheduledDate ASC, reference ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order rows: %w", err)
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := "SELECT " + orderColumns + " FROM Orders WHERE id = ?"

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}

	orders := []domain.Order{order}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// attachItems loads the line items of every order and derives the totals.
func (r *MySQLOrderRepository) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := r.items.FindByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		orders[i].RecomputeTotals()
	}
	return nil
}

// Create inserts the order and its line items in a single transaction.
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO Orders (id, reference, bakeryName, deliveryPersonId, deliveryPersonName,
		                    scheduledDate, deliveredAt, status, notes, deliveryAddress)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = tx.ExecContext(ctx, query,
		order.ID, order.Reference, order.BakeryName, order.DeliveryPersonID, order.DeliveryPersonName,
		order.ScheduledDate, order.DeliveredAt, order.Status, order.Notes, order.DeliveryAddress,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		id, err := r.items.Insert(ctx, tx, order.Items[i])
		if err != nil {
			return err
		}
		order.Items[i].ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}
	return nil
}

// UpdateStatus applies update only if the order is still in update.From.
func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) error {
	sets := []string{"status = ?"}
	args := []interface{}{update.To}
	if update.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *update.Notes)
	}
	if update.DeliveredAt != nil {
		sets = append(sets, "deliveredAt = ?")
		args = append(args, *update.DeliveredAt)
	}
	args = append(args, id, update.From)

	query := "UPDATE Orders SET " + strings.Join(sets, ", ") + " WHERE id = ? AND status = ?"

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		var current domain.OrderStatus
		err := r.db.QueryRowContext(ctx, "SELECT status FROM Orders WHERE id = ?", id).Scan(&current)
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
		}
		if err != nil {
			return fmt.Errorf("querying order status: %w", err)
		}
		return errors.NewConflictError(fmt.Sprintf("order %s is %s, not %s", id, current, update.From))
	}

	return nil
}
