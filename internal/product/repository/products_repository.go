package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"bakerydash/internal/domain"
	"bakerydash/internal/errors"
)

const productColumns = `
	id, name, description, laboratory, ingredients, unitPriceHT, taxRate,
	isActive, isAvailable, category, imageUrl, prepTimeMinutes,
	createdBy, updatedBy, createdAt, updatedAt`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p           domain.Product
		description sql.NullString
		ingredients []byte
	)
	err := row.Scan(
		&p.ID, &p.Name, &description, &p.Laboratory, &ingredients, &p.UnitPriceHT, &p.TaxRate,
		&p.IsActive, &p.IsAvailable, &p.Category, &p.ImageURL, &p.PrepTimeMinutes,
		&p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return p, err
	}
	p.Description = description.String

	p.Ingredients = []string{}
	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &p.Ingredients); err != nil {
			return p, fmt.Errorf("decoding ingredients of product %s: %w", p.ID, err)
		}
	}
	return p, nil
}

func (r *MySQLRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

func (r *MySQLRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	conditions := []string{"isDeleted = 0"}
	var args []interface{}
	if filter.Laboratory != "" {
		conditions = append(conditions, "laboratory = ?")
		args = append(args, filter.Laboratory)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Active != nil {
		conditions = append(conditions, "isActive = ?")
		args = append(args, *filter.Active)
	}

	query := "SELECT " + productColumns + " FROM Product WHERE " + strings.Join(conditions, " AND ") + " ORDER BY name ASC"
	return r.query(ctx, query, args...)
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM Product WHERE id = ? AND isDeleted = 0"

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}
	return &p, nil
}

func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		"SELECT %s FROM Product WHERE id IN (%s) AND isDeleted = 0 ORDER BY name ASC",
		productColumns, strings.Join(placeholders, ", "),
	)
	return r.query(ctx, query, args...)
}

func (r *MySQLRepository) Create(ctx context.Context, p *domain.Product) error {
	ingredients, err := json.Marshal(nonNil(p.Ingredients))
	if err != nil {
		return fmt.Errorf("encoding ingredients: %w", err)
	}

	query := `
		INSERT INTO Product (id, name, description, laboratory, ingredients, unitPriceHT, taxRate,
		                     isActive, isAvailable, category, imageUrl, prepTimeMinutes,
		                     createdBy, updatedBy, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Laboratory, string(ingredients), p.UnitPriceHT, p.TaxRate,
		p.IsActive, p.IsAvailable, p.Category, p.ImageURL, p.PrepTimeMinutes,
		p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *MySQLRepository) Update(ctx context.Context, p *domain.Product) error {
	ingredients, err := json.Marshal(nonNil(p.Ingredients))
	if err != nil {
		return fmt.Errorf("encoding ingredients: %w", err)
	}

	query := `
		UPDATE Product
		SET name = ?, description = ?, laboratory = ?, ingredients = ?, unitPriceHT = ?, taxRate = ?,
		    isActive = ?, isAvailable = ?, category = ?, imageUrl = ?, prepTimeMinutes = ?,
		    updatedBy = ?, updatedAt = ?
		WHERE id = ? AND isDeleted = 0`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, p.Laboratory, string(ingredients), p.UnitPriceHT, p.TaxRate,
		p.IsActive, p.IsAvailable, p.Category, p.ImageURL, p.PrepTimeMinutes,
		p.UpdatedBy, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	return requireRow(result, p.ID)
}

// Delete soft-deletes the product so existing order lines keep their history.
func (r *MySQLRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE Product SET isDeleted = 1 WHERE id = ? AND isDeleted = 0`, id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	return requireRow(result, id)
}

func requireRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
