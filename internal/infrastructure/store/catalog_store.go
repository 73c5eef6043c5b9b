package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/example/pos-terminal/internal/catalog"
)

// CatalogStore implements catalog.Store on PostgreSQL.
type CatalogStore struct {
	db *sql.DB
}

func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

func (s *CatalogStore) Lookup(ctx context.Context, id string) (catalog.Product, error) {
	var p catalog.Product
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit_price, stock, COALESCE(unit, ''), COALESCE(category_id, '')
		 FROM products WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.Unit, &p.CategoryID)
	if err == sql.ErrNoRows {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, fmt.Errorf("lookup product %s: %w", id, err)
	}
	return p, nil
}

func (s *CatalogStore) List(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit_price, stock, COALESCE(unit, ''), COALESCE(category_id, '')
		 FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var p catalog.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.UnitPrice, &p.Stock, &p.Unit, &p.CategoryID); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *CatalogStore) Create(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO products (id, name, unit_price, stock, unit, category_id)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''))`,
		p.ID, p.Name, p.UnitPrice, p.Stock, p.Unit, p.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.Product{}, catalog.ErrCategoryUnknown
		}
		return catalog.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *CatalogStore) Update(ctx context.Context, p catalog.Product) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET name = $2, unit_price = $3, stock = $4,
		 unit = NULLIF($5, ''), category_id = NULLIF($6, '')
		 WHERE id = $1`,
		p.ID, p.Name, p.UnitPrice, p.Stock, p.Unit, p.CategoryID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return catalog.ErrCategoryUnknown
		}
		return fmt.Errorf("update product %s: %w", p.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

// Delete removes a product, unless it still has stock: then the stock is
// zeroed and the row kept, so historical bills stay resolvable.
func (s *CatalogStore) Delete(ctx context.Context, id string) (catalog.DeleteOutcome, error) {
	var stock int
	err := s.db.QueryRowContext(ctx, `SELECT stock FROM products WHERE id = $1`, id).Scan(&stock)
	if err == sql.ErrNoRows {
		return catalog.DeleteOutcome{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.DeleteOutcome{}, fmt.Errorf("delete product %s: %w", id, err)
	}

	if stock > 0 {
		_, err := s.db.ExecContext(ctx, `UPDATE products SET stock = 0 WHERE id = $1`, id)
		if err != nil {
			return catalog.DeleteOutcome{}, fmt.Errorf("zero stock for %s: %w", id, err)
		}
		return catalog.DeleteOutcome{Action: "stock_zero"}, nil
	}

	_, err = s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return catalog.DeleteOutcome{}, fmt.Errorf("delete product %s: %w", id, err)
	}
	return catalog.DeleteOutcome{Action: "deleted"}, nil
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code.Name() == "foreign_key_violation"
}

func (s *CatalogStore) Categories(ctx context.Context) ([]catalog.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []catalog.Category
	for rows.Next() {
		var c catalog.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
