package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrCategoryUnknown = errors.New("category not found")
	ErrInvalidName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("price must not be negative")
)

// Product is a catalog entry. UnitPrice is the current shelf price; carts
// snapshot it at scan time, so later price changes do not touch open carts.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Stock      int             `json:"stock"`
	Unit       string          `json:"unit,omitempty"`
	CategoryID string          `json:"category_id"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DeleteOutcome reports what a delete request actually did. A product that
// still has stock is not removed; its stock is zeroed so the row survives for
// historical bills.
type DeleteOutcome struct {
	Action string `json:"action"` // "deleted" or "stock_zero"
}

// Store is the persistence boundary for the product catalog.
type Store interface {
	Lookup(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) error
	Delete(ctx context.Context, id string) (DeleteOutcome, error)
	Categories(ctx context.Context) ([]Category, error)
}
