package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Summary is the dashboard's headline numbers.
type Summary struct {
	TotalProducts int             `json:"total_products"`
	TotalStock    int             `json:"total_stock"`
	LowStock      int             `json:"low_stock_products"`
	TodayBills    int             `json:"today_bills"`
	TodaySales    decimal.Decimal `json:"today_sales"`
}

const lowStockThreshold = 10

// StatsStore answers dashboard and report queries.
type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(stock), 0),
			COUNT(*) FILTER (WHERE stock < $1)
		 FROM products`, lowStockThreshold).
		Scan(&sum.TotalProducts, &sum.TotalStock, &sum.LowStock)
	if err != nil {
		return Summary{}, fmt.Errorf("product stats: %w", err)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0)
		 FROM bills WHERE created_at >= date_trunc('day', now())`).
		Scan(&sum.TodayBills, &sum.TodaySales)
	if err != nil {
		return Summary{}, fmt.Errorf("bill stats: %w", err)
	}
	return sum, nil
}
