package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/pos-terminal/internal/checkout"
)

var ErrBillNotFound = errors.New("bill not found")

type Bill struct {
	ID            string          `json:"id"`
	TerminalID    string          `json:"terminal_id"`
	EmployeeID    string          `json:"employee_id"`
	MemberID      string          `json:"member_id,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []BillItem      `json:"items"`
}

type BillItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// BillStore persists settled checkouts.
type BillStore struct {
	db *sql.DB
}

func NewBillStore(db *sql.DB) *BillStore {
	return &BillStore{db: db}
}

// Save writes a settlement request as a bill with its items in one
// transaction. Saving the same request id twice is a no-op, so a replayed
// settlement message cannot duplicate a bill.
func (s *BillStore) Save(ctx context.Context, req checkout.Request) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin bill tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bills (id, terminal_id, employee_id, member_id, payment_method, total, created_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)
		 ON CONFLICT (id) DO NOTHING`,
		req.ID, req.TerminalID, req.EmployeeID, req.MemberID, req.PaymentMethod, req.Total, req.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert bill %s: %w", req.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Already settled; skip items and point awards.
		return false, nil
	}

	for _, it := range req.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bill_items (bill_id, product_id, name, unit_price, quantity)
			 VALUES ($1, $2, $3, $4, $5)`,
			req.ID, it.ProductID, it.Name, it.UnitPrice, it.Quantity)
		if err != nil {
			return false, fmt.Errorf("insert bill item %s/%s: %w", req.ID, it.ProductID, err)
		}
		// Scanned quantities leave the shelf.
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = GREATEST(stock - $2, 0) WHERE id = $1`,
			it.ProductID, it.Quantity)
		if err != nil {
			return false, fmt.Errorf("decrement stock for %s: %w", it.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit bill %s: %w", req.ID, err)
	}
	return true, nil
}

func (s *BillStore) Get(ctx context.Context, id string) (Bill, error) {
	var b Bill
	var memberID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, terminal_id, employee_id, member_id, payment_method, total, created_at
		 FROM bills WHERE id = $1`, id).
		Scan(&b.ID, &b.TerminalID, &b.EmployeeID, &memberID, &b.PaymentMethod, &b.Total, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return Bill{}, ErrBillNotFound
	}
	if err != nil {
		return Bill{}, fmt.Errorf("get bill %s: %w", id, err)
	}
	b.MemberID = memberID.String

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id, name, unit_price, quantity FROM bill_items WHERE bill_id = $1`, id)
	if err != nil {
		return Bill{}, fmt.Errorf("get bill items %s: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var it BillItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.UnitPrice, &it.Quantity); err != nil {
			return Bill{}, err
		}
		b.Items = append(b.Items, it)
	}
	return b, rows.Err()
}

func (s *BillStore) Recent(ctx context.Context, limit int) ([]Bill, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, terminal_id, employee_id, member_id, payment_method, total, created_at
		 FROM bills ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()

	var bills []Bill
	for rows.Next() {
		var b Bill
		var memberID sql.NullString
		if err := rows.Scan(&b.ID, &b.TerminalID, &b.EmployeeID, &memberID, &b.PaymentMethod, &b.Total, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.MemberID = memberID.String
		bills = append(bills, b)
	}
	return bills, rows.Err()
}
