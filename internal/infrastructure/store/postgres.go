package store

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the store's tables if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			unit TEXT,
			category_id TEXT REFERENCES categories(id)
		)`,
		`CREATE TABLE IF NOT EXISTS members (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT NOT NULL UNIQUE,
			tier TEXT NOT NULL DEFAULT 'normal',
			points INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			role TEXT NOT NULL,
			password_hash TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bills (
			id TEXT PRIMARY KEY,
			terminal_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			member_id TEXT,
			payment_method TEXT NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bill_items (
			bill_id TEXT NOT NULL REFERENCES bills(id),
			product_id TEXT NOT NULL,
			name TEXT NOT NULL,
			unit_price NUMERIC(10,2) NOT NULL,
			quantity INTEGER NOT NULL,
			PRIMARY KEY (bill_id, product_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bills_created_at ON bills (created_at)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
