package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Employee struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// EmployeeStore holds the staff accounts that sign in at the terminals.
type EmployeeStore struct {
	db *sql.DB
}

func NewEmployeeStore(db *sql.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

func (s *EmployeeStore) GetByUsername(ctx context.Context, username string) (Employee, error) {
	var e Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, name, role, password_hash FROM employees WHERE username = $1`,
		username).
		Scan(&e.ID, &e.Username, &e.Name, &e.Role, &e.PasswordHash)
	if err == sql.ErrNoRows {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, fmt.Errorf("get employee %s: %w", username, err)
	}
	return e, nil
}

func (s *EmployeeStore) GetByID(ctx context.Context, id string) (Employee, error) {
	var e Employee
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, name, role, password_hash FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.Username, &e.Name, &e.Role, &e.PasswordHash)
	if err == sql.ErrNoRows {
		return Employee{}, ErrEmployeeNotFound
	}
	if err != nil {
		return Employee{}, fmt.Errorf("get employee %s: %w", id, err)
	}
	return e, nil
}

func (s *EmployeeStore) Create(ctx context.Context, e Employee) (Employee, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO employees (id, username, name, role, password_hash)
		 VALUES ($1, $2, $3, $4, $5)`,
		e.ID, e.Username, e.Name, e.Role, e.PasswordHash)
	if err != nil {
		return Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return e, nil
}
