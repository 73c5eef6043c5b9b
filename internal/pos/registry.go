// Package pos manages the live terminal sessions: one cart engine per open
// cashier session.
package pos

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/pos-terminal/internal/checkout"
	"github.com/example/pos-terminal/internal/domain/cart"
)

var ErrSessionNotFound = errors.New("terminal session not found")

type Session struct {
	ID         string       `json:"id"`
	EmployeeID string       `json:"employee_id"`
	OpenedAt   time.Time    `json:"opened_at"`
	Engine     *cart.Engine `json:"-"`
}

// Registry creates and tracks terminal sessions. Each session owns its cart
// engine, wired to the shared catalog, submitter and notifier.
type Registry struct {
	catalog   cart.Catalog
	submitter checkout.Submitter
	notifier  cart.Notifier
	methods   []checkout.PaymentMethod

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(cat cart.Catalog, sub checkout.Submitter, notifier cart.Notifier, methods []checkout.PaymentMethod) *Registry {
	return &Registry{
		catalog:   cat,
		submitter: sub,
		notifier:  notifier,
		methods:   methods,
		sessions:  make(map[string]*Session),
	}
}

// Open starts a session for an employee and returns it with a fresh engine.
func (r *Registry) Open(employeeID string) *Session {
	id := uuid.New().String()
	s := &Session{
		ID:         id,
		EmployeeID: employeeID,
		OpenedAt:   time.Now(),
		Engine: cart.NewEngine(cart.Config{
			TerminalID:     id,
			EmployeeID:     employeeID,
			PaymentMethods: r.methods,
		}, r.catalog, r.submitter, r.notifier),
	}

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close drops a session. The cart simply disappears with it; an unsettled
// cart is not persisted anywhere.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Count returns the number of open sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
