package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/example/pos-terminal/internal/catalog"
	"github.com/example/pos-terminal/internal/checkout"
	"github.com/example/pos-terminal/internal/member"
)

// Catalog resolves a scanned product id to its current catalog entry.
type Catalog interface {
	Lookup(ctx context.Context, id string) (catalog.Product, error)
}

// Notifier is told after every state change so a renderer can redraw.
type Notifier interface {
	CartChanged(ctx context.Context, snap Snapshot)
}

// Config carries per-terminal wiring for an Engine.
type Config struct {
	TerminalID     string
	EmployeeID     string
	PaymentMethods []checkout.PaymentMethod
}

// Engine holds the open cart of one POS terminal session.
//
// Mutating operations are serialized on an internal lock. While a checkout
// submission is in flight the engine is "submitting": further mutators wait
// on a condition variable until the submission resolves (scans fired during
// the pay dialog are applied afterwards, not dropped), and a second Checkout
// fails immediately with ErrCheckoutInProgress. The cart is cleared only
// after the submitter confirms acceptance, so a rejected or failed
// submission always leaves the cart intact for retry.
type Engine struct {
	catalog   Catalog
	submitter checkout.Submitter
	notifier  Notifier
	cfg       Config
	accepted  map[checkout.PaymentMethod]bool

	mu         sync.RWMutex
	idle       *sync.Cond // signalled when submitting goes false
	items      []LineItem
	index      map[string]int // productID -> position in items
	member     *member.Member
	submitting bool
}

func NewEngine(cfg Config, cat Catalog, sub checkout.Submitter, notifier Notifier) *Engine {
	if len(cfg.PaymentMethods) == 0 {
		cfg.PaymentMethods = checkout.DefaultPaymentMethods()
	}
	accepted := make(map[checkout.PaymentMethod]bool, len(cfg.PaymentMethods))
	for _, m := range cfg.PaymentMethods {
		accepted[m] = true
	}
	e := &Engine{
		catalog:   cat,
		submitter: sub,
		notifier:  notifier,
		cfg:       cfg,
		accepted:  accepted,
		index:     make(map[string]int),
	}
	e.idle = sync.NewCond(&e.mu)
	return e
}

// AddItem resolves productID against the catalog and either bumps the
// existing line's quantity or appends a new line priced at the catalog's
// current unit price. A lookup miss leaves the cart untouched.
func (e *Engine) AddItem(ctx context.Context, productID string) (Snapshot, error) {
	if strings.TrimSpace(productID) == "" {
		return Snapshot{}, ErrInvalidProduct
	}

	p, err := e.catalog.Lookup(ctx, productID)
	if err != nil {
		return Snapshot{}, err
	}

	e.mu.Lock()
	e.waitIdleLocked()
	if i, ok := e.index[p.ID]; ok {
		e.items[i].Quantity++
	} else {
		e.index[p.ID] = len(e.items)
		e.items = append(e.items, LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.UnitPrice,
			Quantity:  1,
		})
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(ctx, snap)
	return snap, nil
}

// RemoveItem drops the whole line for productID. Removing an id that is not
// in the cart is a no-op, not an error.
func (e *Engine) RemoveItem(ctx context.Context, productID string) Snapshot {
	e.mu.Lock()
	e.waitIdleLocked()
	i, ok := e.index[productID]
	if ok {
		e.items = append(e.items[:i], e.items[i+1:]...)
		delete(e.index, productID)
		for j := i; j < len(e.items); j++ {
			e.index[e.items[j].ProductID] = j
		}
	}
	snap := e.snapshotLocked()
	e.mu.Unlock()

	if ok {
		e.notify(ctx, snap)
	}
	return snap
}

// AttachMember replaces the cart's member reference; nil detaches it. Line
// items are untouched, only pricing changes.
func (e *Engine) AttachMember(ctx context.Context, m *member.Member) Snapshot {
	e.mu.Lock()
	e.waitIdleLocked()
	e.member = m
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(ctx, snap)
	return snap
}

// Clear empties the cart and detaches the member.
func (e *Engine) Clear(ctx context.Context) Snapshot {
	e.mu.Lock()
	e.waitIdleLocked()
	e.clearLocked()
	snap := e.snapshotLocked()
	e.mu.Unlock()

	e.notify(ctx, snap)
	return snap
}

// Totals recomputes pricing from current state. Safe to call concurrently
// with anything, including an in-flight checkout.
func (e *Engine) Totals() Pricing {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Price(e.items, e.member != nil)
}

// Snapshot returns a copy of the current cart state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

// Checkout builds an immutable settlement request from the current cart and
// hands it to the submitter. The cart is cleared only after the submitter
// accepts; on any submission error the cart is left exactly as it was. A
// concurrent Checkout while one is in flight fails with
// ErrCheckoutInProgress instead of double-submitting.
func (e *Engine) Checkout(ctx context.Context, method checkout.PaymentMethod) (checkout.Request, error) {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return checkout.Request{}, ErrCheckoutInProgress
	}
	if len(e.items) == 0 {
		e.mu.Unlock()
		return checkout.Request{}, ErrEmptyCart
	}
	if !e.accepted[method] {
		e.mu.Unlock()
		return checkout.Request{}, fmt.Errorf("%w: %q", ErrInvalidPayment, method)
	}

	items := make([]checkout.Item, len(e.items))
	for i, it := range e.items {
		items[i] = checkout.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	memberID := ""
	if e.member != nil {
		memberID = e.member.ID
	}
	pricing := Price(e.items, e.member != nil)
	req := checkout.NewRequest(e.cfg.TerminalID, e.cfg.EmployeeID, items, memberID, method, pricing.Total)
	e.submitting = true
	e.mu.Unlock()

	err := e.submitter.Submit(ctx, req)

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.idle.Broadcast()
		e.mu.Unlock()
		return checkout.Request{}, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	e.clearLocked()
	snap := e.snapshotLocked()
	e.idle.Broadcast()
	e.mu.Unlock()

	e.notify(ctx, snap)
	return req, nil
}

// waitIdleLocked blocks mutators while a checkout submission is in flight.
// Callers must hold mu.
func (e *Engine) waitIdleLocked() {
	for e.submitting {
		e.idle.Wait()
	}
}

func (e *Engine) clearLocked() {
	e.items = nil
	e.index = make(map[string]int)
	e.member = nil
}

func (e *Engine) snapshotLocked() Snapshot {
	items := make([]LineItem, len(e.items))
	copy(items, e.items)
	var m *member.Member
	if e.member != nil {
		cp := *e.member
		m = &cp
	}
	return Snapshot{
		TerminalID: e.cfg.TerminalID,
		Items:      items,
		Member:     m,
		Pricing:    Price(items, m != nil),
	}
}

func (e *Engine) notify(ctx context.Context, snap Snapshot) {
	if e.notifier != nil {
		e.notifier.CartChanged(ctx, snap)
	}
}
