package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentWallet PaymentMethod = "wallet"
)

// DefaultPaymentMethods is the set a terminal accepts unless configured
// otherwise.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard, PaymentWallet}
}

type Item struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// Request is the immutable settlement record built from a cart at the moment
// the cashier confirms payment. It is never mutated after construction; a
// failed submission is retried with a freshly built request.
type Request struct {
	ID            string          `json:"id"`
	TerminalID    string          `json:"terminal_id"`
	EmployeeID    string          `json:"employee_id"`
	Items         []Item          `json:"items"`
	MemberID      string          `json:"member_id,omitempty"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
}

func NewRequest(terminalID, employeeID string, items []Item, memberID string, method PaymentMethod, total decimal.Decimal) Request {
	return Request{
		ID:            uuid.New().String(),
		TerminalID:    terminalID,
		EmployeeID:    employeeID,
		Items:         items,
		MemberID:      memberID,
		PaymentMethod: method,
		Total:         total,
		CreatedAt:     time.Now(),
	}
}

// Submitter hands a settlement request to whatever accepts payments
// downstream. A nil error means the request was durably accepted; any error
// means the cart must stay intact so the cashier can retry.
type Submitter interface {
	Submit(ctx context.Context, req Request) error
}
