// Package settlement turns accepted checkout submissions into persisted
// bills, member point awards and printable receipts.
package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/example/pos-terminal/internal/checkout"
	"github.com/example/pos-terminal/internal/infrastructure/store"
	"github.com/example/pos-terminal/internal/member"
	"github.com/example/pos-terminal/internal/receipt"
)

// BillSaver persists a settlement request. The bool result reports whether
// the bill was newly written (false: already settled, skip side effects).
type BillSaver interface {
	Save(ctx context.Context, req checkout.Request) (bool, error)
}

// Handler processes settlement messages from the bills topic.
type Handler struct {
	bills   BillSaver
	members member.Directory
}

func NewHandler(bills BillSaver, members member.Directory) *Handler {
	return &Handler{bills: bills, members: members}
}

// HandleMessage is the Kafka consumer callback.
func (h *Handler) HandleMessage(ctx context.Context, msgType string, key, value []byte) error {
	if msgType != "" && msgType != checkout.MsgTypeSettlement {
		return nil
	}

	var req checkout.Request
	if err := json.Unmarshal(value, &req); err != nil {
		log.Printf("[Receipts] bad settlement payload for key %s: %v", key, err)
		return err
	}

	return h.settle(ctx, req)
}

func (h *Handler) settle(ctx context.Context, req checkout.Request) error {
	created, err := h.bills.Save(ctx, req)
	if err != nil {
		return err
	}
	if !created {
		log.Printf("[Receipts] bill %s already settled, skipping", req.ID)
		return nil
	}

	if req.MemberID != "" {
		points := member.PointsEarned(req.Total)
		m, err := h.members.AddPoints(ctx, req.MemberID, points)
		switch {
		case errors.Is(err, member.ErrNotFound):
			log.Printf("[Receipts] bill %s names unknown member %s", req.ID, req.MemberID)
		case err != nil:
			return err
		default:
			log.Printf("[Receipts] member %s earned %d points (now %d, tier %s)",
				m.ID, points, m.Points, m.Tier)
		}
	}

	log.Printf("[Receipts] settled bill %s\n%s", req.ID, receipt.Render(billFromRequest(req)))
	return nil
}

func billFromRequest(req checkout.Request) store.Bill {
	items := make([]store.BillItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = store.BillItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		}
	}
	return store.Bill{
		ID:            req.ID,
		TerminalID:    req.TerminalID,
		EmployeeID:    req.EmployeeID,
		MemberID:      req.MemberID,
		PaymentMethod: string(req.PaymentMethod),
		Total:         req.Total,
		CreatedAt:     req.CreatedAt,
		Items:         items,
	}
}
