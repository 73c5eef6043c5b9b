package pos

import (
	"context"
	"log"

	"github.com/example/pos-terminal/internal/domain/cart"
	"github.com/example/pos-terminal/internal/infrastructure/kafka"
)

// LogNotifier prints cart changes; the default renderer for headless runs.
type LogNotifier struct{}

func (LogNotifier) CartChanged(_ context.Context, snap cart.Snapshot) {
	log.Printf("[POS] terminal %s: %d lines, total %s",
		snap.TerminalID, len(snap.Items), snap.Pricing.Total.StringFixed(2))
}

// KafkaNotifier publishes cart snapshots to the terminal events topic so
// customer-facing displays can redraw.
type KafkaNotifier struct {
	producer *kafka.Producer
}

func NewKafkaNotifier(producer *kafka.Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: producer}
}

func (n *KafkaNotifier) CartChanged(ctx context.Context, snap cart.Snapshot) {
	ev := cart.NewChangedEvent(snap)
	if err := n.producer.Publish(ctx, snap.TerminalID, cart.MsgTypeCartChanged, ev); err != nil {
		// Display updates are best effort; the cart itself is unaffected.
		log.Printf("[POS] publish cart change for %s: %v", snap.TerminalID, err)
	}
}

// Notifiers fans a change out to several notifiers.
type Notifiers []cart.Notifier

func (ns Notifiers) CartChanged(ctx context.Context, snap cart.Snapshot) {
	for _, n := range ns {
		n.CartChanged(ctx, snap)
	}
}
