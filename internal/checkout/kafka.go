package checkout

import (
	"context"
	"fmt"

	"github.com/example/pos-terminal/internal/infrastructure/kafka"
)

// MsgTypeSettlement is the header type for settlement requests on the bills
// topic.
const MsgTypeSettlement = "SettlementRequested"

// KafkaSubmitter publishes settlement requests to the bills topic. The
// producer requires full broker acks, so a nil error from Submit means the
// request is durably queued for the receipts worker.
type KafkaSubmitter struct {
	producer *kafka.Producer
}

func NewKafkaSubmitter(producer *kafka.Producer) *KafkaSubmitter {
	return &KafkaSubmitter{producer: producer}
}

func (s *KafkaSubmitter) Submit(ctx context.Context, req Request) error {
	if err := s.producer.Publish(ctx, req.ID, MsgTypeSettlement, req); err != nil {
		return fmt.Errorf("publish settlement %s: %w", req.ID, err)
	}
	return nil
}
