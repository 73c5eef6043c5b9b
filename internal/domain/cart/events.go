package cart

import "time"

// MsgTypeCartChanged is the header type for cart snapshots published to the
// terminal events topic.
const MsgTypeCartChanged = "CartChanged"

// ChangedEvent is the wire form of a cart-changed notification.
type ChangedEvent struct {
	TerminalID string     `json:"terminal_id"`
	Items      []LineItem `json:"items"`
	MemberID   string     `json:"member_id,omitempty"`
	Pricing    Pricing    `json:"pricing"`
	ChangedAt  time.Time  `json:"changed_at"`
}

func NewChangedEvent(snap Snapshot) ChangedEvent {
	ev := ChangedEvent{
		TerminalID: snap.TerminalID,
		Items:      snap.Items,
		Pricing:    snap.Pricing,
		ChangedAt:  time.Now(),
	}
	if snap.Member != nil {
		ev.MemberID = snap.Member.ID
	}
	return ev
}
