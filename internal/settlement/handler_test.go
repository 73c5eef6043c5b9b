package settlement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pos-terminal/internal/checkout"
	"github.com/example/pos-terminal/internal/member"
)

type mockBills struct {
	saved   []checkout.Request
	created bool
	err     error
}

func (m *mockBills) Save(_ context.Context, req checkout.Request) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.saved = append(m.saved, req)
	return m.created, nil
}

type mockDirectory struct {
	awards map[string]int
	err    error
}

func (m *mockDirectory) Find(context.Context, string) (member.Member, error) {
	return member.Member{}, member.ErrNotFound
}
func (m *mockDirectory) Get(context.Context, string) (member.Member, error) {
	return member.Member{}, member.ErrNotFound
}
func (m *mockDirectory) List(context.Context) ([]member.Member, error) { return nil, nil }
func (m *mockDirectory) Create(_ context.Context, mm member.Member) (member.Member, error) {
	return mm, nil
}
func (m *mockDirectory) AddPoints(_ context.Context, id string, points int) (member.Member, error) {
	if m.err != nil {
		return member.Member{}, m.err
	}
	if m.awards == nil {
		m.awards = make(map[string]int)
	}
	m.awards[id] += points
	return member.Member{ID: id, Points: m.awards[id], Tier: member.TierForPoints(m.awards[id])}, nil
}

func settlementMessage(t *testing.T, req checkout.Request) []byte {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return data
}

func testRequest(memberID string) checkout.Request {
	return checkout.Request{
		ID:            "req-1",
		TerminalID:    "term-1",
		EmployeeID:    "emp-1",
		MemberID:      memberID,
		PaymentMethod: checkout.PaymentCash,
		Total:         decimal.RequireFromString("50.00"),
		Items: []checkout.Item{
			{ProductID: "p-milk", Name: "Milk 1L", UnitPrice: decimal.RequireFromString("25.00"), Quantity: 2},
		},
	}
}

func TestHandleMessage_SavesBillAndAwardsPoints(t *testing.T) {
	bills := &mockBills{created: true}
	dir := &mockDirectory{}
	h := NewHandler(bills, dir)

	err := h.HandleMessage(context.Background(), checkout.MsgTypeSettlement,
		[]byte("req-1"), settlementMessage(t, testRequest("m-1")))

	require.NoError(t, err)
	require.Len(t, bills.saved, 1)
	assert.Equal(t, 500, dir.awards["m-1"])
}

func TestHandleMessage_NoMemberNoPoints(t *testing.T) {
	bills := &mockBills{created: true}
	dir := &mockDirectory{}
	h := NewHandler(bills, dir)

	err := h.HandleMessage(context.Background(), checkout.MsgTypeSettlement,
		[]byte("req-1"), settlementMessage(t, testRequest("")))

	require.NoError(t, err)
	assert.Empty(t, dir.awards)
}

func TestHandleMessage_DuplicateSkipsPoints(t *testing.T) {
	bills := &mockBills{created: false}
	dir := &mockDirectory{}
	h := NewHandler(bills, dir)

	err := h.HandleMessage(context.Background(), checkout.MsgTypeSettlement,
		[]byte("req-1"), settlementMessage(t, testRequest("m-1")))

	require.NoError(t, err)
	assert.Empty(t, dir.awards)
}

func TestHandleMessage_UnknownMemberIsTolerated(t *testing.T) {
	bills := &mockBills{created: true}
	dir := &mockDirectory{err: member.ErrNotFound}
	h := NewHandler(bills, dir)

	err := h.HandleMessage(context.Background(), checkout.MsgTypeSettlement,
		[]byte("req-1"), settlementMessage(t, testRequest("m-ghost")))

	assert.NoError(t, err)
}

func TestHandleMessage_SaveErrorPropagates(t *testing.T) {
	bills := &mockBills{err: errors.New("db down")}
	h := NewHandler(bills, &mockDirectory{})

	err := h.HandleMessage(context.Background(), checkout.MsgTypeSettlement,
		[]byte("req-1"), settlementMessage(t, testRequest("")))

	assert.Error(t, err)
}

func TestHandleMessage_IgnoresOtherMessageTypes(t *testing.T) {
	bills := &mockBills{created: true}
	h := NewHandler(bills, &mockDirectory{})

	err := h.HandleMessage(context.Background(), "CartChanged", []byte("term-1"), []byte(`{}`))

	require.NoError(t, err)
	assert.Empty(t, bills.saved)
}

func TestHandleMessage_BadPayload(t *testing.T) {
	h := NewHandler(&mockBills{created: true}, &mockDirectory{})

	err := h.HandleMessage(context.Background(), checkout.MsgTypeSettlement,
		[]byte("req-1"), []byte("{not json"))

	assert.Error(t, err)
}
