// Package notify carries user-facing events from the services to their
// consumers: the in-process websocket hub and the AMQP exchange the report
// worker reads from.
package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names consumed by the UI's subscribe channel.
const (
	EventBudgetUpdate      = "budgetUpdate"
	EventTransactionUpdate = "transactionUpdate"
	EventDashboardUpdate   = "dashboardUpdate"
)

// Actions tagged onto transaction events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TransactionEvent is the payload emitted for every successful transaction
// mutation, on all three event channels.
type TransactionEvent struct {
	TransactionID string `json:"transactionId"`
	Type          string `json:"type"`
	AmountCents   int64  `json:"amountCents"`
	Action        string `json:"action"`
}

// BudgetEvent is the payload emitted for budget mutations.
type BudgetEvent struct {
	BudgetID    string `json:"budgetId"`
	CategoryID  string `json:"categoryId"`
	LimitCents  int64  `json:"limitCents"`
	PeriodLabel string `json:"period"`
	Action      string `json:"action"`
}

// Envelope wraps a payload with its routing metadata for the wire.
type Envelope struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"ownerId"`
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEnvelope wraps payload for ownerID. Marshal failures surface as an
// error so publishers can log and drop.
func NewEnvelope(ownerID, event string, payload any) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Event:     event,
		Payload:   body,
		Timestamp: time.Now().UTC(),
	}, nil
}

// ToJSON serializes the envelope for publishing.
func (e *Envelope) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EnvelopeFromJSON deserializes a consumed message.
func EnvelopeFromJSON(data []byte) (*Envelope, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}
