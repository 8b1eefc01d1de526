package notify

import (
	"context"
	"encoding/json"
	"testing"
)

func TestEnvelopeRoundTrip(t *testing.T) {
	env, err := NewEnvelope("user-1", EventTransactionUpdate, TransactionEvent{
		TransactionID: "t-1",
		Type:          "expense",
		AmountCents:   2500,
		Action:        ActionCreated,
	})
	if err != nil {
		t.Fatalf("NewEnvelope: %v", err)
	}
	if env.ID == "" || env.Timestamp.IsZero() {
		t.Errorf("envelope missing metadata: %+v", env)
	}

	data, err := env.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := EnvelopeFromJSON(data)
	if err != nil {
		t.Fatalf("EnvelopeFromJSON: %v", err)
	}
	if decoded.OwnerID != "user-1" || decoded.Event != EventTransactionUpdate {
		t.Errorf("unexpected envelope: %+v", decoded)
	}

	var event TransactionEvent
	if err := json.Unmarshal(decoded.Payload, &event); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if event.TransactionID != "t-1" || event.AmountCents != 2500 || event.Action != ActionCreated {
		t.Errorf("unexpected payload: %+v", event)
	}
}

func TestEnvelopeRejectsUnmarshalablePayload(t *testing.T) {
	if _, err := NewEnvelope("user-1", EventDashboardUpdate, make(chan int)); err == nil {
		t.Error("expected marshal error for channel payload")
	}
}

type countingNotifier struct {
	calls int
}

func (c *countingNotifier) Notify(context.Context, string, string, any) {
	c.calls++
}

func TestMultiFansOutAndSkipsNil(t *testing.T) {
	first := &countingNotifier{}
	second := &countingNotifier{}
	m := Multi{first, nil, second}

	m.Notify(context.Background(), "user-1", EventBudgetUpdate, nil)
	m.Notify(context.Background(), "user-1", EventDashboardUpdate, nil)

	if first.calls != 2 || second.calls != 2 {
		t.Errorf("calls = %d/%d, want 2/2", first.calls, second.calls)
	}
}
