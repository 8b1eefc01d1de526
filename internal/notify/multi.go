package notify

import "context"

// Notifier mirrors services.Notifier so sinks can be composed without
// importing the services package.
type Notifier interface {
	Notify(ctx context.Context, ownerID, event string, payload any)
}

// Multi fans one event out to several sinks. Nil entries are skipped; sinks
// handle their own failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ownerID, event string, payload any) {
	for _, n := range m {
		if n == nil {
			continue
		}
		n.Notify(ctx, ownerID, event, payload)
	}
}
