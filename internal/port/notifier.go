package port

import "context"

// Notifier delivers pipeline events to the external automation webhook.
// Delivery is best effort: implementations may retry once, log failures, and
// must never block pricing on notification success.
type Notifier interface {
	Notify(ctx context.Context, event string, payload map[string]interface{}) error
}
