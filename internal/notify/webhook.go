package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"certiquote/internal/config"
	"certiquote/internal/port"
)

// webhookNotifier posts pipeline events to the automation webhook as JSON.
// One retry after a fixed delay; a second failure is logged and swallowed so
// pricing never blocks on the automation side being down.
type webhookNotifier struct {
	url        string
	retryDelay time.Duration
	client     *http.Client
}

// NewWebhookNotifier creates a Notifier posting to the configured URL. An
// empty URL yields a notifier that drops every event.
func NewWebhookNotifier(cfg config.WebhookConfig) port.Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &webhookNotifier{
		url:        cfg.URL,
		retryDelay: cfg.RetryDelay,
		client:     &http.Client{Timeout: timeout},
	}
}

func (n *webhookNotifier) Notify(ctx context.Context, event string, payload map[string]interface{}) error {
	if n.url == "" {
		return nil
	}

	body := map[string]interface{}{"event": event}
	for k, v := range payload {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("webhookNotifier.Notify: %w", err)
	}

	if err := n.post(ctx, raw); err != nil {
		log.Printf("webhookNotifier.Notify: %s delivery failed, retrying: %v", event, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(n.retryDelay):
		}
		if err := n.post(ctx, raw); err != nil {
			log.Printf("webhookNotifier.Notify: %s delivery failed after retry: %v", event, err)
		}
	}
	return nil
}

func (n *webhookNotifier) post(ctx context.Context, raw []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}

// JobIDFromQuote derives the short human-facing job reference shown to the
// fulfillment team from a quote id. The hash is stable across services that
// display the same reference.
func JobIDFromQuote(quoteID string) string {
	var h uint32
	for _, c := range quoteID {
		h = h*31 + uint32(c)
	}
	return fmt.Sprintf("CS%05d", h%90000+10000)
}
