package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultWebhookTimeout bounds each webhook POST.
const DefaultWebhookTimeout = 10 * time.Second

// Webhook is a destination that POSTs each delivery as JSON to an HTTP
// endpoint. The payload shape matches chat-service webhooks:
//
//	{"content": "..."}
type Webhook struct {
	url    string
	client *http.Client
}

// WebhookOption configures webhook construction.
type WebhookOption func(*Webhook)

// WithHTTPClient replaces the default client and its timeout policy.
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *Webhook) {
		if client != nil {
			w.client = client
		}
	}
}

// NewWebhook creates a webhook destination posting to url.
func NewWebhook(url string, opts ...WebhookOption) *Webhook {
	w := &Webhook{
		url:    url,
		client: &http.Client{Timeout: DefaultWebhookTimeout},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// URL returns the endpoint the webhook posts to.
func (w *Webhook) URL() string {
	return w.url
}

// Send posts the content. Any non-2xx response is an error.
func (w *Webhook) Send(ctx context.Context, content string) error {
	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}
