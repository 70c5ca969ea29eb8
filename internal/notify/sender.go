package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/slack-go/slack"
)

// RequestIDHeader carries a unique id on every webhook POST so deliveries
// can be matched against receiver logs.
const RequestIDHeader = "X-Request-Id"

// Sender defines the interface for delivering a message to one webhook.
type Sender interface {
	// Send performs a single POST of msg to url.
	Send(ctx context.Context, url string, msg Message) error
}

// NewWebhookSender creates a Sender that posts Slack-compatible JSON payloads.
// A zero timeout leaves the HTTP client unbounded; ctx still applies.
func NewWebhookSender(timeout time.Duration) Sender {
	return &webhookSender{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &requestIDTransport{base: http.DefaultTransport},
		},
	}
}

// webhookSender posts messages through slack-go's incoming webhook client.
type webhookSender struct {
	client *http.Client
}

func (s *webhookSender) Send(ctx context.Context, target string, msg Message) error {
	err := slack.PostWebhookCustomHTTPContext(ctx, target, s.client, &slack.WebhookMessage{
		Text: msg.Text,
	})
	// net/http errors quote the full URL, secret path included.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("posting webhook: %w", &url.Error{
			Op:  urlErr.Op,
			URL: RedactURL(urlErr.URL),
			Err: urlErr.Err,
		})
	}
	return err
}

// requestIDTransport stamps each outgoing request with a fresh request id.
type requestIDTransport struct {
	base http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return t.base.RoundTrip(req)
}
