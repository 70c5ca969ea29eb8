// Package notify delivers release announcements to incoming-webhook endpoints.
package notify

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// DefaultTimeout is the per-request timeout for webhook POSTs.
const DefaultTimeout = 10 * time.Second

// ErrNoWebhook is returned when a notification is requested with no target URL.
var ErrNoWebhook = errors.New("no webhook URL configured")

// Message is the envelope posted to a webhook. It carries a single text field,
// serialized as {"text": "..."}.
type Message struct {
	Text string
}

// Config holds the delivery settings for a Notifier.
type Config struct {
	// WebhookURLs receive one POST each per notification.
	WebhookURLs []string `yaml:"webhook_urls" json:"webhook_urls"`

	// Timeout bounds each POST. Zero disables the client timeout.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// Compose wraps a changelog entry with the optional leading and trailing
// messages. Empty before/after text still contributes its separators.
func Compose(before, entry, after string) string {
	return before + "\n\n" + entry + "\n\n" + after + "\n"
}

// SendError reports a failed delivery to one webhook.
type SendError struct {
	// URL is the redacted target; webhook URLs embed secrets.
	URL string
	Err error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("sending to %s: %v", e.URL, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}

// RedactURL keeps only the scheme and host of a webhook URL.
// Slack-style webhook paths are bearer secrets and must not be logged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "<invalid url>"
	}
	if u.Path == "" || u.Path == "/" {
		return u.Scheme + "://" + u.Host
	}
	return u.Scheme + "://" + u.Host + "/…"
}
