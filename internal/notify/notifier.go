package notify

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"
)

// maxParallelSends caps concurrent webhook POSTs.
const maxParallelSends = 4

// Notifier delivers a composed message to every configured webhook.
// Each target gets exactly one POST; there are no retries.
type Notifier struct {
	config Config
	sender Sender
}

// NewNotifier creates a Notifier that posts with the default webhook sender.
func NewNotifier(config Config) *Notifier {
	return &Notifier{
		config: config,
		sender: NewWebhookSender(config.Timeout),
	}
}

// NewNotifierWithSender creates a Notifier with a custom sender (for testing).
func NewNotifierWithSender(config Config, sender Sender) *Notifier {
	return &Notifier{
		config: config,
		sender: sender,
	}
}

// Config returns the notifier's delivery configuration.
func (n *Notifier) Config() Config {
	return n.config
}

// Notify sends text to all configured webhooks concurrently.
// It returns ErrNoWebhook when there is nothing to send to. Every target is
// attempted regardless of failures elsewhere; the returned error joins one
// *SendError per failed target, in configuration order.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	if len(n.config.WebhookURLs) == 0 {
		return ErrNoWebhook
	}

	log.Printf("[notify] debug: sending %d bytes to %d webhook(s)", len(text), len(n.config.WebhookURLs))

	msg := Message{Text: text}
	errs := make([]error, len(n.config.WebhookURLs))

	var g errgroup.Group
	g.SetLimit(maxParallelSends)

	for i, url := range n.config.WebhookURLs {
		g.Go(func() error {
			target := RedactURL(url)
			if err := n.sender.Send(ctx, url, msg); err != nil {
				log.Printf("[notify] debug: send to %s failed: %v", target, err)
				errs[i] = &SendError{URL: target, Err: err}
				return nil
			}
			log.Printf("[notify] debug: sent to %s", target)
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
