package notify

import (
	"net/http"
	"time"

	"github.com/okian/leadscore/pkg/logger"
)

// Option applies a configuration option to the Notifier.
type Option func(*Notifier)

// WithWebhookURL sets the Slack incoming-webhook URL. Without one the
// notifier reports every delivery as failed.
func WithWebhookURL(url string) Option {
	return func(n *Notifier) {
		n.webhookURL = url
	}
}

// WithChannel overrides the destination channel.
func WithChannel(channel string) Option {
	return func(n *Notifier) {
		if channel != "" {
			n.channel = channel
		}
	}
}

// WithDemoMode toggles demo mode; alerts are logged instead of delivered.
func WithDemoMode(demo bool) Option {
	return func(n *Notifier) {
		n.demo = demo
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(n *Notifier) {
		if httpc != nil {
			n.httpc = httpc
		}
	}
}

// WithLogger sets a custom logger for the notifier.
func WithLogger(l logger.Logger) Option {
	return func(n *Notifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithNow injects the clock used for attachment timestamps.
func WithNow(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}
