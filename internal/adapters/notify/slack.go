// Package notify delivers Slack alerts for hot leads and refresh summaries.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/leadscore/internal/domain/model"
	"github.com/okian/leadscore/pkg/logger"
	"github.com/okian/leadscore/pkg/metrics"
)

const defaultRequestTimeout = 10 * time.Second

// Notifier posts messages to a Slack incoming webhook. Delivery is best
// effort: every method reports success as a bool and never returns an
// error, so a Slack outage cannot fail a scoring cycle.
type Notifier struct {
	webhookURL string
	channel    string
	demo       bool
	httpc      *http.Client
	logger     logger.Logger
	now        func() time.Time
}

// New creates a Slack notifier with configuration options.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		channel: "#sales-alerts",
		httpc:   &http.Client{Timeout: defaultRequestTimeout},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = logger.Get().Named("notify")
	}
	return n
}

// NotifyHotLead sends an alert for a single hot lead. In demo mode the
// alert is logged instead of delivered and counts as a success.
func (n *Notifier) NotifyHotLead(ctx context.Context, score model.LeadScore) bool {
	if n.demo {
		n.logger.Info(ctx, "demo mode, would send hot lead alert",
			logger.String("email", score.Email()),
			logger.Float64("score", score.Score),
		)
		metrics.RecordNotification("hot_lead", true)
		return true
	}
	if n.webhookURL == "" {
		n.logger.Warn(ctx, "slack webhook url not configured")
		metrics.RecordNotification("hot_lead", false)
		return false
	}

	if err := n.post(ctx, hotLeadMessage(n.channel, score, n.now().UTC())); err != nil {
		n.logger.Error(ctx, "sending hot lead alert failed", logger.Error(err))
		metrics.RecordNotification("hot_lead", false)
		return false
	}
	n.logger.Info(ctx, "sent hot lead alert", logger.String("email", score.Email()))
	metrics.RecordNotification("hot_lead", true)
	return true
}

// NotifySummary sends the post-refresh summary with per-tier counts.
func (n *Notifier) NotifySummary(ctx context.Context, total, hot, warm int) bool {
	if n.demo {
		n.logger.Info(ctx, "demo mode, would send score update summary",
			logger.Int("total", total),
			logger.Int("hot", hot),
			logger.Int("warm", warm),
		)
		metrics.RecordNotification("summary", true)
		return true
	}
	if n.webhookURL == "" {
		metrics.RecordNotification("summary", false)
		return false
	}

	if err := n.post(ctx, summaryMessage(n.channel, total, hot, warm, n.now().UTC())); err != nil {
		n.logger.Error(ctx, "sending summary failed", logger.Error(err))
		metrics.RecordNotification("summary", false)
		return false
	}
	n.logger.Info(ctx, "sent score update summary")
	metrics.RecordNotification("summary", true)
	return true
}

func (n *Notifier) post(ctx context.Context, msg slackMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
