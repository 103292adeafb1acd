// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/leadscore/internal/adapters/crm"
	"github.com/okian/leadscore/internal/adapters/notify"
	"github.com/okian/leadscore/internal/config"
	"github.com/okian/leadscore/internal/domain/model"
	"github.com/okian/leadscore/internal/domain/scoring"
	"github.com/okian/leadscore/internal/refresh"
	"github.com/okian/leadscore/pkg/logger"
	"github.com/okian/leadscore/pkg/metrics"
)

// LeadSource supplies the leads to score each refresh cycle.
type LeadSource interface {
	FetchLeads(ctx context.Context, limit int) []model.Lead
	FetchActivities(ctx context.Context, leadID string) []model.Activity
}

// Notifier delivers alerts; implementations report success, never errors.
type Notifier interface {
	NotifyHotLead(ctx context.Context, score model.LeadScore) bool
	NotifySummary(ctx context.Context, total, hot, warm int) bool
}

// Service holds the scored lead set and orchestrates refresh cycles.
// Scores are replaced wholesale per cycle; reads always observe a
// complete, consistently ranked snapshot.
type Service struct {
	mu sync.RWMutex

	cfg      *config.Config
	scorer   *scoring.Scorer
	source   LeadSource
	notifier Notifier
	orch     *refresh.Orchestrator

	// Ranked snapshot, descending by score.
	scores      []model.LeadScore
	byID        map[string]model.LeadScore
	lastRefresh time.Time

	started bool
	logger  logger.Logger
}

// New constructs the service from configuration. The CRM source and
// Slack notifier default to adapters built from cfg; options override
// them.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	scorer, err := scoring.New(
		scoring.WithWeights(cfg.Weights),
		scoring.WithThresholdSource(cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}

	s := &Service{
		cfg:    cfg,
		scorer: scorer,
		byID:   map[string]model.LeadScore{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.source == nil {
		s.source = crm.New(
			crm.WithAPIKey(cfg.HubSpotAPIKey),
			crm.WithBaseURL(cfg.HubSpotAPIURL),
			crm.WithDemoMode(cfg.DemoMode),
			crm.WithLogger(s.logger.Named("crm")),
		)
	}
	if s.notifier == nil {
		s.notifier = notify.New(
			notify.WithWebhookURL(cfg.SlackWebhookURL),
			notify.WithChannel(cfg.SlackChannel),
			notify.WithDemoMode(cfg.DemoMode),
			notify.WithLogger(s.logger.Named("notify")),
		)
	}
	return s, nil
}

// Start runs an initial scoring pass and begins the periodic refresh.
// Calling Start on a started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "starting lead scoring service",
		logger.Bool("demo_mode", s.cfg.DemoMode),
		logger.Int("refresh_interval_seconds", s.cfg.RefreshInterval),
	)

	interval := time.Duration(s.cfg.RefreshInterval) * time.Second
	orch, err := refresh.New(interval, s.refreshCycle,
		refresh.WithLogger(s.logger.Named("refresh")),
	)
	if err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return fmt.Errorf("build orchestrator: %w", err)
	}
	s.orch = orch

	// Populate the snapshot before serving traffic.
	if err := s.orch.RunNow(ctx); err != nil {
		s.logger.Error(ctx, "initial refresh failed", logger.Error(err))
	}

	if err := s.orch.Start(ctx); err != nil {
		s.mu.Lock()
		s.started = false
		s.mu.Unlock()
		return fmt.Errorf("start orchestrator: %w", err)
	}

	s.logger.Info(ctx, "lead scoring service started")
	return nil
}

// Stop gracefully shuts down the refresh orchestrator. An in-flight
// cycle is allowed to finish.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	orch := s.orch
	s.mu.Unlock()

	if orch != nil {
		_ = orch.Stop()
	}
	s.logger.Info(context.Background(), "lead scoring service stopped")
}

// refreshCycle is the orchestrator job: fetch, score, swap, alert.
func (s *Service) refreshCycle(ctx context.Context) error {
	start := time.Now()
	leads := s.source.FetchLeads(ctx, s.cfg.FetchLimit)
	scores := s.scorer.ScoreAll(ctx, leads)

	byID := make(map[string]model.LeadScore, len(scores))
	var hot, warm, cold int
	for _, sc := range scores {
		byID[sc.ID()] = sc
		switch sc.Tier {
		case model.TierHot:
			hot++
		case model.TierWarm:
			warm++
		default:
			cold++
		}
	}

	s.mu.Lock()
	s.scores = scores
	s.byID = byID
	s.lastRefresh = time.Now().UTC()
	s.mu.Unlock()

	metrics.RecordLeadsScored(len(scores))
	metrics.SetTierCounts(hot, warm, cold)
	metrics.RecordRefreshCycle(time.Since(start).Seconds(), false)

	for _, sc := range scores {
		if sc.Tier == model.TierHot {
			s.notifier.NotifyHotLead(ctx, sc)
		}
	}
	s.notifier.NotifySummary(ctx, len(scores), hot, warm)

	s.logger.Info(ctx, "scores refreshed",
		logger.Int("total", len(scores)),
		logger.Int("hot", hot),
		logger.Int("warm", warm),
		logger.Int("cold", cold),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// ListScores returns the current ranked snapshot, highest score first.
func (s *Service) ListScores(ctx context.Context) []model.LeadScore {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.LeadScore, len(s.scores))
	copy(out, s.scores)
	return out
}

// GetScore returns the score for one lead by id.
func (s *Service) GetScore(ctx context.Context, leadID string) (model.LeadScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.byID[leadID]
	if !ok {
		return model.LeadScore{}, fmt.Errorf("%w: %s", ErrLeadNotFound, leadID)
	}
	return sc, nil
}

// RefreshNow forces a scoring pass and reports the resulting tier
// counts. The pass is serialized with scheduled cycles so concurrent
// requests never double-alert.
func (s *Service) RefreshNow(ctx context.Context) (model.RefreshSummary, error) {
	s.mu.RLock()
	orch := s.orch
	s.mu.RUnlock()

	var err error
	if orch != nil {
		err = orch.RunNow(ctx)
	} else {
		err = s.refreshCycle(ctx)
	}
	if err != nil {
		return model.RefreshSummary{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	res := model.RefreshSummary{Total: len(s.scores)}
	for _, sc := range s.scores {
		switch sc.Tier {
		case model.TierHot:
			res.Hot++
		case model.TierWarm:
			res.Warm++
		default:
			res.Cold++
		}
	}
	return res, nil
}

// Thresholds returns the live (hot, warm) tier boundaries.
func (s *Service) Thresholds() (hot, warm float64) {
	return s.cfg.Thresholds()
}

// UpdateThresholds replaces the tier boundaries at runtime. Existing
// snapshot tiers are untouched; the next scoring pass picks them up.
func (s *Service) UpdateThresholds(hot, warm float64) error {
	if err := s.cfg.UpdateThresholds(hot, warm); err != nil {
		return err
	}
	s.logger.Info(context.Background(), "alert thresholds updated",
		logger.Float64("hot", hot),
		logger.Float64("warm", warm),
	)
	return nil
}

// DemoMode reports whether the built-in demo dataset is being served.
func (s *Service) DemoMode() bool {
	return s.cfg.DemoMode
}

// SlackEnabled reports whether a delivery webhook is configured.
func (s *Service) SlackEnabled() bool {
	return s.cfg.SlackWebhookURL != ""
}

// TestAlert sends a sample hot lead alert through the notifier so a
// webhook configuration can be verified end to end.
func (s *Service) TestAlert(ctx context.Context) bool {
	sample := model.LeadScore{
		Lead: model.Lead{
			ID:        "test-lead",
			Email:     "test@example.com",
			Name:      "Test Lead",
			Company:   "Test Company",
			JobTitle:  "Decision Maker",
			DealStage: "opportunity",
		},
		Score:      95,
		Tier:       model.TierHot,
		ComputedAt: time.Now().UTC(),
	}
	return s.notifier.NotifyHotLead(ctx, sample)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hot, warm, cold int
	for _, sc := range s.scores {
		switch sc.Tier {
		case model.TierHot:
			hot++
		case model.TierWarm:
			warm++
		default:
			cold++
		}
	}

	hotT, warmT := s.cfg.Thresholds()
	stats := map[string]interface{}{
		"started":                  s.started,
		"demo_mode":                s.cfg.DemoMode,
		"total_leads":              len(s.scores),
		"hot_leads":                hot,
		"warm_leads":               warm,
		"cold_leads":               cold,
		"hot_threshold":            hotT,
		"warm_threshold":           warmT,
		"refresh_interval_seconds": s.cfg.RefreshInterval,
	}
	if !s.lastRefresh.IsZero() {
		stats["last_refresh"] = s.lastRefresh.Format(time.RFC3339)
	}
	return stats
}
