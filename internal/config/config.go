// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load() to layer sources.
// - Invariant-violating configurations are rejected, never silently coerced.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"sync"

	"github.com/okian/leadscore/internal/domain/scoring"
)

// Default threshold and cadence values, matching the shipped .env.example.
const (
	defaultHotThreshold    = 75
	defaultWarmThreshold   = 50
	defaultRefreshInterval = 3600
	defaultFetchLimit      = 100
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DemoMode serves the built-in demo dataset and suppresses all
	// outbound network calls from the CRM and notification adapters.
	DemoMode bool `koanf:"demo_mode"`

	// HubSpot CRM source.
	HubSpotAPIKey string `koanf:"hubspot_api_key"`
	HubSpotAPIURL string `koanf:"hubspot_api_url"`

	// Slack notification sink.
	SlackWebhookURL string `koanf:"slack_webhook_url"`
	SlackChannel    string `koanf:"slack_channel"`

	// RefreshInterval is the scheduled re-scoring cadence in seconds.
	RefreshInterval int `koanf:"refresh_interval"`

	// HotThreshold and WarmThreshold bound the score tiers.
	// Invariant: 0 <= warm < hot <= 100.
	HotThreshold  float64 `koanf:"hot_threshold"`
	WarmThreshold float64 `koanf:"warm_threshold"`

	// FetchLimit caps the number of leads fetched per cycle.
	FetchLimit int `koanf:"fetch_limit"`

	// Weights are the per-feature scoring weights. Invariant: sum to
	// 1.0 within tolerance, validated at load.
	Weights scoring.Weights `koanf:"weights"`

	// mu guards the runtime-updatable threshold pair. All other fields
	// are fixed after Load.
	mu sync.RWMutex
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8000",
		DemoMode:        true,
		HubSpotAPIURL:   "https://api.hubapi.com",
		SlackChannel:    "#sales-alerts",
		RefreshInterval: defaultRefreshInterval,
		HotThreshold:    defaultHotThreshold,
		WarmThreshold:   defaultWarmThreshold,
		FetchLimit:      defaultFetchLimit,
		Weights:         scoring.DefaultWeights(),
	}
}

// Validate checks all configuration invariants. It is called once by Load;
// violations are fatal at startup.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("%w: refresh_interval must be > 0, got %d", ErrInvalidConfig, c.RefreshInterval)
	}
	if c.FetchLimit <= 0 {
		return fmt.Errorf("%w: fetch_limit must be > 0, got %d", ErrInvalidConfig, c.FetchLimit)
	}
	if err := validateThresholds(c.HotThreshold, c.WarmThreshold); err != nil {
		return err
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Thresholds returns the current (hot, warm) threshold pair. Safe for
// concurrent use with UpdateThresholds; the categorizer reads these on
// every classification so updates take effect on the next scoring call.
func (c *Config) Thresholds() (hot, warm float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HotThreshold, c.WarmThreshold
}

// UpdateThresholds replaces the threshold pair at runtime. The ordering
// invariant is re-checked and violating updates are rejected, leaving the
// previous pair in place.
func (c *Config) UpdateThresholds(hot, warm float64) error {
	if err := validateThresholds(hot, warm); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HotThreshold = hot
	c.WarmThreshold = warm
	return nil
}

func validateThresholds(hot, warm float64) error {
	if hot < 0 || hot > 100 || warm < 0 || warm > 100 {
		return fmt.Errorf("%w: thresholds must be within [0,100], got hot=%v warm=%v", ErrInvalidThresholds, hot, warm)
	}
	if warm >= hot {
		return fmt.Errorf("%w: warm threshold (%v) must be less than hot threshold (%v)", ErrInvalidThresholds, warm, hot)
	}
	return nil
}
