package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tier is the categorical output of thresholding a numeric score.
type Tier int

const (
	TierCold Tier = iota
	TierWarm
	TierHot
)

func (t Tier) String() string {
	switch t {
	case TierHot:
		return "hot"
	case TierWarm:
		return "warm"
	default:
		return "cold"
	}
}

// MarshalJSON renders the tier as its lowercase name, matching the wire
// format expected by alert consumers.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON parses a lowercase tier name.
func (t *Tier) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("tier must be a string: %w", err)
	}
	switch strings.ToLower(s) {
	case "hot":
		*t = TierHot
	case "warm":
		*t = TierWarm
	case "cold":
		*t = TierCold
	default:
		return fmt.Errorf("unknown tier %q", s)
	}
	return nil
}

// Breakdown holds the [0,1] sub-score of every feature, prior to
// weighting, for explainability. One field per feature keeps the shape
// statically checkable.
type Breakdown struct {
	EmailOpens    float64 `json:"email_opens"`
	EmailClicks   float64 `json:"email_clicks"`
	WebsiteVisits float64 `json:"website_visits"`
	CRMActivities float64 `json:"crm_activities"`
	DealStage     float64 `json:"deal_stage"`
	CompanySize   float64 `json:"company_size"`
	Recency       float64 `json:"recency"`
}

// LeadScore is the immutable result of scoring one lead. Instances are
// ephemeral: produced per cycle or per request, handed to the notifier or
// API response, then discarded.
type LeadScore struct {
	Lead       Lead      `json:"lead"`
	Score      float64   `json:"score"`
	Tier       Tier      `json:"tier"`
	Breakdown  Breakdown `json:"breakdown"`
	ComputedAt time.Time `json:"computed_at"`
}

// Derived accessors for notification and API convenience.

func (s LeadScore) ID() string      { return s.Lead.ID }
func (s LeadScore) Email() string   { return s.Lead.Email }
func (s LeadScore) Name() string    { return s.Lead.FullName() }
func (s LeadScore) Company() string { return s.Lead.Company }

// RefreshSummary reports the tier counts of one completed scoring pass.
type RefreshSummary struct {
	Total int `json:"total"`
	Hot   int `json:"hot"`
	Warm  int `json:"warm"`
	Cold  int `json:"cold"`
}
