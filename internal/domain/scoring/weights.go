package scoring

import (
	"fmt"
	"math"
)

// weightSumTolerance bounds the acceptable drift of the weight sum from 1.0.
const weightSumTolerance = 0.001

// Weights holds the per-feature scoring weights. The seven weights must be
// non-negative and sum to 1.0 within tolerance; Validate rejects anything
// else rather than renormalizing.
type Weights struct {
	EmailOpens    float64 `koanf:"email_opens" json:"email_opens"`
	EmailClicks   float64 `koanf:"email_clicks" json:"email_clicks"`
	WebsiteVisits float64 `koanf:"website_visits" json:"website_visits"`
	CRMActivities float64 `koanf:"crm_activities" json:"crm_activities"`
	DealStage     float64 `koanf:"deal_stage" json:"deal_stage"`
	CompanySize   float64 `koanf:"company_size" json:"company_size"`
	Recency       float64 `koanf:"recency" json:"recency"`
}

// DefaultWeights returns the shipped weight set.
func DefaultWeights() Weights {
	return Weights{
		EmailOpens:    0.25,
		EmailClicks:   0.20,
		WebsiteVisits: 0.20,
		CRMActivities: 0.15,
		DealStage:     0.10,
		CompanySize:   0.05,
		Recency:       0.05,
	}
}

// Sum returns the total of all seven weights.
func (w Weights) Sum() float64 {
	return w.EmailOpens + w.EmailClicks + w.WebsiteVisits +
		w.CRMActivities + w.DealStage + w.CompanySize + w.Recency
}

// Validate enforces the weight invariants.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"email_opens":    w.EmailOpens,
		"email_clicks":   w.EmailClicks,
		"website_visits": w.WebsiteVisits,
		"crm_activities": w.CRMActivities,
		"deal_stage":     w.DealStage,
		"company_size":   w.CompanySize,
		"recency":        w.Recency,
	} {
		if v < 0 {
			return fmt.Errorf("%w: weight %s is negative (%v)", ErrInvalidWeights, name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights must sum to 1.0, got %v", ErrInvalidWeights, sum)
	}
	return nil
}
