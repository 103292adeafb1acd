// Package scoring computes lead priority scores from engagement signals.
//
// Seven pure feature scorers each map one signal to a [0,1] sub-score;
// the weighted sum is scaled to 0-100 and thresholded into a tier. All
// scorers are deterministic given the injectable clock, so tests pin "now".
package scoring

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/okian/leadscore/internal/domain/model"
)

// Normalization breakpoints: the engagement count at which each feature
// saturates at 1.0.
const (
	maxEmailOpens    = 10
	maxEmailClicks   = 5
	maxWebsiteVisits = 8
	maxCRMActivities = 6
)

// ThresholdSource supplies the live (hot, warm) threshold pair. It is read
// on every classification, so configuration updates apply to the next call
// without rebuilding the scorer.
type ThresholdSource interface {
	Thresholds() (hot, warm float64)
}

// staticThresholds is the fixed-pair ThresholdSource used by WithThresholds
// and as the default.
type staticThresholds struct {
	hot  float64
	warm float64
}

func (s staticThresholds) Thresholds() (float64, float64) { return s.hot, s.warm }

// Scorer scores leads with a weight set fixed at construction and a live
// threshold source.
type Scorer struct {
	weights    Weights
	thresholds ThresholdSource
	now        func() time.Time
}

// New creates a Scorer. The weight-sum invariant is checked here: a weight
// set that does not sum to 1.0 within tolerance fails construction before
// any scoring occurs.
func New(opts ...Option) (*Scorer, error) {
	s := &Scorer{
		weights:    DefaultWeights(),
		thresholds: staticThresholds{hot: 75, warm: 50},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Score computes the score for a single lead. It fails only when the
// lead's identity fields are invalid; absent optional fields degrade to
// their documented defaults.
func (s *Scorer) Score(_ context.Context, lead model.Lead) (model.LeadScore, error) {
	if err := lead.Validate(); err != nil {
		return model.LeadScore{}, err
	}

	breakdown := model.Breakdown{
		EmailOpens:    s.scoreEmailOpens(lead),
		EmailClicks:   s.scoreEmailClicks(lead),
		WebsiteVisits: s.scoreWebsiteVisits(lead),
		CRMActivities: s.scoreCRMActivities(lead),
		DealStage:     s.scoreDealStage(lead),
		CompanySize:   s.scoreCompanySize(lead),
		Recency:       s.scoreRecency(lead),
	}

	total := breakdown.EmailOpens*s.weights.EmailOpens +
		breakdown.EmailClicks*s.weights.EmailClicks +
		breakdown.WebsiteVisits*s.weights.WebsiteVisits +
		breakdown.CRMActivities*s.weights.CRMActivities +
		breakdown.DealStage*s.weights.DealStage +
		breakdown.CompanySize*s.weights.CompanySize +
		breakdown.Recency*s.weights.Recency

	// Scale to 0-100 and round the final score to two decimals. The
	// breakdown stays unrounded for explainability.
	final := math.Min(100, math.Max(0, total*100))
	final = math.Round(final*100) / 100

	return model.LeadScore{
		Lead:       lead,
		Score:      final,
		Tier:       s.categorize(final),
		Breakdown:  breakdown,
		ComputedAt: s.now().UTC(),
	}, nil
}

// ScoreAll scores each lead independently and returns the results sorted
// by score descending; ties keep the input's relative order. Leads whose
// identity fields fail validation are skipped, never aborting the batch.
// An empty input yields an empty result.
func (s *Scorer) ScoreAll(ctx context.Context, leads []model.Lead) []model.LeadScore {
	scored := make([]model.LeadScore, 0, len(leads))
	for _, lead := range leads {
		result, err := s.Score(ctx, lead)
		if err != nil {
			continue
		}
		scored = append(scored, result)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// scoreEmailOpens normalizes open counts against maxEmailOpens with a
// boost for recent opens: x1.5 within 7 days, x1.2 within 30.
func (s *Scorer) scoreEmailOpens(lead model.Lead) float64 {
	opens := lead.Engagement.EmailOpens
	if opens <= 0 {
		return 0
	}

	boost := 1.0
	if last := lead.Engagement.LastEmailOpen; last != nil {
		switch days := s.daysSince(*last); {
		case days <= 7:
			boost = 1.5
		case days <= 30:
			boost = 1.2
		}
	}

	base := math.Min(1, float64(opens)/maxEmailOpens)
	return math.Min(1, base*boost)
}

// scoreEmailClicks normalizes click counts. Clicks carry no recency boost:
// they are treated as inherently high-intent.
func (s *Scorer) scoreEmailClicks(lead model.Lead) float64 {
	clicks := lead.Engagement.EmailClicks
	if clicks <= 0 {
		return 0
	}
	return math.Min(1, float64(clicks)/maxEmailClicks)
}

// scoreWebsiteVisits mirrors the email-opens shape with tighter recency
// breakpoints: x1.5 within 3 days, x1.2 within 7.
func (s *Scorer) scoreWebsiteVisits(lead model.Lead) float64 {
	visits := lead.Engagement.WebsiteVisits
	if visits <= 0 {
		return 0
	}

	boost := 1.0
	if last := lead.Engagement.LastWebsiteVisit; last != nil {
		switch days := s.daysSince(*last); {
		case days <= 3:
			boost = 1.5
		case days <= 7:
			boost = 1.2
		}
	}

	base := math.Min(1, float64(visits)/maxWebsiteVisits)
	return math.Min(1, base*boost)
}

func (s *Scorer) scoreCRMActivities(lead model.Lead) float64 {
	activities := lead.Engagement.CRMActivities
	if activities <= 0 {
		return 0
	}
	return math.Min(1, float64(activities)/maxCRMActivities)
}

// scoreDealStage encodes the closed stage vocabulary. The model's parser
// already folds unknown stages into StageLead.
func (s *Scorer) scoreDealStage(lead model.Lead) float64 {
	switch lead.Stage() {
	case model.StageSubscriber:
		return 0.2
	case model.StageLead:
		return 0.3
	case model.StageMarketingQualified:
		return 0.5
	case model.StageQualified:
		return 0.6
	case model.StageOpportunity:
		return 0.8
	case model.StageCustomer:
		return 1.0
	default:
		return 0.3
	}
}

// scoreCompanySize buckets the employee count. An unknown size scores the
// neutral 0.3: not penalized, not rewarded.
func (s *Scorer) scoreCompanySize(lead model.Lead) float64 {
	size := lead.CompanySize
	switch {
	case size <= 0:
		return 0.3
	case size <= 10:
		return 0.3
	case size <= 50:
		return 0.5
	case size <= 200:
		return 0.7
	case size <= 1000:
		return 0.9
	default:
		return 1.0
	}
}

// scoreRecency decays with whole days since the lead's overall last
// activity, distinct from the per-channel recency boosts above.
func (s *Scorer) scoreRecency(lead model.Lead) float64 {
	if lead.LastActivity == nil {
		return 0
	}
	switch days := s.daysSince(*lead.LastActivity); {
	case days <= 1:
		return 1.0
	case days <= 3:
		return 0.8
	case days <= 7:
		return 0.6
	case days <= 14:
		return 0.4
	case days <= 30:
		return 0.2
	default:
		return 0
	}
}

// categorize thresholds a final score; boundaries are inclusive.
func (s *Scorer) categorize(score float64) model.Tier {
	hot, warm := s.thresholds.Thresholds()
	switch {
	case score >= hot:
		return model.TierHot
	case score >= warm:
		return model.TierWarm
	default:
		return model.TierCold
	}
}

// daysSince returns the number of whole elapsed days between t and the
// scorer's reference clock.
func (s *Scorer) daysSince(t time.Time) int {
	return int(s.now().UTC().Sub(t.UTC()).Hours() / 24)
}
