package scoring

import "time"

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithWeights sets the feature weights. The set is copied and fixed for
// the scorer's lifetime; New validates it.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithThresholdSource sets a live threshold source, typically the service
// configuration, so runtime threshold updates reach the categorizer.
func WithThresholdSource(src ThresholdSource) Option {
	return func(s *Scorer) {
		if src != nil {
			s.thresholds = src
		}
	}
}

// WithThresholds sets a fixed threshold pair. Intended for tests and
// one-shot scoring; no ordering validation happens here because static
// pairs come from already-validated configuration.
func WithThresholds(hot, warm float64) Option {
	return func(s *Scorer) {
		s.thresholds = staticThresholds{hot: hot, warm: warm}
	}
}

// WithNow injects the reference clock used for all recency computations.
func WithNow(now func() time.Time) Option {
	return func(s *Scorer) {
		if now != nil {
			s.now = now
		}
	}
}
