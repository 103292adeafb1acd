package scoring

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidWeights    = errors.New("invalid feature weights")
	ErrInvalidThresholds = errors.New("invalid thresholds")
)
