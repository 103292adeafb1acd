package refresh

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrAlreadyRunning  = errors.New("orchestrator already running")
	ErrNotRunning      = errors.New("orchestrator not running")
	ErrInvalidInterval = errors.New("refresh interval must be positive")
	ErrNilJob          = errors.New("refresh job must not be nil")
)
