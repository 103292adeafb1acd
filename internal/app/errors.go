package app

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrLeadNotFound = errors.New("lead not found")
)
