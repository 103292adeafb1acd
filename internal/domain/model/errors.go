package model

import "errors"

// Sentinel kinds for model validation errors.
var (
	ErrInvalidLead = errors.New("invalid lead")
)
