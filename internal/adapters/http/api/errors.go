package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest    = errors.New("bad request")
	ErrAlertDelivery = errors.New("failed to send test alert")
)
