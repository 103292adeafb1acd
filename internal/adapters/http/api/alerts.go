// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AlertsDependencies defines the interface for alert configuration.
type AlertsDependencies interface {
	Thresholds() (hot, warm float64)
	UpdateThresholds(hot, warm float64) error
	SlackEnabled() bool
	TestAlert(ctx context.Context) bool
}

// AlertsHandler handles alert configuration requests.
type AlertsHandler struct {
	deps AlertsDependencies
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(deps AlertsDependencies) *AlertsHandler {
	return &AlertsHandler{deps: deps}
}

type alertConfig struct {
	HotThreshold  float64 `json:"hot_threshold"`
	WarmThreshold float64 `json:"warm_threshold"`
	EnableSlack   bool    `json:"enable_slack"`
}

// HandleConfig handles GET and POST /api/alerts/config requests.
// Updates apply in memory only; persistent changes belong in the
// environment configuration.
func (h *AlertsHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.writeConfig(w)
	case http.MethodPost:
		var req alertConfig
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
			return
		}
		if err := h.deps.UpdateThresholds(req.HotThreshold, req.WarmThreshold); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_thresholds", err)
			return
		}
		h.writeConfig(w)
	default:
		http.NotFound(w, r)
	}
}

func (h *AlertsHandler) writeConfig(w http.ResponseWriter) {
	hot, warm := h.deps.Thresholds()
	writeJSON(w, http.StatusOK, alertConfig{
		HotThreshold:  hot,
		WarmThreshold: warm,
		EnableSlack:   h.deps.SlackEnabled(),
	})
}

// HandleTest handles POST /api/alerts/test requests by pushing a sample
// alert through the configured notifier.
func (h *AlertsHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !h.deps.TestAlert(r.Context()) {
		writeError(w, http.StatusInternalServerError, "delivery_failed", ErrAlertDelivery)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "success",
		Message: "Test alert sent to Slack",
	})
}
