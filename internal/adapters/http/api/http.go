// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/leadscore/internal/domain/model"
)

const serviceVersion = "1.0.0"

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations expose the ranked score snapshot.
	ListScores(ctx context.Context) []model.LeadScore
	GetScore(ctx context.Context, leadID string) (model.LeadScore, error)

	// RefreshNow forces a scoring pass and reports tier counts.
	RefreshNow(ctx context.Context) (model.RefreshSummary, error)

	// Alert configuration and delivery.
	Thresholds() (hot, warm float64)
	UpdateThresholds(hot, warm float64) error
	SlackEnabled() bool
	TestAlert(ctx context.Context) bool

	// DemoMode reports whether the built-in dataset is being served.
	DemoMode() bool
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
	leadsHandler  *LeadsHandler
	alertsHandler *AlertsHandler
	deps          Dependencies
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
		leadsHandler:  NewLeadsHandler(deps),
		alertsHandler: NewAlertsHandler(deps),
		deps:          deps,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/healthz", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/leads", MetricsMiddleware(s.leadsHandler.HandleList, "leads"))
	mux.HandleFunc("/api/leads/", MetricsMiddleware(s.leadsHandler.HandleLeadPath, "leads"))
	mux.HandleFunc("/api/alerts/config", MetricsMiddleware(s.alertsHandler.HandleConfig, "alerts_config"))
	mux.HandleFunc("/api/alerts/test", MetricsMiddleware(s.alertsHandler.HandleTest, "alerts_test"))
}

// handleRoot serves the service banner on exactly "/".
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"name":        "LeadScore",
		"version":     serviceVersion,
		"description": "Intelligent lead scoring system",
		"demo_mode":   s.deps.DemoMode(),
	})
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404
// without coupling to the packages that produce them.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
