package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/leadscore/internal/adapters/http/api"
	"github.com/okian/leadscore/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeDeps struct {
	scores     []model.LeadScore
	refreshErr error

	hot, warm    float64
	updateErr    error
	slackEnabled bool
	alertOK      bool
	demo         bool
}

func (f *fakeDeps) ListScores(context.Context) []model.LeadScore { return f.scores }

func (f *fakeDeps) GetScore(_ context.Context, leadID string) (model.LeadScore, error) {
	for _, sc := range f.scores {
		if sc.ID() == leadID {
			return sc, nil
		}
	}
	return model.LeadScore{}, fmt.Errorf("lead not found: %s", leadID)
}

func (f *fakeDeps) RefreshNow(context.Context) (model.RefreshSummary, error) {
	if f.refreshErr != nil {
		return model.RefreshSummary{}, f.refreshErr
	}
	summary := model.RefreshSummary{Total: len(f.scores)}
	for _, sc := range f.scores {
		switch sc.Tier {
		case model.TierHot:
			summary.Hot++
		case model.TierWarm:
			summary.Warm++
		default:
			summary.Cold++
		}
	}
	return summary, nil
}

func (f *fakeDeps) Thresholds() (float64, float64) { return f.hot, f.warm }

func (f *fakeDeps) UpdateThresholds(hot, warm float64) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if warm >= hot {
		return fmt.Errorf("warm threshold (%v) must be less than hot threshold (%v)", warm, hot)
	}
	f.hot, f.warm = hot, warm
	return nil
}

func (f *fakeDeps) SlackEnabled() bool { return f.slackEnabled }

func (f *fakeDeps) TestAlert(context.Context) bool { return f.alertOK }

func (f *fakeDeps) DemoMode() bool { return f.demo }

func (f *fakeDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"total_leads": len(f.scores)}
}

func score(id string, value float64, tier model.Tier) model.LeadScore {
	return model.LeadScore{
		Lead: model.Lead{
			ID:    id,
			Email: id + "@example.com",
			Name:  "Lead " + id,
		},
		Score:      value,
		Tier:       tier,
		ComputedAt: time.Date(2025, 5, 12, 12, 0, 0, 0, time.UTC),
	}
}

func newTestServer(deps *fakeDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	if out != nil {
		So(json.NewDecoder(resp.Body).Decode(out), ShouldBeNil)
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	So(err, ShouldBeNil)
	defer resp.Body.Close()
	if out != nil {
		So(json.NewDecoder(resp.Body).Decode(out), ShouldBeNil)
	}
	return resp.StatusCode
}

func TestRootAndHealth(t *testing.T) {
	Convey("Given the API server", t, func() {
		deps := &fakeDeps{demo: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("Then the root banner identifies the service", func() {
			var banner map[string]any
			So(getJSON(t, srv.URL+"/", &banner), ShouldEqual, http.StatusOK)
			So(banner["name"], ShouldEqual, "LeadScore")
			So(banner["demo_mode"], ShouldEqual, true)
		})

		Convey("Then unknown paths are 404", func() {
			So(getJSON(t, srv.URL+"/nope", nil), ShouldEqual, http.StatusNotFound)
		})

		Convey("Then the health endpoint reports healthy", func() {
			var status map[string]any
			So(getJSON(t, srv.URL+"/health", &status), ShouldEqual, http.StatusOK)
			So(status["status"], ShouldEqual, "healthy")
		})

		Convey("Then the metrics endpoint serves the Prometheus registry", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("Then stats come from the provider", func() {
			var stats map[string]any
			So(getJSON(t, srv.URL+"/stats", &stats), ShouldEqual, http.StatusOK)
			So(stats["total_leads"], ShouldEqual, 0)
		})
	})
}

func TestLeadsEndpoints(t *testing.T) {
	Convey("Given a server over three scored leads", t, func() {
		deps := &fakeDeps{scores: []model.LeadScore{
			score("a", 90, model.TierHot),
			score("b", 60, model.TierWarm),
			score("c", 10, model.TierCold),
		}}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("Then the list preserves ranking order", func() {
			var got []model.LeadScore
			So(getJSON(t, srv.URL+"/api/leads", &got), ShouldEqual, http.StatusOK)
			So(got, ShouldHaveLength, 3)
			So(got[0].ID(), ShouldEqual, "a")
			So(got[0].Tier, ShouldEqual, model.TierHot)

			Convey("And the trailing-slash form serves the same list", func() {
				var again []model.LeadScore
				So(getJSON(t, srv.URL+"/api/leads/", &again), ShouldEqual, http.StatusOK)
				So(again, ShouldHaveLength, 3)
			})
		})

		Convey("Then a single lead resolves by id", func() {
			var got model.LeadScore
			So(getJSON(t, srv.URL+"/api/leads/b", &got), ShouldEqual, http.StatusOK)
			So(got.Score, ShouldEqual, 60)
		})

		Convey("Then an unknown lead is 404", func() {
			var body map[string]any
			So(getJSON(t, srv.URL+"/api/leads/zzz", &body), ShouldEqual, http.StatusNotFound)
			So(body["code"], ShouldEqual, "not_found")
		})

		Convey("Then nested paths are 404", func() {
			So(getJSON(t, srv.URL+"/api/leads/a/b", nil), ShouldEqual, http.StatusNotFound)
		})

		Convey("Then a refresh reports tier counts", func() {
			var got map[string]any
			So(postJSON(t, srv.URL+"/api/leads/refresh", "", &got), ShouldEqual, http.StatusOK)
			So(got["status"], ShouldEqual, "success")
			So(got["total_leads"], ShouldEqual, 3)
			So(got["hot_leads"], ShouldEqual, 1)
			So(got["warm_leads"], ShouldEqual, 1)
			So(got["cold_leads"], ShouldEqual, 1)
		})

		Convey("Then refresh over GET is 404", func() {
			So(getJSON(t, srv.URL+"/api/leads/refresh", nil), ShouldEqual, http.StatusNotFound)
		})

		Convey("Then a refresh failure maps to 500", func() {
			deps.refreshErr = fmt.Errorf("upstream exploded")
			var body map[string]any
			So(postJSON(t, srv.URL+"/api/leads/refresh", "", &body), ShouldEqual, http.StatusInternalServerError)
			So(body["code"], ShouldEqual, "internal_error")
		})
	})
}

func TestAlertsEndpoints(t *testing.T) {
	Convey("Given a server with default thresholds", t, func() {
		deps := &fakeDeps{hot: 75, warm: 50, slackEnabled: true, alertOK: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("Then the config is readable", func() {
			var cfg map[string]any
			So(getJSON(t, srv.URL+"/api/alerts/config", &cfg), ShouldEqual, http.StatusOK)
			So(cfg["hot_threshold"], ShouldEqual, 75)
			So(cfg["warm_threshold"], ShouldEqual, 50)
			So(cfg["enable_slack"], ShouldEqual, true)
		})

		Convey("When updated with a valid pair", func() {
			var cfg map[string]any
			status := postJSON(t, srv.URL+"/api/alerts/config",
				`{"hot_threshold": 80, "warm_threshold": 60}`, &cfg)

			Convey("Then the new pair is echoed back", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(cfg["hot_threshold"], ShouldEqual, 80)
				So(cfg["warm_threshold"], ShouldEqual, 60)
			})
		})

		Convey("When updated with an inverted pair", func() {
			var body map[string]any
			status := postJSON(t, srv.URL+"/api/alerts/config",
				`{"hot_threshold": 40, "warm_threshold": 60}`, &body)

			Convey("Then the update is rejected with 400", func() {
				So(status, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "invalid_thresholds")
			})
		})

		Convey("When updated with malformed JSON", func() {
			So(postJSON(t, srv.URL+"/api/alerts/config", "{", nil), ShouldEqual, http.StatusBadRequest)
		})

		Convey("Then a test alert reports success", func() {
			var got map[string]any
			So(postJSON(t, srv.URL+"/api/alerts/test", "", &got), ShouldEqual, http.StatusOK)
			So(got["status"], ShouldEqual, "success")
		})

		Convey("Then an undeliverable test alert maps to 500", func() {
			deps.alertOK = false
			var body map[string]any
			So(postJSON(t, srv.URL+"/api/alerts/test", "", &body), ShouldEqual, http.StatusInternalServerError)
			So(body["code"], ShouldEqual, "delivery_failed")
		})

		Convey("Then a test alert over GET is 404", func() {
			So(getJSON(t, srv.URL+"/api/alerts/test", nil), ShouldEqual, http.StatusNotFound)
		})
	})
}
