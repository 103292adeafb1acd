package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/okian/leadscore/internal/adapters/http/api"
	app "github.com/okian/leadscore/internal/app"
	"github.com/okian/leadscore/internal/config"
	"github.com/okian/leadscore/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestApplicationWiring(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("LEADSCORE_ADDR", ":8080")
			_ = os.Setenv("LEADSCORE_HOT_THRESHOLD", "80")
			_ = os.Setenv("LEADSCORE_WARM_THRESHOLD", "55")
			defer func() {
				_ = os.Unsetenv("LEADSCORE_ADDR")
				_ = os.Unsetenv("LEADSCORE_HOT_THRESHOLD")
				_ = os.Unsetenv("LEADSCORE_WARM_THRESHOLD")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load()
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")

				hot, warm := cfg.Thresholds()
				convey.So(hot, convey.ShouldEqual, 80)
				convey.So(warm, convey.ShouldEqual, 55)
			})
		})

		convey.Convey("When building the service from defaults", func() {
			cfg := config.New()
			svc, err := app.New(cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(svc, convey.ShouldNotBeNil)

			convey.Convey("Then the API routes register on a fresh mux", func() {
				mux := http.NewServeMux()
				api.NewServer(svc, svc).Register(context.Background(), mux)

				req, err := http.NewRequest(http.MethodGet, "/api/leads", nil)
				convey.So(err, convey.ShouldBeNil)
				handler, pattern := mux.Handler(req)
				convey.So(handler, convey.ShouldNotBeNil)
				convey.So(pattern, convey.ShouldEqual, "/api/leads")
			})
		})
	})
}
