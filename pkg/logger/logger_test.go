package logger_test

import (
	"context"
	"testing"

	"github.com/okian/leadscore/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then Get returns a usable logger", func() {
			l := logger.Get()
			So(l, ShouldNotBeNil)
			So(func() {
				l.Info(context.Background(), "hello",
					logger.String("k", "v"),
					logger.Int("n", 1),
					logger.Float64("f", 1.5),
					logger.Bool("b", true),
				)
			}, ShouldNotPanic)
		})

		Convey("Then Named returns a grouped logger", func() {
			l := logger.Named("scoring")
			So(l, ShouldNotBeNil)
			So(func() { l.Warn(context.Background(), "grouped") }, ShouldNotPanic)
		})

		Convey("When setting levels from strings", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("WARN"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)

			Convey("Then unknown levels are rejected", func() {
				So(logger.SetLevelString("loud"), ShouldNotBeNil)
			})
		})
	})
}
