package logger

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given the logger package", t, func() {
		Convey("When creating a logger with console output only", func() {
			logger, err := New("info", "")

			Convey("It should create a working logger", func() {
				So(err, ShouldBeNil)
				So(logger, ShouldNotBeNil)
				So(func() { logger.Infof("hello %s", "world") }, ShouldNotPanic)
			})
		})

		Convey("When a log file is configured", func() {
			logFile := filepath.Join(t.TempDir(), "logs", "dbshield.log")

			logger, err := New("debug", logFile)

			Convey("It should create the log directory and write to the file", func() {
				So(err, ShouldBeNil)
				So(logger, ShouldNotBeNil)

				logger.Debugf("first entry")
				logger.Close()

				_, statErr := os.Stat(logFile)
				So(statErr, ShouldBeNil)
			})
		})

		Convey("When the log level is unparseable", func() {
			logger, err := New("chatty", "")

			Convey("It should fall back to info level", func() {
				So(err, ShouldBeNil)
				So(logger, ShouldNotBeNil)
				So(func() { logger.Infof("still works") }, ShouldNotPanic)
			})
		})

		Convey("When the log directory cannot be created", func() {
			logger, err := New("info", "/dev/null/nope/dbshield.log")

			Convey("It should return an error", func() {
				So(err, ShouldNotBeNil)
				So(logger, ShouldBeNil)
			})
		})
	})
}

func TestClose(t *testing.T) {
	Convey("Given a logger", t, func() {
		logger, err := New("info", "")
		So(err, ShouldBeNil)

		Convey("Close never panics", func() {
			So(func() { logger.Close() }, ShouldNotPanic)
		})
	})
}
