package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "dbshield", LogLevel: "info"},
		Backup: BackupConfig{
			TickInterval:   10 * time.Second,
			LookbackWindow: 61 * time.Second,
		},
		Targets: []TargetConfig{
			{
				Name:           "sales",
				Type:           "mariadb",
				Host:           "localhost",
				Port:           3306,
				Username:       "backup",
				Database:       "sales",
				OutputDir:      "./backups",
				RetentionCount: 5,
				Schedule:       "0 0 3 * * *",
				Enabled:        true,
			},
		},
	}
}

func TestLoad(t *testing.T) {
	Convey("Given a missing config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")

		Convey("Load yields an empty configuration with defaults", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(len(cfg.Targets), ShouldEqual, 0)
			So(cfg.Backup.TickInterval, ShouldEqual, 10*time.Second)
			So(cfg.Backup.LookbackWindow, ShouldEqual, 61*time.Second)
			So(cfg.App.LogLevel, ShouldEqual, "info")
		})
	})

	Convey("Given a saved configuration", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		original := validConfig()
		original.Backup.DumpTimeout = 5 * time.Minute
		original.Targets[0].Password = "hunter2"
		So(original.Save(path), ShouldBeNil)

		Convey("Loading it back restores every field", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Backup.TickInterval, ShouldEqual, 10*time.Second)
			So(cfg.Backup.LookbackWindow, ShouldEqual, 61*time.Second)
			So(cfg.Backup.DumpTimeout, ShouldEqual, 5*time.Minute)
			So(len(cfg.Targets), ShouldEqual, 1)
			So(cfg.Targets[0], ShouldResemble, original.Targets[0])
		})

		Convey("The saved file is not world-readable", func() {
			info, err := os.Stat(path)
			So(err, ShouldBeNil)
			So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
		})

		Convey("Durations are written as strings, not nanosecond counts", func() {
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "tick_interval: 10s")
			So(string(data), ShouldContainSubstring, "lookback_window: 1m1s")
			So(string(data), ShouldContainSubstring, "dump_timeout: 5m0s")
		})
	})

	Convey("Given a target entry without an enabled key", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		raw := `backup:
  tick_interval: 10s
  lookback_window: 61s
targets:
  - name: sales
    type: mariadb
    host: localhost
    port: 3306
    username: backup
    database: sales
    output_dir: ./backups
    retention_count: 5
  - name: billing
    type: postgresql
    host: localhost
    port: 5432
    username: backup
    database: billing
    output_dir: ./backups
    retention_count: 5
    enabled: false
`
		So(os.WriteFile(path, []byte(raw), 0o600), ShouldBeNil)

		Convey("The omitted key defaults to enabled, the explicit false stays", func() {
			cfg, err := Load(path)
			So(err, ShouldBeNil)
			So(cfg.Targets[0].Enabled, ShouldBeTrue)
			So(cfg.Targets[1].Enabled, ShouldBeFalse)

			enabled := cfg.EnabledTargets()
			So(len(enabled), ShouldEqual, 1)
			So(enabled[0].Name, ShouldEqual, "sales")
		})
	})

	Convey("Given an unreadable config file", t, func() {
		path := filepath.Join(t.TempDir(), "config.yaml")
		So(os.WriteFile(path, []byte("targets: [unclosed"), 0o600), ShouldBeNil)

		Convey("Load returns an error", func() {
			_, err := Load(path)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given a valid configuration", t, func() {
		So(validConfig().Validate(), ShouldBeNil)
	})

	Convey("Given a lookback window no wider than the tick interval", t, func() {
		cfg := validConfig()
		cfg.Backup.LookbackWindow = cfg.Backup.TickInterval

		err := cfg.Validate()
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "lookback_window")
	})

	Convey("Given a duplicate target name", t, func() {
		cfg := validConfig()
		cfg.Targets = append(cfg.Targets, cfg.Targets[0])

		err := cfg.Validate()
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "duplicate")
	})

	Convey("Given an unsupported database type", t, func() {
		cfg := validConfig()
		cfg.Targets[0].Type = "oracle"

		So(cfg.Validate(), ShouldNotBeNil)
	})

	Convey("Given an out-of-range port", t, func() {
		cfg := validConfig()
		cfg.Targets[0].Port = 70000

		So(cfg.Validate(), ShouldNotBeNil)
	})

	Convey("Given a negative retention count", t, func() {
		cfg := validConfig()
		cfg.Targets[0].RetentionCount = -1

		So(cfg.Validate(), ShouldNotBeNil)
	})

	Convey("Given a missing output directory", t, func() {
		cfg := validConfig()
		cfg.Targets[0].OutputDir = ""

		So(cfg.Validate(), ShouldNotBeNil)
	})
}

func TestFindTarget(t *testing.T) {
	Convey("Given a configuration with two targets", t, func() {
		cfg := validConfig()
		cfg.Targets = append(cfg.Targets, TargetConfig{
			Name: "billing", Type: "postgresql", Host: "localhost", Port: 5432,
			Username: "backup", Database: "billing", OutputDir: "./backups",
		})

		Convey("Lookup by name resolves the index", func() {
			i, err := cfg.FindTarget("billing")
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 1)
		})

		Convey("Lookup by 1-based position resolves the index", func() {
			i, err := cfg.FindTarget("1")
			So(err, ShouldBeNil)
			So(i, ShouldEqual, 0)
		})

		Convey("An unknown name is an error", func() {
			_, err := cfg.FindTarget("inventory")
			So(err, ShouldNotBeNil)
		})

		Convey("An out-of-range position is an error", func() {
			_, err := cfg.FindTarget("3")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDefaultPort(t *testing.T) {
	Convey("Conventional ports per database type", t, func() {
		So(DefaultPort("postgresql"), ShouldEqual, 5432)
		So(DefaultPort("mariadb"), ShouldEqual, 3306)
		So(DefaultPort("mysql"), ShouldEqual, 3306)
	})
}
