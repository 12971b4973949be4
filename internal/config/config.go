package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App     AppConfig      `mapstructure:"app" yaml:"app"`
	Backup  BackupConfig   `mapstructure:"backup" yaml:"backup"`
	Targets []TargetConfig `mapstructure:"targets" yaml:"targets"`
}

type AppConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" yaml:"log_file,omitempty"`
}

type BackupConfig struct {
	// TickInterval is the daemon poll period. LookbackWindow must be
	// strictly wider than it so a firing cannot fall between two ticks.
	TickInterval   time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	LookbackWindow time.Duration `mapstructure:"lookback_window" yaml:"lookback_window"`
	// DumpTimeout bounds a single dump subprocess. Zero disables the bound.
	DumpTimeout   time.Duration        `mapstructure:"dump_timeout" yaml:"dump_timeout,omitempty"`
	Compress      bool                 `mapstructure:"compress" yaml:"compress"`
	UploadTargets []UploadTargetConfig `mapstructure:"upload_targets" yaml:"upload_targets,omitempty"`
}

// TargetConfig describes one database to protect.
type TargetConfig struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Type     string `mapstructure:"type" yaml:"type"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
	Database string `mapstructure:"database" yaml:"database"`

	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
	RetentionCount int    `mapstructure:"retention_count" yaml:"retention_count"`
	// Schedule is a 6-field cron expression (seconds first). Empty means
	// the target is never picked up by the daemon, only by one-shot runs.
	Schedule string `mapstructure:"schedule" yaml:"schedule,omitempty"`
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
}

type UploadTargetConfig struct {
	Type    string `mapstructure:"type" yaml:"type"`
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`

	// Google Drive
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file,omitempty"`
	FolderID        string `mapstructure:"folder_id" yaml:"folder_id,omitempty"`

	// AWS S3
	Region    string `mapstructure:"region" yaml:"region,omitempty"`
	Bucket    string `mapstructure:"bucket" yaml:"bucket,omitempty"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key,omitempty"`
	Prefix    string `mapstructure:"prefix" yaml:"prefix,omitempty"`

	// Telegram
	BotToken   string `mapstructure:"bot_token" yaml:"bot_token,omitempty"`
	ChatID     string `mapstructure:"chat_id" yaml:"chat_id,omitempty"`
	SendFile   bool   `mapstructure:"send_file" yaml:"send_file,omitempty"`
	NotifyOnly bool   `mapstructure:"notify_only" yaml:"notify_only,omitempty"`
}

// MarshalYAML writes durations as strings ("10s") so saved config files
// stay hand-editable; viper's duration hook reads them back.
func (b BackupConfig) MarshalYAML() (interface{}, error) {
	type raw struct {
		TickInterval   string               `yaml:"tick_interval"`
		LookbackWindow string               `yaml:"lookback_window"`
		DumpTimeout    string               `yaml:"dump_timeout,omitempty"`
		Compress       bool                 `yaml:"compress"`
		UploadTargets  []UploadTargetConfig `yaml:"upload_targets,omitempty"`
	}
	out := raw{
		TickInterval:   b.TickInterval.String(),
		LookbackWindow: b.LookbackWindow.String(),
		Compress:       b.Compress,
		UploadTargets:  b.UploadTargets,
	}
	if b.DumpTimeout > 0 {
		out.DumpTimeout = b.DumpTimeout.String()
	}
	return out, nil
}

// SupportedTypes is the closed set of database kinds the engine backs up.
var SupportedTypes = []string{"mariadb", "mysql", "postgresql"}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config directory: %w", err)
	}
	return filepath.Join(base, "dbshield", "config.yaml"), nil
}

// Load reads the configuration at path. A missing file yields an empty,
// valid configuration so first-run commands can bootstrap it.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		applyDefaults(cfg)
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Targets omitting the enabled key default to enabled; a plain bool
	// cannot tell "absent" from "false" after unmarshalling.
	if raw, ok := v.Get("targets").([]interface{}); ok {
		for i, entry := range raw {
			if i >= len(cfg.Targets) {
				break
			}
			m, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			if _, set := m["enabled"]; !set {
				cfg.Targets[i].Enabled = true
			}
		}
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dbshield"
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.Backup.TickInterval <= 0 {
		cfg.Backup.TickInterval = 10 * time.Second
	}
	if cfg.Backup.LookbackWindow <= 0 {
		cfg.Backup.LookbackWindow = 61 * time.Second
	}
}

// Save writes the configuration back to path, creating the directory if
// needed. Mode 0600 because target entries carry passwords.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Backup.LookbackWindow <= c.Backup.TickInterval {
		return fmt.Errorf("backup.lookback_window (%s) must be greater than backup.tick_interval (%s)",
			c.Backup.LookbackWindow, c.Backup.TickInterval)
	}

	seen := make(map[string]bool, len(c.Targets))
	for i, t := range c.Targets {
		if t.Name == "" {
			return fmt.Errorf("targets[%d]: name is required", i)
		}
		if seen[t.Name] {
			return fmt.Errorf("targets[%d]: duplicate target name %q", i, t.Name)
		}
		seen[t.Name] = true

		if !isSupportedType(t.Type) {
			return fmt.Errorf("targets[%d]: unsupported type %q", i, t.Type)
		}
		if t.Host == "" {
			return fmt.Errorf("targets[%d]: host is required", i)
		}
		if t.Port <= 0 || t.Port > 65535 {
			return fmt.Errorf("targets[%d]: port %d out of range", i, t.Port)
		}
		if t.OutputDir == "" {
			return fmt.Errorf("targets[%d]: output_dir is required", i)
		}
		if t.RetentionCount < 0 {
			return fmt.Errorf("targets[%d]: retention_count must not be negative", i)
		}
	}
	return nil
}

func isSupportedType(dbType string) bool {
	for _, t := range SupportedTypes {
		if t == dbType {
			return true
		}
	}
	return false
}

// EnabledTargets returns the targets the engine should consider.
func (c *Config) EnabledTargets() []TargetConfig {
	var enabled []TargetConfig
	for _, t := range c.Targets {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// EnabledUploadTargets returns the remote destinations to mirror to.
func (c *Config) EnabledUploadTargets() []UploadTargetConfig {
	var enabled []UploadTargetConfig
	for _, t := range c.Backup.UploadTargets {
		if t.Enabled {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// FindTarget resolves a target by name or 1-based position, mirroring the
// CLI convention where list rows are numbered from 1.
func (c *Config) FindTarget(query string) (int, error) {
	if id, err := strconv.Atoi(query); err == nil && id > 0 && id <= len(c.Targets) {
		return id - 1, nil
	}
	for i, t := range c.Targets {
		if t.Name == query {
			return i, nil
		}
	}
	return 0, fmt.Errorf("no target named %q", query)
}

// DefaultPort returns the conventional port for a database type.
func DefaultPort(dbType string) int {
	switch dbType {
	case "postgresql":
		return 5432
	default:
		return 3306
	}
}
