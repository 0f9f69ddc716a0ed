package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/sipcalc/sip-calculator/internal/domain"
)

// Settings holds application-level configuration shared by the CLI, the
// HTTP server and the scheduler.
type Settings struct {
	Currency string `yaml:"currency"`
	History  struct {
		Backend   string `yaml:"backend"` // memory, file, sqlite or redis
		Capacity  int    `yaml:"capacity"`
		Path      string `yaml:"path"` // JSON file or SQLite database
		RedisAddr string `yaml:"redis_addr"`
		RedisKey  string `yaml:"redis_key"`
	} `yaml:"history"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Schedule struct {
		ReportCron string   `yaml:"report_cron"`
		OutputDir  string   `yaml:"output_dir"`
		Formats    []string `yaml:"formats"`
	} `yaml:"schedule"`
}

// Settings defaults.
const (
	DefaultHistoryBackend  = "file"
	DefaultHistoryCapacity = 10
	DefaultHistoryPath     = "data/sip_history.json"
	DefaultRedisAddr       = "localhost:6379"
	DefaultRedisKey        = "sip_history"
	DefaultServerAddr      = ":8080"
	DefaultReportCron      = "0 0 8 * * 1"
	DefaultReportDir       = "reports"
)

// LoadSettings reads settings from an optional YAML file, then applies
// environment variable overrides and defaults. A missing file is not an error.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read settings: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("parse settings: %w", err)
			}
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SIPCALC_CURRENCY"); v != "" {
		s.Currency = v
	}
	if v := os.Getenv("SIPCALC_HISTORY_BACKEND"); v != "" {
		s.History.Backend = v
	}
	if v := os.Getenv("SIPCALC_HISTORY_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SIPCALC_HISTORY_CAPACITY: %w", err)
		}
		s.History.Capacity = n
	}
	if v := os.Getenv("SIPCALC_HISTORY_PATH"); v != "" {
		s.History.Path = v
	}
	if v := os.Getenv("SIPCALC_REDIS_ADDR"); v != "" {
		s.History.RedisAddr = v
	}
	if v := os.Getenv("SIPCALC_ADDR"); v != "" {
		s.Server.Addr = v
	}
	if v := os.Getenv("SIPCALC_REPORT_CRON"); v != "" {
		s.Schedule.ReportCron = v
	}
	if v := os.Getenv("SIPCALC_REPORT_DIR"); v != "" {
		s.Schedule.OutputDir = v
	}

	// Defaults
	if s.Currency == "" {
		s.Currency = "USD"
	}
	if s.History.Backend == "" {
		s.History.Backend = DefaultHistoryBackend
	}
	if s.History.Capacity == 0 {
		s.History.Capacity = DefaultHistoryCapacity
	}
	if s.History.Path == "" {
		s.History.Path = DefaultHistoryPath
	}
	if s.History.RedisAddr == "" {
		s.History.RedisAddr = DefaultRedisAddr
	}
	if s.History.RedisKey == "" {
		s.History.RedisKey = DefaultRedisKey
	}
	if s.Server.Addr == "" {
		s.Server.Addr = DefaultServerAddr
	}
	if s.Schedule.ReportCron == "" {
		s.Schedule.ReportCron = DefaultReportCron
	}
	if s.Schedule.OutputDir == "" {
		s.Schedule.OutputDir = DefaultReportDir
	}
	if len(s.Schedule.Formats) == 0 {
		s.Schedule.Formats = []string{"html", "breakdown-csv"}
	}

	return s, nil
}

// Validate checks that settings values are usable.
func (s *Settings) Validate() error {
	if s.History.Capacity < 0 {
		return fmt.Errorf("history.capacity must not be negative")
	}
	if !domain.IsSupportedCurrency(s.Currency) {
		return fmt.Errorf("unsupported currency %q", s.Currency)
	}
	return nil
}
