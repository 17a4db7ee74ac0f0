package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/model"
)

// EnvPrefix prefixes every environment override, e.g. MARKETDASH_BATCH_SIZE.
const EnvPrefix = "MARKETDASH"

// Config holds all application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Universe UniverseConfig `mapstructure:"universe"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ProviderConfig configures the market data provider client.
type ProviderConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	UserAgent      string        `mapstructure:"user_agent"`
	Proxy          string        `mapstructure:"proxy"`
	Mock           bool          `mapstructure:"mock"`
}

// BatchConfig controls the master fetch pacing.
type BatchConfig struct {
	Size  int           `mapstructure:"size"`
	Delay time.Duration `mapstructure:"delay"`
}

// CacheConfig holds per-cache TTLs.
type CacheConfig struct {
	AdjustedTTL   time.Duration `mapstructure:"adjusted_ttl"`
	UnadjustedTTL time.Duration `mapstructure:"unadjusted_ttl"`
	UniverseTTL   time.Duration `mapstructure:"universe_ttl"`
	SheetTTL      time.Duration `mapstructure:"sheet_ttl"`
}

// UniverseConfig locates the instrument catalogue.
type UniverseConfig struct {
	File              string `mapstructure:"file"`
	HeavyweightsURL   string `mapstructure:"heavyweights_url"`
	ModelPortfolioURL string `mapstructure:"model_portfolio_url"`
}

// AnalysisConfig selects the swing window and bar frequency.
type AnalysisConfig struct {
	Period string `mapstructure:"period"`
	Weekly bool   `mapstructure:"weekly"`
}

// ScheduleConfig drives periodic refreshes. Empty Cron disables scheduling.
type ScheduleConfig struct {
	Cron string `mapstructure:"cron"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig points at the node-exporter textfile to write after each refresh.
type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"`
}

// Load reads .env, then the YAML file at path (a missing file is allowed),
// then MARKETDASH_* environment overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("provider.timeout", "30s")
	v.SetDefault("provider.requests_per_sec", 2.0)
	v.SetDefault("provider.user_agent", "Mozilla/5.0")
	v.SetDefault("provider.proxy", "")
	v.SetDefault("provider.mock", false)

	v.SetDefault("batch.size", 10)
	v.SetDefault("batch.delay", "2s")

	v.SetDefault("cache.adjusted_ttl", "5m")
	v.SetDefault("cache.unadjusted_ttl", "15m")
	v.SetDefault("cache.universe_ttl", "1h")
	v.SetDefault("cache.sheet_ttl", "10m")

	v.SetDefault("universe.file", "")
	v.SetDefault("universe.heavyweights_url", "")
	v.SetDefault("universe.model_portfolio_url", "")

	v.SetDefault("analysis.period", "1 Yr")
	v.SetDefault("analysis.weekly", false)

	v.SetDefault("schedule.cron", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("metrics.textfile", "")
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.Provider.BaseURL == "" && !c.Provider.Mock {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive")
	}
	if c.Provider.RequestsPerSec <= 0 {
		return fmt.Errorf("provider.requests_per_sec must be positive")
	}
	if c.Batch.Size < 1 || c.Batch.Size > collector.MaxBatchSize {
		return fmt.Errorf("batch.size must be between 1 and %d", collector.MaxBatchSize)
	}
	if c.Batch.Delay <= 0 {
		return fmt.Errorf("batch.delay must be positive")
	}
	if c.Cache.AdjustedTTL <= 0 || c.Cache.UnadjustedTTL <= 0 || c.Cache.UniverseTTL <= 0 || c.Cache.SheetTTL <= 0 {
		return fmt.Errorf("cache ttls must be positive")
	}
	if _, err := model.LookupSwingPeriod(c.Analysis.Period); err != nil {
		return fmt.Errorf("analysis.period: %w", err)
	}
	if c.Schedule.Cron != "" {
		if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
			return fmt.Errorf("schedule.cron: %w", err)
		}
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	return nil
}

// SwingPeriod resolves Analysis.Period.
func (c *Config) SwingPeriod() model.SwingPeriod {
	p, err := model.LookupSwingPeriod(c.Analysis.Period)
	if err != nil {
		return model.SwingPeriods[0]
	}
	return p
}

// CronParser parses six-field specs with a leading seconds field.
var CronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
