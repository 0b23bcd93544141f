// Package config loads the policy-parameter configuration from a yaml file.
// Every key has a default, so a missing file section (or no file at all)
// still yields a runnable configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full configuration surface of the pipeline
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	ValueColumn        string `mapstructure:"value_column"`
	DemandColumnPrefix string `mapstructure:"demand_column_prefix"`

	ACutoff float64 `mapstructure:"a_cutoff"`
	BCutoff float64 `mapstructure:"b_cutoff"`

	OrderingCost      float64 `mapstructure:"ordering_cost"`
	HoldingRate       float64 `mapstructure:"holding_rate"`
	ServiceLevelA     float64 `mapstructure:"service_level_a"`
	ServiceLevelB     float64 `mapstructure:"service_level_b"`
	ZScoreA           float64 `mapstructure:"z_score_a"`
	ZScoreB           float64 `mapstructure:"z_score_b"`
	ReviewPeriodBDays float64 `mapstructure:"review_period_b_days"`

	DefaultLeadTimeDays float64 `mapstructure:"default_lead_time_days"`
	Parallelism         int     `mapstructure:"parallelism"`
}

// Default returns the configuration with every key at its default value
func Default() *Config {
	return &Config{
		LogLevel:            "info",
		ValueColumn:         "total_mes",
		DemandColumnPrefix:  "Dia_",
		ACutoff:             0.80,
		BCutoff:             0.95,
		OrderingCost:        30000,
		HoldingRate:         0.20,
		ServiceLevelA:       0.98,
		ServiceLevelB:       0.95,
		ReviewPeriodBDays:   5,
		DefaultLeadTimeDays: 3,
	}
}

// Load reads the yaml configuration file, layering it over the defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	defaults := Default()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("value_column", defaults.ValueColumn)
	v.SetDefault("demand_column_prefix", defaults.DemandColumnPrefix)
	v.SetDefault("a_cutoff", defaults.ACutoff)
	v.SetDefault("b_cutoff", defaults.BCutoff)
	v.SetDefault("ordering_cost", defaults.OrderingCost)
	v.SetDefault("holding_rate", defaults.HoldingRate)
	v.SetDefault("service_level_a", defaults.ServiceLevelA)
	v.SetDefault("service_level_b", defaults.ServiceLevelB)
	v.SetDefault("z_score_a", defaults.ZScoreA)
	v.SetDefault("z_score_b", defaults.ZScoreB)
	v.SetDefault("review_period_b_days", defaults.ReviewPeriodBDays)
	v.SetDefault("default_lead_time_days", defaults.DefaultLeadTimeDays)
	v.SetDefault("parallelism", defaults.Parallelism)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config failed: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration invariants
func (c *Config) Validate() error {
	if c.ACutoff <= 0 {
		return fmt.Errorf("a_cutoff must be positive, got %v", c.ACutoff)
	}
	if c.BCutoff > 1 {
		return fmt.Errorf("b_cutoff cannot exceed 1, got %v", c.BCutoff)
	}
	if c.ACutoff >= c.BCutoff {
		return fmt.Errorf("a_cutoff (%v) must be less than b_cutoff (%v)", c.ACutoff, c.BCutoff)
	}
	if c.ZScoreA == 0 && (c.ServiceLevelA <= 0 || c.ServiceLevelA >= 1) {
		return fmt.Errorf("service_level_a must be in (0, 1), got %v", c.ServiceLevelA)
	}
	if c.ZScoreB == 0 && (c.ServiceLevelB <= 0 || c.ServiceLevelB >= 1) {
		return fmt.Errorf("service_level_b must be in (0, 1), got %v", c.ServiceLevelB)
	}
	if c.ReviewPeriodBDays <= 0 {
		return fmt.Errorf("review_period_b_days must be positive, got %v", c.ReviewPeriodBDays)
	}
	if c.OrderingCost < 0 {
		return fmt.Errorf("ordering_cost cannot be negative, got %v", c.OrderingCost)
	}
	if c.HoldingRate < 0 {
		return fmt.Errorf("holding_rate cannot be negative, got %v", c.HoldingRate)
	}
	if c.DefaultLeadTimeDays < 0 {
		return fmt.Errorf("default_lead_time_days cannot be negative, got %v", c.DefaultLeadTimeDays)
	}
	if c.DemandColumnPrefix == "" {
		return fmt.Errorf("demand_column_prefix cannot be empty")
	}
	return nil
}
