package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the billing tool. Every field
// has a default, so the tool runs without any config file present.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Limits   LimitsConfig   `yaml:"limits"`
	Billing  BillingConfig  `yaml:"billing"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	// ReceiptDir is where receipt_<KOT>.txt files are written.
	// Empty means the current working directory.
	ReceiptDir string `yaml:"receipt_dir"`
}

// LimitsConfig holds the session capacity policy.
type LimitsConfig struct {
	MaxTables        int `yaml:"max_tables"`
	MaxMenu          int `yaml:"max_menu"`
	MaxItemsPerOrder int `yaml:"max_items_per_order"`
	MaxOrders        int `yaml:"max_orders"`
}

// BillingConfig holds tax, service and discount parameters.
type BillingConfig struct {
	GSTRate        float64 `yaml:"gst_rate"`
	ServiceRate    float64 `yaml:"service_rate"`
	Tier1Threshold float64 `yaml:"discount_tier1_threshold"`
	Tier1Rate      float64 `yaml:"discount_tier1_rate"`
	Tier2Threshold float64 `yaml:"discount_tier2_threshold"`
	Tier2Rate      float64 `yaml:"discount_tier2_rate"`
}

// RabbitMQConfig holds the optional kitchen event broker settings.
// Publishing stays off unless Enabled is set, keeping the tool
// fully standalone by default.
type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Default returns the built-in configuration matching the classic
// tool: 50 tables, 80 menu slots, 60 lines per order, 500 orders a
// session, 5% GST on food, 10% dine-in service, 10%/15% discount
// tiers above 1000/2000.
func Default() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxTables:        50,
			MaxMenu:          80,
			MaxItemsPerOrder: 60,
			MaxOrders:        500,
		},
		Billing: BillingConfig{
			GSTRate:        0.05,
			ServiceRate:    0.10,
			Tier1Threshold: 1000,
			Tier1Rate:      0.10,
			Tier2Threshold: 2000,
			Tier2Rate:      0.15,
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			User: "guest",
		},
	}
}

// Load reads configuration from a YAML file, applying defaults for
// anything the file leaves out. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	return cfg, nil
}

// Validate checks that limits and billing parameters are coherent.
func (c *Config) Validate() error {
	if c.Limits.MaxTables < 1 {
		return fmt.Errorf("limits.max_tables must be at least 1")
	}
	if c.Limits.MaxMenu < 1 {
		return fmt.Errorf("limits.max_menu must be at least 1")
	}
	if c.Limits.MaxItemsPerOrder < 1 {
		return fmt.Errorf("limits.max_items_per_order must be at least 1")
	}
	if c.Limits.MaxOrders < 1 {
		return fmt.Errorf("limits.max_orders must be at least 1")
	}
	if c.Billing.GSTRate < 0 || c.Billing.ServiceRate < 0 {
		return fmt.Errorf("billing rates must not be negative")
	}
	if c.Billing.Tier1Rate < 0 || c.Billing.Tier2Rate < 0 {
		return fmt.Errorf("discount rates must not be negative")
	}
	if c.Billing.Tier2Threshold <= c.Billing.Tier1Threshold {
		return fmt.Errorf("discount_tier2_threshold must exceed discount_tier1_threshold")
	}
	return nil
}

// AMQPURL returns the broker connection URL for kitchen events.
func (c *Config) AMQPURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
