package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	// Vendor API
	BaseURL    string `envconfig:"LCSC_BASE_URL" default:"https://wmsc.lcsc.com/ftps/wm" validate:"required,url"`
	Fetcher    string `envconfig:"LCSC_FETCHER" default:"http" validate:"oneof=http browser"` // "http", "browser"
	BrowserBin string `envconfig:"ROD_BROWSER_BIN"`

	// Search defaults
	MinStock int    `envconfig:"LCSC_MIN_STOCK" default:"500" validate:"gte=0"`
	SortBy   string `envconfig:"LCSC_SORT_BY" default:"stock" validate:"oneof=stock price"`

	// Outbound politeness
	RespectRobots bool    `envconfig:"LCSC_RESPECT_ROBOTS" default:"false"`
	DelayProfile  string  `envconfig:"LCSC_DELAY_PROFILE" default:"off" validate:"oneof=off aggressive normal cautious"`
	RatePerSecond float64 `envconfig:"LCSC_RATE_PER_SECOND" default:"2" validate:"gte=0"`
	RateBurst     int     `envconfig:"LCSC_RATE_BURST" default:"3" validate:"gte=1"`
	MaxConcurrent int     `envconfig:"LCSC_MAX_CONCURRENT" default:"5" validate:"gte=1"`
	Proxies       string  `envconfig:"LCSC_PROXIES"` // comma-separated proxy URLs

	LogLevel string `envconfig:"LCSC_LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// MCP HTTP server
	HTTPPort string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	APIKey   string `envconfig:"LCSC_API_KEY"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DefaultConfig returns configuration with the same defaults Load applies.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:       "https://wmsc.lcsc.com/ftps/wm",
		Fetcher:       "http",
		MinStock:      500,
		SortBy:        "stock",
		DelayProfile:  "off",
		RatePerSecond: 2,
		RateBurst:     3,
		MaxConcurrent: 5,
		LogLevel:      "info",
		HTTPPort:      "8080",
	}
}

// Load reads a .env file (if present) and then the environment. The result
// is validated.
func Load() (*Config, error) {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate normalises case-insensitive values and checks every field.
func (c *Config) Validate() error {
	c.SortBy = strings.ToLower(c.SortBy)
	c.Fetcher = strings.ToLower(c.Fetcher)
	c.DelayProfile = strings.ToLower(c.DelayProfile)
	c.LogLevel = strings.ToLower(c.LogLevel)
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
