package controller

import (
	"log/slog"
	"time"
)

// DefaultVersion is what VERSION reports when no version is configured.
const DefaultVersion = "1.0.0"

// Config holds the settings for a Controller.
type Config struct {
	// Dialer opens the transport carrying the command stream. Required.
	Dialer Dialer
	// Board is the hardware driver the commands operate on. Required.
	Board Board
	// Version is the string reported by VERSION and in the banner.
	Version string
	// ReadyPollInterval is how often the transport's Ready predicate is
	// polled before entering the command loop.
	ReadyPollInterval time.Duration
	// Logger receives structured logs. Nil discards them.
	Logger *slog.Logger
}

func (c *Config) validate() error {
	if c.Dialer == nil {
		return ErrNoDialer
	}
	if c.Board == nil {
		return ErrNoBoard
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.ReadyPollInterval == 0 {
		c.ReadyPollInterval = 100 * time.Millisecond
	}
}

// ConfigBuilder assembles a Config through a fluent With... chain.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder returns an empty builder.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{}
}

// WithDialer sets the transport dialer.
func (b *ConfigBuilder) WithDialer(d Dialer) *ConfigBuilder {
	b.config.Dialer = d
	return b
}

// WithBoard sets the hardware driver.
func (b *ConfigBuilder) WithBoard(board Board) *ConfigBuilder {
	b.config.Board = board
	return b
}

// WithVersion sets the reported firmware version.
func (b *ConfigBuilder) WithVersion(version string) *ConfigBuilder {
	b.config.Version = version
	return b
}

// WithReadyPollInterval sets the transport readiness poll interval.
func (b *ConfigBuilder) WithReadyPollInterval(interval time.Duration) *ConfigBuilder {
	b.config.ReadyPollInterval = interval
	return b
}

// WithLogger sets the structured logger.
func (b *ConfigBuilder) WithLogger(logger *slog.Logger) *ConfigBuilder {
	b.config.Logger = logger
	return b
}

// Build applies defaults and validates the configuration.
func (b *ConfigBuilder) Build() (Config, error) {
	config := b.config
	config.setDefaults()
	if err := config.validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
