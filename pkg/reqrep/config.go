package reqrep

import (
	"fmt"
	"strings"
	"time"

	"github.com/hsiuhsiu/reqrep-go/pkg/reqrep/logging"
)

// Config is the serializable form of the connection options. The config
// package loads it from files and the environment.
type Config struct {
	// Driver names a registered driver. Empty means DefaultDriver.
	Driver string `mapstructure:"driver" yaml:"driver"`
	// Mode is a mode name or code accepted by ParseMode. Empty means request.
	Mode string `mapstructure:"mode" yaml:"mode"`

	DialTimeout     time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	ExchangeTimeout time.Duration `mapstructure:"exchange_timeout" yaml:"exchange_timeout"`
	PollInterval    time.Duration `mapstructure:"poll_interval" yaml:"poll_interval"`
	Linger          time.Duration `mapstructure:"linger" yaml:"linger"`
	DialAsync       bool          `mapstructure:"dial_async" yaml:"dial_async"`

	// Log configures a zap logger for connections. It is only built when
	// Outputs is non-empty.
	Log logging.Config `mapstructure:"log" yaml:"log"`
}

func DefaultConfig() Config {
	return Config{
		Driver:       DefaultDriver,
		Mode:         ModeRequest.String(),
		DialTimeout:  DefaultDialTimeout,
		PollInterval: DefaultPollInterval,
		Log: logging.Config{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks the fields that can be checked without a driver.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Mode) != "" {
		if _, err := ParseMode(c.Mode); err != nil {
			return err
		}
	}
	for name, d := range map[string]time.Duration{
		"dial_timeout":     c.DialTimeout,
		"exchange_timeout": c.ExchangeTimeout,
		"poll_interval":    c.PollInterval,
		"linger":           c.Linger,
	} {
		if d < 0 {
			return validationErr("config", fmt.Errorf("%s must not be negative (got %s)", name, d))
		}
	}
	return nil
}

// Options converts c into Dial options, building a logger from c.Log when it
// names outputs.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{WithConfig(c)}
	if len(c.Log.Outputs) > 0 {
		z, err := logging.Setup(c.Log)
		if err != nil {
			return nil, validationErr("config", err)
		}
		opts = append(opts, WithLogger(logging.NewZap(z)))
	}
	return opts, nil
}

// WithConfig applies the connection fields of c. Zero fields keep their
// defaults. An unparsable mode makes Dial fail with a validation error.
func WithConfig(c Config) Option {
	return func(o *options) {
		if c.Driver != "" {
			o.driver = c.Driver
		}
		if strings.TrimSpace(c.Mode) != "" {
			m, err := ParseMode(c.Mode)
			if err != nil {
				m = Mode(-1)
			}
			o.mode = m
		}
		if c.DialTimeout > 0 {
			o.dialTimeout = c.DialTimeout
		}
		if c.ExchangeTimeout > 0 {
			o.exchangeTimeout = c.ExchangeTimeout
		}
		if c.PollInterval > 0 {
			o.pollInterval = c.PollInterval
		}
		if c.Linger > 0 {
			o.linger = c.Linger
		}
		o.dialAsync = c.DialAsync
	}
}
