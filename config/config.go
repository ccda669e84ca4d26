// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/hellovm/consts"
	"github.com/ava-labs/hellovm/pebble"
	"github.com/ava-labs/hellovm/pubsub"
	"github.com/ava-labs/hellovm/server"
	"github.com/ava-labs/hellovm/trace"
)

const (
	defaultHTTPPort        = 9650
	defaultShutdownTimeout = 10 * time.Second
	defaultStreamBacklog   = 64
)

type Config struct {
	// Logging
	LogLevel        string `json:"logLevel" yaml:"logLevel"`
	LogDisplayLevel string `json:"logDisplayLevel" yaml:"logDisplayLevel"`
	LogFormat       string `json:"logFormat" yaml:"logFormat"`
	LogDir          string `json:"logDir" yaml:"logDir"`
	LogMaxSize      int    `json:"logMaxSize" yaml:"logMaxSize"` // megabytes
	LogMaxFiles     int    `json:"logMaxFiles" yaml:"logMaxFiles"`
	LogMaxAge       int    `json:"logMaxAge" yaml:"logMaxAge"` // days

	// Storage
	DataDir string        `json:"dataDir" yaml:"dataDir"`
	Pebble  pebble.Config `json:"pebble" yaml:"pebble"`

	// API
	HTTPHost        string              `json:"httpHost" yaml:"httpHost"`
	HTTPPort        uint16              `json:"httpPort" yaml:"httpPort"`
	HTTP            server.HTTPConfig   `json:"http" yaml:"http"`
	AllowedOrigins  []string            `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedHosts    []string            `json:"allowedHosts" yaml:"allowedHosts"`
	ShutdownTimeout time.Duration       `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	StreamBacklog   int                 `json:"streamBacklog" yaml:"streamBacklog"`
	MetricsEnabled  bool                `json:"metricsEnabled" yaml:"metricsEnabled"`
	Websocket       pubsub.ServerConfig `json:"websocket" yaml:"websocket"`

	// Tracing
	Trace trace.Config `json:"trace" yaml:"trace"`
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:        logging.Info.String(),
		LogDisplayLevel: logging.Info.String(),
		LogFormat:       "auto",
		LogDir:          "logs",
		LogMaxSize:      8,
		LogMaxFiles:     7,
		LogMaxAge:       30,

		DataDir: "db",
		Pebble:  pebble.NewDefaultConfig(),

		HTTPHost:        "127.0.0.1",
		HTTPPort:        defaultHTTPPort,
		HTTP:            server.NewDefaultHTTPConfig(),
		AllowedOrigins:  []string{"*"},
		AllowedHosts:    []string{"localhost"},
		ShutdownTimeout: defaultShutdownTimeout,
		StreamBacklog:   defaultStreamBacklog,
		MetricsEnabled:  true,
		Websocket:       *pubsub.NewDefaultServerConfig(),

		Trace: trace.Config{
			Enabled:         false,
			TraceSampleRate: 0.1,
			AppName:         consts.Name,
			Agent:           consts.Name,
			Version:         consts.Version,
		},
	}
}

// New parses [b] over the defaults. YAML is a superset of JSON, so both
// formats are accepted.
func New(b []byte) (*Config, error) {
	c := NewDefaultConfig()
	if len(b) > 0 {
		if err := yaml.UnmarshalStrict(b, c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return c, c.Verify()
}

// Load reads the config at [path]. An empty [path] yields the defaults.
func Load(path string) (*Config, error) {
	if len(path) == 0 {
		c := NewDefaultConfig()
		return c, c.Verify()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(b)
}

func (c *Config) Verify() error {
	if _, err := logging.ToLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if _, err := logging.ToLevel(c.LogDisplayLevel); err != nil {
		return fmt.Errorf("%w: log display level %q", ErrInvalidConfig, c.LogDisplayLevel)
	}
	if len(c.DataDir) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrMissingDataDir)
	}
	if c.StreamBacklog <= 0 {
		return fmt.Errorf("%w: stream backlog must be positive", ErrInvalidConfig)
	}
	if c.Websocket.MaxPendingMessages <= 0 || c.Websocket.PingPeriod >= c.Websocket.PongWait {
		return fmt.Errorf("%w: invalid websocket settings", ErrInvalidConfig)
	}
	if c.Trace.Enabled && (c.Trace.TraceSampleRate <= 0 || c.Trace.TraceSampleRate > 1) {
		return fmt.Errorf("%w: trace sample rate %f", ErrInvalidConfig, c.Trace.TraceSampleRate)
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level {
	l, _ := logging.ToLevel(c.LogLevel)
	return l
}

func (c *Config) GetLogDisplayLevel() logging.Level {
	l, _ := logging.ToLevel(c.LogDisplayLevel)
	return l
}

func (c *Config) GetTraceConfig() *trace.Config { return &c.Trace }

func (c *Config) GetHTTPAddress() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(int(c.HTTPPort)))
}

// GetLoggingConfig converts the logging fields into the avalanchego logging
// configuration consumed by the log factory.
func (c *Config) GetLoggingConfig() (logging.Config, error) {
	format, err := logging.ToFormat(c.LogFormat, os.Stdout.Fd())
	if err != nil {
		return logging.Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   c.LogMaxSize,
			MaxFiles:  c.LogMaxFiles,
			MaxAge:    c.LogMaxAge,
			Directory: c.LogDir,
		},
		LogLevel:     c.GetLogLevel(),
		DisplayLevel: c.GetLogDisplayLevel(),
		LogFormat:    format,
	}, nil
}
