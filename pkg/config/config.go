package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Transport   string `yaml:"transport" default:"stdio"`
	MCP         struct {
		Name    string `yaml:"name" default:"yahoo-finance"`
		Version string `yaml:"version" default:"1.0.0"`
	} `yaml:"mcp"`
	Server struct {
		Host            string        `yaml:"host" default:"0.0.0.0"`
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		CORS            bool          `yaml:"cors" default:"true"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Log struct {
		Level    string `yaml:"level" default:"info"`
		Format   string `yaml:"format" default:"json"`
		Output   string `yaml:"output" default:"stderr"`
		Shipping struct {
			Enabled   bool          `yaml:"enabled"`
			Brokers   []string      `yaml:"brokers"`
			Topic     string        `yaml:"topic" default:"stockmcp.logs"`
			Interval  time.Duration `yaml:"interval" default:"30s"`
			Threshold int           `yaml:"threshold" default:"100"`
		} `yaml:"shipping"`
	} `yaml:"log"`
	Yahoo struct {
		QueryURL      string        `yaml:"query_url" default:"https://query2.finance.yahoo.com"`
		TimeseriesURL string        `yaml:"timeseries_url" default:"https://query1.finance.yahoo.com"`
		CookieURL     string        `yaml:"cookie_url" default:"https://fc.yahoo.com"`
		CrumbURL      string        `yaml:"crumb_url" default:"https://query1.finance.yahoo.com/v1/test/getcrumb"`
		UserAgent     string        `yaml:"user_agent" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/128.0.0.0 Safari/537.36"`
		Timeout       time.Duration `yaml:"timeout" default:"15s"`
		QuotesCount   int           `yaml:"quotes_count" default:"6"`
		NewsCount     int           `yaml:"news_count" default:"8"`
		RateLimit     struct {
			Enabled      bool          `yaml:"enabled"`
			Backend      string        `yaml:"backend" default:"memory"`
			Capacity     int           `yaml:"capacity" default:"20"`
			RefillPerSec float64       `yaml:"refill_per_sec" default:"5"`
			Window       time.Duration `yaml:"window" default:"1s"`
		} `yaml:"rate_limit"`
	} `yaml:"yahoo"`
	Redis struct {
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix" default:"stockmcp"`
	} `yaml:"redis"`
}

// Default returns a configuration populated only from struct defaults.
func Default() *Config {
	var c Config
	// defaults.Set only fails on malformed tags
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file. A missing file is not an
// error: the process runs on defaults, which is what MCP clients spawning the
// binary without arguments expect.
func Load(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("STOCKMCP_ENV"); v != "" {
		c.Environment = v
	}
	if v := getenv("STOCKMCP_TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := getenv("STOCKMCP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STOCKMCP_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := getenv("STOCKMCP_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("YAHOO_USER_AGENT"); v != "" {
		c.Yahoo.UserAgent = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Log.Shipping.Brokers = strings.Split(v, ",")
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("transport must be '%s' or '%s', got '%s'", TransportStdio, TransportHTTP, c.Transport)
	}
	if c.Transport == TransportHTTP && (c.Server.Port <= 0 || c.Server.Port > 65535) {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.MCP.Name == "" || c.MCP.Version == "" {
		return fmt.Errorf("mcp.name and mcp.version are required")
	}
	if c.Yahoo.QueryURL == "" || c.Yahoo.TimeseriesURL == "" {
		return fmt.Errorf("yahoo.query_url and yahoo.timeseries_url are required")
	}
	if c.Yahoo.Timeout <= 0 {
		return fmt.Errorf("yahoo.timeout must be positive")
	}
	if rl := c.Yahoo.RateLimit; rl.Enabled {
		if rl.Backend != "memory" && rl.Backend != "redis" {
			return fmt.Errorf("yahoo.rate_limit.backend must be 'memory' or 'redis', got '%s'", rl.Backend)
		}
		if rl.Capacity <= 0 {
			return fmt.Errorf("yahoo.rate_limit.capacity must be positive")
		}
		if rl.Backend == "memory" && rl.RefillPerSec <= 0 {
			return fmt.Errorf("yahoo.rate_limit.refill_per_sec must be positive")
		}
		if rl.Backend == "redis" && rl.Window <= 0 {
			return fmt.Errorf("yahoo.rate_limit.window must be positive")
		}
	}
	if s := c.Log.Shipping; s.Enabled {
		if len(s.Brokers) == 0 {
			return fmt.Errorf("log.shipping.brokers cannot be empty")
		}
		if s.Topic == "" {
			return fmt.Errorf("log.shipping.topic is required")
		}
	}
	return nil
}
