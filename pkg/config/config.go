package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server" jsonschema:"description=Web UI server configuration"`
	Backend BackendConfig `yaml:"backend" json:"backend" jsonschema:"description=News service connection"`
	Monitor MonitorConfig `yaml:"monitor" json:"monitor" jsonschema:"description=Fetch orchestration settings"`
	UI      UIConfig      `yaml:"ui" json:"ui" jsonschema:"description=Presentation settings"`
}

// ServerConfig holds web UI server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=2m,description=HTTP server read/write timeout"`
}

// BackendConfig holds news service connection settings
type BackendConfig struct {
	URL          string        `yaml:"url" json:"url" jsonschema:"required,default=http://localhost:8000,description=Base URL of the news service"`
	FetchPath    string        `yaml:"fetch_path" json:"fetch_path" jsonschema:"default=/api/fetch-news,description=News fetch endpoint path"`
	HealthPath   string        `yaml:"health_path" json:"health_path" jsonschema:"default=/api/health,description=Health endpoint path"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=90s,description=Timeout of a single news fetch request"`
	WaitReady    bool          `yaml:"wait_ready" json:"wait_ready" jsonschema:"default=false,description=Wait for the news service health endpoint on startup"`
	WaitAttempts int           `yaml:"wait_attempts" json:"wait_attempts" jsonschema:"default=10,minimum=1,description=Health check attempts on startup"`
}

// MonitorConfig holds fetch orchestration settings
type MonitorConfig struct {
	DiscardStale bool `yaml:"discard_stale" json:"discard_stale" jsonschema:"default=false,description=Drop results of fetches superseded by a newer fetch"`
}

// UIConfig holds presentation settings
type UIConfig struct {
	DateFormat       string   `yaml:"date_format" json:"date_format" jsonschema:"description=Go time layout for the date column"`
	DefaultCompanies []string `yaml:"default_companies" json:"default_companies" jsonschema:"description=Company rows pre-filled on start"`
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		log.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 2 * time.Minute
	}

	// set defaults for backend
	if c.Backend.URL == "" {
		c.Backend.URL = "http://localhost:8000"
	}
	if c.Backend.FetchPath == "" {
		c.Backend.FetchPath = "/api/fetch-news"
	}
	if c.Backend.HealthPath == "" {
		c.Backend.HealthPath = "/api/health"
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 90 * time.Second
	}
	if c.Backend.WaitAttempts == 0 {
		c.Backend.WaitAttempts = 10
	}

	// set defaults for ui
	if c.UI.DateFormat == "" {
		c.UI.DateFormat = "Jan 2, 2006"
	}
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil {
		return fmt.Errorf("backend.url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.url must be http or https, got %q", c.Backend.URL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend.url must have a host")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must be non-negative")
	}
	if c.Backend.WaitAttempts < 1 {
		return fmt.Errorf("backend.wait_attempts must be at least 1")
	}

	// validate server config
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetDateFormat returns date layout for display
func (c *Config) GetDateFormat() string {
	return c.UI.DateFormat
}
