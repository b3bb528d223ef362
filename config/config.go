// Package config provides configuration loading and management for TestCaseGenie.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete TestCaseGenie configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Model      ModelConfig      `yaml:"model"`
	Generation GenerationConfig `yaml:"generation"`
	Tracker    TrackerConfig    `yaml:"tracker"`
	Client     ClientConfig     `yaml:"client"`
}

// ServerConfig configures the generation gateway
type ServerConfig struct {
	// Port is the listen port (default: 5000, overridden by $PORT)
	Port int `yaml:"port"`
	// CORSOrigin is sent as Access-Control-Allow-Origin (default: "*")
	CORSOrigin string `yaml:"cors_origin"`
	// ReadTimeout bounds reading a request
	ReadTimeout time.Duration `yaml:"read_timeout"`
	// WriteTimeout bounds writing a response; it must exceed the model timeout
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ModelConfig configures the text-generation model
type ModelConfig struct {
	// Provider is the registered provider name ("gemini" or "openai")
	Provider string `yaml:"provider"`
	// Name is the provider-specific model (default: gemini-2.0-flash)
	Name string `yaml:"name"`
	// Endpoint overrides the provider base URL (empty = provider default)
	Endpoint string `yaml:"endpoint"`
	// Temperature controls randomness (0.0-2.0, default: 0.2)
	Temperature float64 `yaml:"temperature"`
	// Timeout is the maximum time to wait for one model response
	Timeout time.Duration `yaml:"timeout"`
}

// GenerationConfig configures prompt construction and client validation
type GenerationConfig struct {
	// NavigationURL is the page every generated step list starts from
	NavigationURL string `yaml:"navigation_url"`
	// RejectEmptyIssuePrompt makes issue-derived generation reject issues
	// without a description, like free-text submission does
	RejectEmptyIssuePrompt bool `yaml:"reject_empty_issue_prompt"`
}

// TrackerConfig configures the issue tracker API
type TrackerConfig struct {
	// BaseURL is the tracker API root (e.g. http://localhost:8000/api/jira)
	BaseURL string `yaml:"base_url"`
	// ProjectKey scopes issues, components and boards
	ProjectKey string `yaml:"project_key"`
	// BoardID selects the board sprints are listed from
	BoardID int `yaml:"board_id"`
	// PageSize is the number of issues per page
	PageSize int `yaml:"page_size"`
	// BrowseURL is the web prefix issue keys are appended to
	BrowseURL string `yaml:"browse_url"`
}

// ClientConfig configures the CLI and TUI clients
type ClientConfig struct {
	// GatewayURL is the root URL of the generation gateway
	GatewayURL string `yaml:"gateway_url"`
	// ExportDir is where spreadsheets are written (default: current directory)
	ExportDir string `yaml:"export_dir"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         5000,
			CORSOrigin:   "*",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		Model: ModelConfig{
			Provider:    "gemini",
			Name:        "gemini-2.0-flash",
			Endpoint:    "", // Provider default
			Temperature: 0.2,
			Timeout:     60 * time.Second,
		},
		Generation: GenerationConfig{
			NavigationURL:          "https://a-qa-my.siliconexpert.com/",
			RejectEmptyIssuePrompt: false,
		},
		Tracker: TrackerConfig{
			BaseURL:    "http://localhost:8000/api/jira",
			ProjectKey: "SE2",
			BoardID:    942,
			PageSize:   5,
			BrowseURL:  "https://arrowecommerce.atlassian.net/browse/",
		},
		Client: ClientConfig{
			GatewayURL: "http://localhost:5000",
			ExportDir:  ".",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Model.Provider == "" {
		return fmt.Errorf("model.provider is required")
	}
	if c.Model.Name == "" {
		return fmt.Errorf("model.name is required")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("model.temperature must be between 0 and 2")
	}
	if c.Model.Timeout <= 0 {
		return fmt.Errorf("model.timeout must be positive")
	}
	if c.Model.Endpoint != "" {
		if err := validateURL("model.endpoint", c.Model.Endpoint); err != nil {
			return err
		}
	}
	if c.Tracker.PageSize <= 0 {
		return fmt.Errorf("tracker.page_size must be positive")
	}
	if err := validateURL("tracker.base_url", c.Tracker.BaseURL); err != nil {
		return err
	}
	if err := validateURL("client.gateway_url", c.Client.GatewayURL); err != nil {
		return err
	}
	return nil
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
	}
	return nil
}

// Addr returns the gateway listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// APIKeyEnv returns the environment variable holding the model API key for
// the configured provider, or "" when the provider needs none.
func (c *Config) APIKeyEnv() string {
	switch strings.ToLower(c.Model.Provider) {
	case "gemini":
		return "GEMINI_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// APIKey returns the model API key from the environment.
// Keys are never read from or written to YAML.
func (c *Config) APIKey() string {
	env := c.APIKeyEnv()
	if env == "" {
		return ""
	}
	return os.Getenv(env)
}

// RequireAPIKey fails when the configured provider needs a key and none is set.
func (c *Config) RequireAPIKey() error {
	if strings.ToLower(c.Model.Provider) != "gemini" {
		return nil
	}
	if c.APIKey() == "" {
		return fmt.Errorf("%s is not set; export it or add it to .env", c.APIKeyEnv())
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
// Fields absent from the file are zero; merge the result onto DefaultConfig.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// Boolean flags can only be switched on by a later layer.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Server
	if other.Server.Port != 0 {
		c.Server.Port = other.Server.Port
	}
	if other.Server.CORSOrigin != "" {
		c.Server.CORSOrigin = other.Server.CORSOrigin
	}
	if other.Server.ReadTimeout != 0 {
		c.Server.ReadTimeout = other.Server.ReadTimeout
	}
	if other.Server.WriteTimeout != 0 {
		c.Server.WriteTimeout = other.Server.WriteTimeout
	}

	// Model
	if other.Model.Provider != "" {
		c.Model.Provider = other.Model.Provider
	}
	if other.Model.Name != "" {
		c.Model.Name = other.Model.Name
	}
	if other.Model.Endpoint != "" {
		c.Model.Endpoint = other.Model.Endpoint
	}
	if other.Model.Temperature != 0 {
		c.Model.Temperature = other.Model.Temperature
	}
	if other.Model.Timeout != 0 {
		c.Model.Timeout = other.Model.Timeout
	}

	// Generation
	if other.Generation.NavigationURL != "" {
		c.Generation.NavigationURL = other.Generation.NavigationURL
	}
	if other.Generation.RejectEmptyIssuePrompt {
		c.Generation.RejectEmptyIssuePrompt = true
	}

	// Tracker
	if other.Tracker.BaseURL != "" {
		c.Tracker.BaseURL = other.Tracker.BaseURL
	}
	if other.Tracker.ProjectKey != "" {
		c.Tracker.ProjectKey = other.Tracker.ProjectKey
	}
	if other.Tracker.BoardID != 0 {
		c.Tracker.BoardID = other.Tracker.BoardID
	}
	if other.Tracker.PageSize != 0 {
		c.Tracker.PageSize = other.Tracker.PageSize
	}
	if other.Tracker.BrowseURL != "" {
		c.Tracker.BrowseURL = other.Tracker.BrowseURL
	}

	// Client
	if other.Client.GatewayURL != "" {
		c.Client.GatewayURL = other.Client.GatewayURL
	}
	if other.Client.ExportDir != "" {
		c.Client.ExportDir = other.Client.ExportDir
	}
}
