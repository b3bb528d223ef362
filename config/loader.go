package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "testcasegenie.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/testcasegenie"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// DotEnvFile is loaded from the working directory before environment overrides
	DotEnvFile = ".env"
)

// Environment variables that override file configuration.
const (
	EnvPort          = "PORT"
	EnvModelProvider = "TESTCASEGENIE_MODEL_PROVIDER"
	EnvModelName     = "TESTCASEGENIE_MODEL_NAME"
	EnvModelEndpoint = "TESTCASEGENIE_MODEL_ENDPOINT"
	EnvTrackerURL    = "TESTCASEGENIE_TRACKER_URL"
	EnvGatewayURL    = "TESTCASEGENIE_GATEWAY_URL"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger  *slog.Logger
	workDir string
	homeDir string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithWorkDir sets the directory project config and .env are searched from.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.workDir = dir
	}
}

// WithHomeDir sets the directory the user config is read from.
func WithHomeDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.homeDir = dir
	}
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/testcasegenie/config.yaml)
// 3. Project config (testcasegenie.yaml in current or parent directories)
// 4. .env in the working directory (never overrides variables already set)
// 5. Environment variables
func (l *Loader) Load() (*Config, error) {
	return l.load("")
}

// LoadWithFile is Load with an explicit config file in place of the project
// config search. A missing explicit file is an error.
func (l *Loader) LoadWithFile(path string) (*Config, error) {
	return l.load(path)
}

func (l *Loader) load(explicitPath string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Load user config
	userConfigPath := l.userConfigPath()
	if userConfigPath != "" {
		if userConfig, err := LoadFromFile(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	// Load project config
	if explicitPath != "" {
		fileConfig, err := LoadFromFile(explicitPath)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", slog.String("path", explicitPath))
		config.Merge(fileConfig)
	} else if projectConfigPath := l.findProjectConfig(); projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	// .env fills in variables the environment does not already define
	dotEnvPath := filepath.Join(l.dir(), DotEnvFile)
	if err := godotenv.Load(dotEnvPath); err == nil {
		l.logger.Debug("Loaded .env", slog.String("path", dotEnvPath))
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Failed to load .env", slog.String("path", dotEnvPath), slog.String("error", err.Error()))
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	// Validate final config
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides config fields from environment variables.
func applyEnv(c *Config) error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv(EnvModelProvider); v != "" {
		c.Model.Provider = v
	}
	if v := os.Getenv(EnvModelName); v != "" {
		c.Model.Name = v
	}
	if v := os.Getenv(EnvModelEndpoint); v != "" {
		c.Model.Endpoint = v
	}
	if v := os.Getenv(EnvTrackerURL); v != "" {
		c.Tracker.BaseURL = v
	}
	if v := os.Getenv(EnvGatewayURL); v != "" {
		c.Client.GatewayURL = v
	}
	return nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()
	if userConfigPath == "" {
		return fmt.Errorf("cannot determine home directory")
	}

	// Check if it already exists
	if _, err := os.Stat(userConfigPath); err == nil {
		return nil // Already exists
	}

	// Create default config
	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home := l.homeDir
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func (l *Loader) dir() string {
	if l.workDir != "" {
		return l.workDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// findProjectConfig searches for testcasegenie.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	dir := l.dir()
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}
