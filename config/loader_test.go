package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetEnv clears key for the duration of the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvPort, EnvModelProvider, EnvModelName, EnvModelEndpoint, EnvTrackerURL, EnvGatewayURL, "GEMINI_API_KEY"} {
		unsetEnv(t, key)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_Defaults(t *testing.T) {
	clearConfigEnv(t)

	loader := NewLoader(nil, WithWorkDir(t.TempDir()), WithHomeDir(t.TempDir()))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 5000 || cfg.Model.Provider != "gemini" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoader_Layering(t *testing.T) {
	clearConfigEnv(t)

	home := t.TempDir()
	writeFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `
model:
  name: user-model
tracker:
  project_key: USER
`)

	root := t.TempDir()
	workDir := filepath.Join(root, "nested", "dir")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatal(err)
	}
	// Project config lives in a parent directory and is found by walking up.
	writeFile(t, filepath.Join(root, ProjectConfigFile), `
tracker:
  project_key: PROJ
  page_size: 20
`)

	loader := NewLoader(nil, WithWorkDir(workDir), WithHomeDir(home))
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.Name != "user-model" {
		t.Errorf("expected user-model from user config, got %s", cfg.Model.Name)
	}
	if cfg.Tracker.ProjectKey != "PROJ" {
		t.Errorf("project config should override user config, got %s", cfg.Tracker.ProjectKey)
	}
	if cfg.Tracker.PageSize != 20 {
		t.Errorf("expected page size 20, got %d", cfg.Tracker.PageSize)
	}
	if cfg.Tracker.BoardID != 942 {
		t.Errorf("expected default board id, got %d", cfg.Tracker.BoardID)
	}
}

func TestLoader_EnvironmentOverrides(t *testing.T) {
	clearConfigEnv(t)

	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, ProjectConfigFile), `
server:
  port: 7000
model:
  provider: gemini
`)

	t.Setenv(EnvPort, "9090")
	t.Setenv(EnvModelProvider, "openai")
	t.Setenv(EnvModelEndpoint, "http://localhost:9000/v1")
	t.Setenv(EnvTrackerURL, "http://tracker.internal/api")
	t.Setenv(EnvGatewayURL, "http://gateway.internal:5000")

	cfg, err := NewLoader(nil, WithWorkDir(workDir), WithHomeDir(t.TempDir())).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected PORT override 9090, got %d", cfg.Server.Port)
	}
	if cfg.Model.Provider != "openai" {
		t.Errorf("expected provider override, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Endpoint != "http://localhost:9000/v1" {
		t.Errorf("expected endpoint override, got %s", cfg.Model.Endpoint)
	}
	if cfg.Tracker.BaseURL != "http://tracker.internal/api" {
		t.Errorf("expected tracker override, got %s", cfg.Tracker.BaseURL)
	}
	if cfg.Client.GatewayURL != "http://gateway.internal:5000" {
		t.Errorf("expected gateway override, got %s", cfg.Client.GatewayURL)
	}
}

func TestLoader_InvalidPort(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(EnvPort, "not-a-port")

	if _, err := NewLoader(nil, WithWorkDir(t.TempDir()), WithHomeDir(t.TempDir())).Load(); err == nil {
		t.Error("expected error for invalid PORT")
	}
}

func TestLoader_DotEnv(t *testing.T) {
	clearConfigEnv(t)

	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, DotEnvFile), "GEMINI_API_KEY=from-dotenv\nPORT=6001\n")

	cfg, err := NewLoader(nil, WithWorkDir(workDir), WithHomeDir(t.TempDir())).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := os.Getenv("GEMINI_API_KEY"); got != "from-dotenv" {
		t.Errorf("expected GEMINI_API_KEY from .env, got %q", got)
	}
	if cfg.Server.Port != 6001 {
		t.Errorf("expected PORT from .env, got %d", cfg.Server.Port)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		t.Errorf("key from .env should satisfy RequireAPIKey: %v", err)
	}
}

func TestLoader_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearConfigEnv(t)

	workDir := t.TempDir()
	writeFile(t, filepath.Join(workDir, DotEnvFile), "PORT=6001\n")
	t.Setenv(EnvPort, "6002")

	cfg, err := NewLoader(nil, WithWorkDir(workDir), WithHomeDir(t.TempDir())).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 6002 {
		t.Errorf("environment should win over .env, got %d", cfg.Server.Port)
	}
}

func TestLoader_LoadWithFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "client:\n  export_dir: /exports\n")

	cfg, err := NewLoader(nil, WithWorkDir(t.TempDir()), WithHomeDir(t.TempDir())).LoadWithFile(path)
	if err != nil {
		t.Fatalf("LoadWithFile() error = %v", err)
	}
	if cfg.Client.ExportDir != "/exports" {
		t.Errorf("expected export dir from explicit file, got %s", cfg.Client.ExportDir)
	}

	if _, err := NewLoader(nil).LoadWithFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoader_EnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	loader := NewLoader(nil, WithHomeDir(home))

	if err := loader.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig() error = %v", err)
	}
	path := filepath.Join(home, UserConfigDir, UserConfigFile)
	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("created config unreadable: %v", err)
	}
	if cfg.Model.Name != "gemini-2.0-flash" {
		t.Errorf("expected default model in created config, got %s", cfg.Model.Name)
	}

	// Second call leaves the file alone.
	writeFile(t, path, "model:\n  name: edited\n")
	if err := loader.EnsureUserConfig(); err != nil {
		t.Fatal(err)
	}
	cfg, _ = LoadFromFile(path)
	if cfg.Model.Name != "edited" {
		t.Error("EnsureUserConfig overwrote an existing file")
	}
}
