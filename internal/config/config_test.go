package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookwarm/internal/errors"
)

// clearEnv empties every variable Load reads and restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ENV", "LOG_LEVEL", "LOG_FORMAT", "BOOKWARM_BASE_PATH", "BOOKWARM_FORMAT"} {
		t.Setenv(key, "")
	}
}

// noEnvFile returns args that point -env-file at a file that does not exist.
func noEnvFile(t *testing.T, args ...string) []string {
	t.Helper()
	return append([]string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}, args...)
}

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{BasePath: "/data/books", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "", cfg.Logger.Format)
	assert.Equal(t, filepath.Join(home, "bookwarm"), cfg.Storage.BasePath)
	assert.Equal(t, "text", cfg.Storage.Format)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "bookwarm.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[app]
environment = "staging"

[logger]
level = "warn"
format = "json"

[storage]
base_path = "/from/toml"
format = "xml"
`), 0o644))

	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("# comment\nLOG_LEVEL=error\nBOOKWARM_BASE_PATH=\"/from/dotenv\"\n"), 0o644))

	t.Setenv("BOOKWARM_BASE_PATH", "/from/env")

	cfg, err := Load([]string{
		"-config", tomlPath,
		"-env-file", envPath,
		"-format", "text",
	})
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Storage.Format, "flag beats file")
	assert.Equal(t, "/from/env", cfg.Storage.BasePath, "environment beats .env")
	assert.Equal(t, "error", cfg.Logger.Level, ".env beats file")
	assert.Equal(t, "staging", cfg.App.Environment, "file beats default")
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_RelativeBasePathMadeAbsolute(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(noEnvFile(t, "-base-path", "books/../shelves"))
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "shelves"), cfg.Storage.BasePath)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	unknownKey := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknownKey, []byte("[storage]\ncolour = \"blue\"\n"), 0o644))
	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[storage\n"), 0o644))
	badEnv := filepath.Join(dir, "bad.env")
	require.NoError(t, os.WriteFile(badEnv, []byte("NOT A PAIR\n"), 0o644))

	tests := []struct {
		name string
		args []string
		want errors.Code
	}{
		{"unknown flag", []string{"-verbose"}, errors.CodeUsage},
		{"missing config file", []string{"-config", filepath.Join(dir, "nope.toml")}, errors.CodeIO},
		{"unknown config key", []string{"-config", unknownKey}, errors.CodeParse},
		{"malformed config", []string{"-config", broken}, errors.CodeParse},
		{"malformed env file", []string{"-env-file", badEnv}, errors.CodeIO},
		{"bad environment", []string{"-env", "test"}, errors.CodeValidation},
		{"bad format", []string{"-format", "yaml"}, errors.CodeValidation},
		{"bad log format", []string{"-log-format", "xml"}, errors.CodeValidation},
		{"bad log level", []string{"-log-level", "trace"}, errors.CodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			// A later -env-file overrides the one noEnvFile adds.
			cfg, err := Load(noEnvFile(t, tt.args...))
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Equal(t, tt.want, errors.CodeOf(err), "error: %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"valid", func(*Config) {}, true},
		{"production", func(c *Config) { c.App.Environment = "production" }, true},
		{"unknown environment", func(c *Config) { c.App.Environment = "test" }, false},
		{"empty environment", func(c *Config) { c.App.Environment = "" }, false},
		{"warning alias", func(c *Config) { c.Logger.Level = "warning" }, true},
		{"unknown level", func(c *Config) { c.Logger.Level = "trace" }, false},
		{"pretty logs", func(c *Config) { c.Logger.Format = "pretty" }, true},
		{"xml storage", func(c *Config) { c.Storage.Format = "xml" }, true},
		{"json storage", func(c *Config) { c.Storage.Format = "json" }, false},
		{"empty base path", func(c *Config) { c.Storage.BasePath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, errors.ErrValidation))
			}
		})
	}
}

func TestLoadEnvFile_KeepsExistingValues(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=error\nexport LOG_FORMAT='json'\n"), 0o644))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "debug", os.Getenv("LOG_LEVEL"))
	assert.Equal(t, "json", os.Getenv("LOG_FORMAT"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/bookwarm", filepath.Join(home, "bookwarm")},
		{"/abs/./path/", "/abs/path"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := expandPath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
