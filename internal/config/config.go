// Package config loads bookwarm configuration from command-line flags,
// environment variables, a .env file and an optional TOML file.
package config

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/listenupapp/bookwarm/internal/errors"
)

// Defaults.
const (
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"
	DefaultBasePath    = "~/bookwarm"
	DefaultFormat      = "text"
	DefaultEnvFile     = ".env"
)

//nolint:gochecknoglobals // Static validation tables
var (
	validEnvironments = []string{"development", "staging", "production"}
	validLevels       = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats   = []string{"", "json", "pretty"}
	validFormats      = []string{"text", "xml"}
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig     `toml:"app"`
	Logger  LoggerConfig  `toml:"logger"`
	Storage StorageConfig `toml:"storage"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `toml:"environment"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `toml:"level"`
	// Format is "json" or "pretty"; empty picks one from the environment.
	Format string `toml:"format"`
}

// StorageConfig holds collection storage configuration.
type StorageConfig struct {
	// BasePath is the directory collection files are stored in.
	BasePath string `toml:"base_path"`
	// Format is the default collection file format: "text" or "xml".
	Format string `toml:"format"`
}

// Load builds the configuration from args (without the program name) with
// precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. TOML config file named by -config.
// 5. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	flags := flag.NewFlagSet("bookwarm", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	env := flags.String("env", "", "Environment (development, staging, production)")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flags.String("log-format", "", "Log format (json, pretty)")
	basePath := flags.String("base-path", "", "Directory collection files are stored in")
	format := flags.String("format", "", "Collection file format (text, xml)")
	envFile := flags.String("env-file", DefaultEnvFile, "Path to .env file")
	configFile := flags.String("config", "", "Path to TOML config file")

	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(err, errors.CodeUsage, "parse flags")
	}

	if err := loadEnvFile(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(err, errors.CodeIO, "load %s", *envFile)
	}

	file, err := loadFile(*configFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", file.App.Environment, DefaultEnvironment),
		},
		Logger: LoggerConfig{
			Level:  getConfigValue(*logLevel, "LOG_LEVEL", file.Logger.Level, DefaultLogLevel),
			Format: getConfigValue(*logFormat, "LOG_FORMAT", file.Logger.Format, ""),
		},
		Storage: StorageConfig{
			BasePath: getConfigValue(*basePath, "BOOKWARM_BASE_PATH", file.Storage.BasePath, DefaultBasePath),
			Format:   getConfigValue(*format, "BOOKWARM_FORMAT", file.Storage.Format, DefaultFormat),
		},
	}

	cfg.normalize()

	expanded, err := expandPath(cfg.Storage.BasePath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeIO, "invalid base path")
	}
	cfg.Storage.BasePath = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.App.Environment = strings.ToLower(strings.TrimSpace(c.App.Environment))
	c.Logger.Level = strings.ToLower(strings.TrimSpace(c.Logger.Level))
	c.Logger.Format = strings.ToLower(strings.TrimSpace(c.Logger.Format))
	c.Storage.Format = strings.ToLower(strings.TrimSpace(c.Storage.Format))
	c.Storage.BasePath = strings.TrimSpace(c.Storage.BasePath)
}

// Validate checks that every value is present and recognized.
func (c *Config) Validate() error {
	if !slices.Contains(validEnvironments, c.App.Environment) {
		return errors.Validationf("invalid environment %q (must be %s)", c.App.Environment, strings.Join(validEnvironments, ", "))
	}
	if !slices.Contains(validLevels, c.Logger.Level) {
		return errors.Validationf("invalid log level %q (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if !slices.Contains(validLogFormats, c.Logger.Format) {
		return errors.Validationf("invalid log format %q (must be json or pretty)", c.Logger.Format)
	}
	if !slices.Contains(validFormats, c.Storage.Format) {
		return errors.Validationf("invalid storage format %q (must be %s)", c.Storage.Format, strings.Join(validFormats, " or "))
	}
	if c.Storage.BasePath == "" {
		return errors.Validation("storage base path cannot be empty")
	}
	return nil
}

// loadFile reads the TOML config file at path. An empty path yields an
// empty config; a named file must exist.
func loadFile(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	expanded, err := expandPath(path)
	if err != nil {
		return cfg, errors.Wrap(err, errors.CodeIO, "invalid config path")
	}

	file, err := os.Open(expanded) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return cfg, errors.Wrapf(err, errors.CodeIO, "open config %s", expanded)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, errors.CodeParse, "parse config %s", expanded)
	}
	return cfg, nil
}

// expandPath expands a leading ~ and makes the path absolute.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, strings.TrimPrefix(path[1:], "/"))
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// getConfigValue returns the first non-empty value from flag, env var,
// config file, or default.
func getConfigValue(flagValue, envKey, fileValue, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments). Variables already set
// in the environment are left alone.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(strings.TrimPrefix(key, "export "))
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
