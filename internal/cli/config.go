package cli

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/pillbox/pkg/errors"
	"github.com/matzehuels/pillbox/pkg/pillbox"
)

// Environment variables read by the CLI. They override the config file.
const (
	envAPIKey  = "PILLBOX_API_KEY"
	envBaseURL = "PILLBOX_BASE_URL"
	envStrict  = "PILLBOX_STRICT"
)

// dotEnvFile is read from the working directory when present.
const dotEnvFile = ".env"

var errMissingKey = errors.New(errors.ErrCodeInvalidConfig,
	"no API key configured: set %s or api_key in %s", envAPIKey, defaultConfigPathHint())

// Config is the resolved CLI configuration.
type Config struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Strict  bool   `toml:"strict"`

	// Sources lists where values came from, lowest precedence first.
	Sources []string `toml:"-"`
}

// configSources says where loadConfig looks.
type configSources struct {
	file     string              // TOML config file
	explicit bool                // file was named by the user and must exist
	envFile  string              // dotenv file, skipped when missing
	getenv   func(string) string // process environment
}

// loadConfig resolves configuration from, in increasing precedence: the TOML
// file, the dotenv file, and the process environment.
func loadConfig(src configSources) (Config, error) {
	cfg := Config{BaseURL: pillbox.DefaultBaseURL}

	if src.file != "" {
		_, err := toml.DecodeFile(src.file, &cfg)
		switch {
		case err == nil:
			cfg.Sources = append(cfg.Sources, src.file)
		case os.IsNotExist(err) && !src.explicit:
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", src.file)
		}
	}

	dotenv := map[string]string{}
	if src.envFile != "" {
		m, err := godotenv.Read(src.envFile)
		switch {
		case err == nil:
			dotenv = m
			cfg.Sources = append(cfg.Sources, src.envFile)
		case os.IsNotExist(err):
		default:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", src.envFile)
		}
	}

	getenv := src.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	usedEnv := false
	lookup := func(key string) (string, bool) {
		if v := getenv(key); v != "" {
			usedEnv = true
			return v, true
		}
		v := dotenv[key]
		return v, v != ""
	}

	if v, ok := lookup(envAPIKey); ok {
		cfg.APIKey = v
	}
	if v, ok := lookup(envBaseURL); ok {
		cfg.BaseURL = v
	}
	if v, ok := lookup(envStrict); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s", envStrict)
		}
		cfg.Strict = b
	}
	if usedEnv {
		cfg.Sources = append(cfg.Sources, "environment")
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if err := errors.ValidateURL(cfg.BaseURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid base_url")
	}
	if cfg.APIKey != "" {
		if err := errors.ValidateAPIKey(cfg.APIKey); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid api_key")
		}
	}
	return nil
}

// config loads configuration for a command run.
func (c *CLI) config() (Config, error) {
	src := configSources{
		file:     c.configPath,
		explicit: c.configPath != "",
		envFile:  dotEnvFile,
		getenv:   c.getenv,
	}
	if src.file == "" {
		if p, err := defaultConfigPath(); err == nil {
			src.file = p
		}
	}
	cfg, err := loadConfig(src)
	if err != nil {
		return Config{}, err
	}
	c.Logger.Debug("config loaded", "sources", cfg.Sources, "base_url", cfg.BaseURL)
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/pillbox/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// defaultConfigPath returns the config file path inside configDir.
func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func defaultConfigPathHint() string {
	return "$XDG_CONFIG_HOME/" + appName + "/config.toml"
}
