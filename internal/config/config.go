// Package config loads application configuration from defaults, an optional
// YAML file, a .env file, and KBDASH_ environment variables, in increasing
// order of priority.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ericfisherdev/kbdash/internal/domain/model"
)

// EnvPrefix is the prefix of every environment variable Load reads.
const EnvPrefix = "KBDASH_"

// Config holds the application configuration.
type Config struct {
	SupabaseURL      string        `koanf:"supabase_url"`
	SupabaseKey      string        `koanf:"supabase_key"`
	Collection       string        `koanf:"collection"`
	IDField          string        `koanf:"id_field"`
	TimestampField   string        `koanf:"timestamp_field"`
	CountOffset      int           `koanf:"count_offset"`
	ChangelogURL     string        `koanf:"changelog_url"`
	ChangelogPath    string        `koanf:"changelog_path"`
	ChangelogEntries int           `koanf:"changelog_entries"`
	ListenAddr       string        `koanf:"listen_addr"`
	PagePath         string        `koanf:"page_path"`
	HTTPTimeout      time.Duration `koanf:"http_timeout"`
}

// LoadOptions customizes where Load looks for configuration.
type LoadOptions struct {
	// ConfigFile is a YAML file to load. Empty falls back to KBDASH_CONFIG_FILE;
	// when both are empty no file is read.
	ConfigFile string
	// EnvFile is a dotenv file whose variables are exported before the
	// environment is read. A missing file is ignored.
	EnvFile string
}

// defaults returns the default value of every key.
func defaults() map[string]any {
	return map[string]any{
		"supabase_url":      "",
		"supabase_key":      "",
		"collection":        "knowledge_base",
		"id_field":          "kb_id",
		"timestamp_field":   "modificado_em",
		"count_offset":      0,
		"changelog_url":     "",
		"changelog_path":    "CHANGELOG.md",
		"changelog_entries": model.DefaultChangelogEntries,
		"listen_addr":       "127.0.0.1:8080",
		"page_path":         "",
		"http_timeout":      "10s",
	}
}

// Credentials returns the backend credentials as a domain value.
func (c *Config) Credentials() model.Credentials {
	return model.Credentials{BaseURL: c.SupabaseURL, APIKey: c.SupabaseKey}
}

// CountPolicy returns the configured record count adjustment.
func (c *Config) CountPolicy() model.CountPolicy {
	return model.CountPolicy{Offset: c.CountOffset}
}

// Load reads configuration with default options (.env in the working directory).
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions reads configuration and returns a validated Config.
// Credentials are optional: unset or placeholder values are reported at
// request time, not here.
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading env file %s: %w", opts.EnvFile, err)
		}
	}

	k := koanf.New(".")
	for key, value := range defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("setting default %s: %w", key, err)
		}
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "CONFIG_FILE")
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", configFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CountOffset < 0 {
		return fmt.Errorf("%sCOUNT_OFFSET must not be negative, got %d", EnvPrefix, c.CountOffset)
	}
	if c.ChangelogEntries < 1 {
		return fmt.Errorf("%sCHANGELOG_ENTRIES must be at least 1, got %d", EnvPrefix, c.ChangelogEntries)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("%sHTTP_TIMEOUT must be positive, got %s", EnvPrefix, c.HTTPTimeout)
	}
	if c.Collection == "" || c.IDField == "" || c.TimestampField == "" {
		return errors.New("collection, id_field and timestamp_field must not be empty")
	}
	return nil
}

// envTransform maps KBDASH_LISTEN_ADDR to listen_addr.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
