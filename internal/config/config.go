// Package config provides layered configuration for relnote using koanf.
// Configuration is loaded with priority: environment variables (RELNOTE_*)
// > project config (.relnote.yml) > user config (~/.config/relnote/config.yml)
// > defaults. A .env file in the working directory or one of its parents is
// loaded into the process environment first, without overriding variables that
// are already set.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/relnote/internal/notify"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "RELNOTE_"

// LegacyWebhookEnv is read when webhook_url is not otherwise configured.
const LegacyWebhookEnv = "SLACK_WEBHOOK_URL"

// Configuration represents the relnote configuration.
type Configuration struct {
	// Changelog is the changelog file path or http(s) URL.
	Changelog string `koanf:"changelog" yaml:"changelog" validate:"required"`

	// BeforeMessage is placed above the extracted entry.
	BeforeMessage string `koanf:"before_message" yaml:"before_message"`

	// AfterMessage is placed below the extracted entry.
	AfterMessage string `koanf:"after_message" yaml:"after_message"`

	// WebhookURL is the primary target. Falls back to $SLACK_WEBHOOK_URL.
	WebhookURL string `koanf:"webhook_url" yaml:"webhook_url" validate:"omitempty,url"`

	// WebhookURLs are additional targets; each receives its own POST.
	WebhookURLs []string `koanf:"webhook_urls" yaml:"webhook_urls" validate:"dive,url"`

	// Timeout bounds each webhook POST. 0 disables the client timeout.
	Timeout time.Duration `koanf:"timeout" yaml:"timeout" validate:"min=0"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .relnote.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file (used by tests)
	SkipUserConfig bool
	// SkipDotEnv disables .env discovery
	SkipDotEnv bool
	// WarningWriter receives warnings (default: os.Stderr)
	WarningWriter io.Writer
}

// Load loads configuration from defaults, user, project, and environment sources.
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	if !opts.SkipDotEnv {
		loadDotEnv(warningWriter)
	}

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDotEnv loads the nearest .env file, searching upward a few levels.
// Existing environment variables take precedence over .env values.
func loadDotEnv(warningWriter io.Writer) {
	path := findDotEnv()
	if path == "" {
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(warningWriter, "Warning: ignoring unreadable %s: %v\n", path, err)
	}
}

// findDotEnv walks up from the working directory looking for a .env file.
func findDotEnv() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < 5; i++ {
		candidate := filepath.Join(dir, ".env")
		if fileExists(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level config if present.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil || !fileExists(path) {
		return nil
	}
	if err := loadFileConfig(k, path, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level config if present.
// An explicit path that does not exist is an error; the default path is optional.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	path := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return &ValidationError{FilePath: customPath, Message: "config file not found"}
		}
		path = customPath
	}
	if !fileExists(path) {
		return nil
	}
	if err := loadFileConfig(k, path, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadFileConfig validates and loads a YAML or JSON config file
func loadFileConfig(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return err
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, applies fallbacks, and validates.
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.WebhookURL == "" {
		cfg.WebhookURL = os.Getenv(LegacyWebhookEnv)
	}
	cfg.Changelog = expandHomePath(cfg.Changelog)

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// WebhookTargets returns every configured webhook URL, primary first,
// with duplicates and blanks removed.
func (c *Configuration) WebhookTargets() []string {
	seen := make(map[string]bool)
	var targets []string
	for _, u := range append([]string{c.WebhookURL}, c.WebhookURLs...) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		targets = append(targets, u)
	}
	return targets
}

// Notify returns the notifier settings derived from this configuration.
func (c *Configuration) Notify() notify.Config {
	return notify.Config{
		WebhookURLs: c.WebhookTargets(),
		Timeout:     c.Timeout,
	}
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: RELNOTE_BEFORE_MESSAGE -> before_message
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// envValue maps an environment variable to a config key and value.
// RELNOTE_WEBHOOK_URLS accepts a comma or space separated list.
func envValue(key, value string) (string, interface{}) {
	key = envTransform(key)
	if key == "webhook_urls" {
		return key, strings.Fields(strings.ReplaceAll(value, ",", " "))
	}
	return key, value
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
