package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFilename is looked up in the working directory.
	DefaultConfigFilename = "rosterkeys.yaml"

	// ConfigEnvVar names the environment variable holding a config path.
	ConfigEnvVar = "ROSTERKEYS_CONFIG"
)

// Default returns the configuration used when no file is found.
func Default() *File {
	f := &File{}
	f.applyDefaults()
	return f
}

// Load resolves and loads the configuration file.
// Lookup order: explicit path, $ROSTERKEYS_CONFIG, ./rosterkeys.yaml.
// Only the working directory fallback may be absent; explicit paths must exist.
func Load(explicitPath string) (*File, error) {
	path := explicitPath
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}
	if path != "" {
		return LoadFile(path)
	}

	path = DefaultConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads, defaults and validates a configuration file.
func LoadFile(path string) (*File, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses, defaults and validates configuration data.
func LoadFromBytes(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	f.applyDefaults()

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &f, nil
}

// DefaultConfigPath returns the config path in the current working directory.
func DefaultConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfigFilename
	}
	return filepath.Join(cwd, DefaultConfigFilename)
}

func (f *File) applyDefaults() {
	if f.EmailDomain == "" {
		f.EmailDomain = DefaultEmailDomain
	}
	if f.OpenRouter.BaseURL == "" {
		f.OpenRouter.BaseURL = DefaultOpenRouterBaseURL
	}
	if f.Metrics.Job == "" {
		f.Metrics.Job = DefaultMetricsJob
	}
}

// Validate checks the configuration file for errors.
func (f *File) Validate() error {
	if !IsValidDomain(f.EmailDomain) {
		return fmt.Errorf("email_domain %q is not a valid domain", f.EmailDomain)
	}

	if err := validateHTTPURL("openrouter.base_url", f.OpenRouter.BaseURL); err != nil {
		return err
	}

	if f.Archive.Enabled() && f.Archive.Region == "" {
		return fmt.Errorf("archive.region is required when archive.bucket is set")
	}
	if f.Archive.Endpoint != "" {
		if err := validateHTTPURL("archive.endpoint", f.Archive.Endpoint); err != nil {
			return err
		}
	}
	if (f.Archive.AccessKey == "") != (f.Archive.SecretKey == "") {
		return fmt.Errorf("archive.access_key and archive.secret_key must be set together")
	}

	if f.Metrics.Enabled() {
		if err := validateHTTPURL("metrics.pushgateway", f.Metrics.Pushgateway); err != nil {
			return err
		}
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid %s %q: must be an absolute http(s) URL", field, raw)
	}
	return nil
}
