package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// Defaults come from the env-default tags; an optional file overrides them.
// No field carries an env tag, so the process environment is never read.
type Config struct {
	// Environment selects the log encoder (development or production)
	Environment string `env-default:"development" yaml:"environment"`
	// LogLevel is the minimum level written to stderr
	LogLevel string `env-default:"warn" yaml:"logLevel"`

	// HTTP contains the outbound client policy
	HTTP struct {
		// Timeout bounds the whole request, including redirects and reading the body
		Timeout time.Duration `env-default:"10s" yaml:"timeout"`
		// DialTimeout bounds establishing the TCP connection; zero leaves it to Timeout
		DialTimeout time.Duration `yaml:"dialTimeout"`
		// TLSHandshakeTimeout bounds the TLS handshake; zero leaves it to Timeout
		TLSHandshakeTimeout time.Duration `yaml:"tlsHandshakeTimeout"`
		// ResponseHeaderTimeout bounds waiting for response headers; zero leaves it to Timeout
		ResponseHeaderTimeout time.Duration `yaml:"responseHeaderTimeout"`
		// MaxRedirects is the number of redirects followed before giving up
		MaxRedirects int `env-default:"5" yaml:"maxRedirects"`
		// UserAgent is sent with every request
		UserAgent string `env-default:"curl/8.0" yaml:"userAgent"`
	} `yaml:"http"`

	// Sanitizer extends the tracking parameter denylist
	Sanitizer struct {
		// ExtraKeys are stripped when a query key equals one of them (case-insensitive)
		ExtraKeys []string `yaml:"extraKeys"`
		// ExtraPrefixes are stripped when a query key starts with one of them (case-insensitive)
		ExtraPrefixes []string `yaml:"extraPrefixes"`
	} `yaml:"sanitizer"`
}

// Load returns the configuration. An empty configPath yields the defaults;
// otherwise the file (yaml, json, toml or edn by extension) overrides them.
func Load(configPath string) (*Config, error) {
	var cfg Config
	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not apply config defaults: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
