// Package yaml loads harvest configuration from YAML files.
package yaml

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	harvesthttp "github.com/fwojciec/harvest/http"
	"github.com/fwojciec/harvest/gemini"
	"github.com/joho/godotenv"
	yamlv3 "gopkg.in/yaml.v3"
)

// APIKeyEnv names the environment variable holding the translation API key.
const APIKeyEnv = "GEMINI_API_KEY"

// DefaultArticleDelay is the politeness interval between article requests.
const DefaultArticleDelay = time.Second

// Config holds everything a harvest run needs. Selectors, keywords and
// timings are data so layout drift can be handled without a rebuild.
type Config struct {
	ListingURL        string                 `yaml:"listing_url"`
	PathPrefix        string                 `yaml:"path_prefix"`
	ContainerSelector string                 `yaml:"container_selector"`
	PaywallMarker     string                 `yaml:"paywall_marker"`
	TitleSelectors    []string               `yaml:"title_selectors"`
	BodySelectors     []string               `yaml:"body_selectors"`
	Categories        []harvest.CategoryRule `yaml:"categories"`

	Fetch        FetchConfig   `yaml:"fetch"`
	ArticleDelay time.Duration `yaml:"article_delay"`
	Concurrency  int           `yaml:"concurrency"`

	Translation TranslationConfig `yaml:"translation"`
	Output      OutputConfig      `yaml:"output"`
	LogLevel    string            `yaml:"log_level"`

	// APIKey is read from the environment, never from the file.
	APIKey string `yaml:"-"`
}

// FetchConfig controls HTTP requests and retries.
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
	UserAgent   string        `yaml:"user_agent"`
}

// TranslationConfig controls the translation sink.
type TranslationConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Model          string `yaml:"model"`
	TargetLanguage string `yaml:"target_language"`
}

// OutputConfig names the sink locations. Empty paths disable the sink.
type OutputConfig struct {
	Archive  string `yaml:"archive"`
	Markdown string `yaml:"markdown"`
	Database string `yaml:"database"`
}

// DefaultConfig returns the configuration for the reference site layout.
func DefaultConfig() *Config {
	return &Config{
		ListingURL:        harvest.DefaultListingURL,
		PathPrefix:        harvest.DefaultPathPrefix,
		ContainerSelector: harvest.DefaultContainerSelector,
		PaywallMarker:     harvest.DefaultPaywallMarker,
		TitleSelectors:    harvest.DefaultTitleChain().Selectors,
		BodySelectors:     harvest.DefaultBodyChain().Selectors,
		Categories:        harvest.DefaultCategoryRules(),
		Fetch: FetchConfig{
			Timeout:     harvesthttp.DefaultFetchTimeout,
			MaxAttempts: crawl.DefaultMaxAttempts,
			RetryDelay:  crawl.DefaultRetryDelay,
			UserAgent:   harvesthttp.DefaultUserAgent,
		},
		ArticleDelay: DefaultArticleDelay,
		Concurrency:  1,
		Translation: TranslationConfig{
			Enabled:        true,
			Model:          gemini.DefaultModel,
			TargetLanguage: gemini.DefaultTargetLanguage,
		},
		Output: OutputConfig{
			Archive:  "indiehackers_articles.json",
			Database: "harvest.db",
		},
		LogLevel: "info",
	}
}

// LoadConfig reads the YAML file at path over DefaultConfig, applies
// environment overrides and validates the result. An empty path yields
// the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, harvest.Errorf(harvest.ENOTFOUND, "config file %s not found", path)
		}
		if err != nil {
			return nil, err
		}
		if err := yamlv3.Unmarshal(data, cfg); err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "parse config %s: %v", path, err)
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv(APIKeyEnv))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFiles loads variables from the given .env files. Files that do
// not exist are ignored; variables already set are kept.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// Validate reports the first configuration problem as an EINVALID error.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ListingURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return harvest.Errorf(harvest.EINVALID, "listing_url must be an absolute http(s) URL")
	}
	if !strings.HasPrefix(c.PathPrefix, "/") {
		return harvest.Errorf(harvest.EINVALID, "path_prefix must start with /")
	}
	if c.PaywallMarker == "" {
		return harvest.Errorf(harvest.EINVALID, "paywall_marker required")
	}
	if err := validateSelector("container_selector", c.ContainerSelector); err != nil {
		return err
	}
	if err := validateChain("title_selectors", c.TitleSelectors); err != nil {
		return err
	}
	if err := validateChain("body_selectors", c.BodySelectors); err != nil {
		return err
	}
	for i, rule := range c.Categories {
		if rule.Category == "" {
			return harvest.Errorf(harvest.EINVALID, "categories[%d]: category required", i)
		}
		if len(rule.Keywords) == 0 {
			return harvest.Errorf(harvest.EINVALID, "categories[%d]: keywords required", i)
		}
	}
	if c.Fetch.Timeout <= 0 {
		return harvest.Errorf(harvest.EINVALID, "fetch.timeout must be positive")
	}
	if c.Fetch.MaxAttempts < 1 {
		return harvest.Errorf(harvest.EINVALID, "fetch.max_attempts must be at least 1")
	}
	if c.Fetch.RetryDelay < 0 || c.ArticleDelay < 0 {
		return harvest.Errorf(harvest.EINVALID, "delays must not be negative")
	}
	if c.Concurrency < 1 || c.Concurrency > crawl.MaxConcurrency {
		return harvest.Errorf(harvest.EINVALID, "concurrency must be between 1 and %d", crawl.MaxConcurrency)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// TitleChain returns the configured title selector chain.
func (c *Config) TitleChain() harvest.SelectorChain {
	return harvest.SelectorChain{Field: "title", Selectors: c.TitleSelectors}
}

// BodyChain returns the configured body selector chain.
func (c *Config) BodyChain() harvest.SelectorChain {
	return harvest.SelectorChain{Field: "body", Selectors: c.BodySelectors}
}

// RetryPolicy returns the configured fixed-delay retry policy.
func (c *Config) RetryPolicy() crawl.RetryPolicy {
	return crawl.RetryPolicy{
		MaxAttempts: c.Fetch.MaxAttempts,
		Delay:       crawl.FixedDelay(c.Fetch.RetryDelay),
	}
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, harvest.Errorf(harvest.EINVALID, "unknown log level %q", s)
}

func validateChain(name string, selectors []string) error {
	if len(selectors) == 0 {
		return harvest.Errorf(harvest.EINVALID, "%s must not be empty", name)
	}
	for i, sel := range selectors {
		if err := validateSelector(fmt.Sprintf("%s[%d]", name, i), sel); err != nil {
			return err
		}
	}
	return nil
}

func validateSelector(name, sel string) error {
	if strings.TrimSpace(sel) == "" {
		return harvest.Errorf(harvest.EINVALID, "%s must not be empty", name)
	}
	if _, err := cascadia.Compile(sel); err != nil {
		return harvest.Errorf(harvest.EINVALID, "%s: invalid selector %q: %v", name, sel, err)
	}
	return nil
}
