package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/nikogura/content-qa/pkg/policy"
	"github.com/nikogura/content-qa/pkg/renderer"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvCurrentYear overrides the configured current year.
const EnvCurrentYear = "CONTENT_QA_CURRENT_YEAR"

// DefaultFetchTimeoutSeconds bounds URL fetches when the config does not.
const DefaultFetchTimeoutSeconds = 30

// Config represents the application configuration.
type Config struct {
	// CurrentYear is the year freshness is measured against; zero means the year at run time.
	CurrentYear int `json:"current_year,omitempty" yaml:"current_year,omitempty"`
	// BannedPhrases replaces the built-in phrase table when set.
	BannedPhrases []policy.BannedPhrase `json:"banned_phrases,omitempty" yaml:"banned_phrases,omitempty"`
	// ExtraBannedPhrases is appended to the phrase table.
	ExtraBannedPhrases  []policy.BannedPhrase `json:"extra_banned_phrases,omitempty" yaml:"extra_banned_phrases,omitempty"`
	ContentSelector     string                `json:"content_selector,omitempty" yaml:"content_selector,omitempty"`
	Format              string                `json:"format,omitempty" yaml:"format,omitempty"`
	FetchTimeoutSeconds int                   `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty"`
}

// DefaultPath returns the config file location under the XDG config directory.
func DefaultPath() (path string) {
	path = filepath.Join(xdg.ConfigHome, "content-qa", "config.json")
	return path
}

// Default returns the configuration used when no config file exists.
func Default() (cfg Config) {
	cfg = Config{
		Format:              string(renderer.FormatText),
		FetchTimeoutSeconds: DefaultFetchTimeoutSeconds,
	}
	return cfg
}

// Load reads configuration from file with environment variable overrides. With an empty configPath the
// default location is tried and a missing file yields the defaults; a named file must exist.
func Load(configPath string) (cfg Config, err error) {
	path := configPath
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = parse(path, data)
		if err != nil {
			return cfg, err
		}
	case os.IsNotExist(err) && !explicit:
		cfg = Default()
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'content-qa init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	if year := os.Getenv(EnvCurrentYear); year != "" {
		cfg.CurrentYear, err = strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			err = errors.Wrapf(err, "invalid %s: %q", EnvCurrentYear, year)
			return cfg, err
		}
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// parse decodes YAML for .yaml and .yml files and JSON otherwise.
func parse(path string, data []byte) (cfg Config, err error) {
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}
	return cfg, err
}

func isYAML(path string) (ok bool) {
	ext := strings.ToLower(filepath.Ext(path))
	ok = ext == ".yaml" || ext == ".yml"
	return ok
}

// Validate checks the configuration and fills in defaults for unset fields.
func (c *Config) Validate() (err error) {
	if c.Format == "" {
		c.Format = string(renderer.FormatText)
	}

	_, err = renderer.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	if c.FetchTimeoutSeconds < 0 {
		err = errors.Errorf("fetch_timeout_seconds must not be negative, got %d", c.FetchTimeoutSeconds)
		return err
	}
	if c.FetchTimeoutSeconds == 0 {
		c.FetchTimeoutSeconds = DefaultFetchTimeoutSeconds
	}

	if c.CurrentYear < 0 {
		err = errors.Errorf("current_year must not be negative, got %d", c.CurrentYear)
		return err
	}

	err = c.Policy(time.Now()).Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid banned phrase policy")
		return err
	}

	return err
}

// Policy builds the checker and fixer policy. An unset current year resolves to the year of now.
func (c *Config) Policy(now time.Time) (p policy.Policy) {
	year := c.CurrentYear
	if year == 0 {
		year = now.Year()
	}

	phrases := policy.DefaultBannedPhrases()
	if len(c.BannedPhrases) > 0 {
		phrases = make([]policy.BannedPhrase, len(c.BannedPhrases))
		copy(phrases, c.BannedPhrases)
	}
	phrases = append(phrases, c.ExtraBannedPhrases...)

	p = policy.Policy{
		CurrentYear:   year,
		BannedPhrases: phrases,
	}
	return p
}

// FetchTimeout returns the URL fetch timeout.
func (c *Config) FetchTimeout() (timeout time.Duration) {
	seconds := c.FetchTimeoutSeconds
	if seconds <= 0 {
		seconds = DefaultFetchTimeoutSeconds
	}
	timeout = time.Duration(seconds) * time.Second
	return timeout
}

// InitConfig creates a default configuration file listing the built-in phrase table for editing.
func InitConfig(configPath string) (path string, err error) {
	path = configPath
	if path == "" {
		path = DefaultPath()
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return path, err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return path, err
	}

	defaultConfig := Default()
	defaultConfig.BannedPhrases = policy.DefaultBannedPhrases()

	var data []byte
	if isYAML(path) {
		data, err = yaml.Marshal(defaultConfig)
	} else {
		data, err = json.MarshalIndent(defaultConfig, "", "  ")
	}
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return path, err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return path, err
	}

	return path, err
}
