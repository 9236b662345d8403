// Package config loads application configuration from environment variables,
// with optional defaults supplied by ~/.agencysampler/config.yaml.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default values applied when neither the config file nor the environment
// provides a setting.
const (
	DefaultAPIBaseURL   = "https://impresso-project.ch/api"
	DefaultAgencyFile   = "all_newsagencies.txt"
	DefaultOutputFile   = "newsagencies_by_article.json"
	DefaultLogFile      = "sampling_log.txt"
	DefaultDBPath       = "agencysampler.db"
	DefaultPageLimit    = 20
	DefaultMaxHits      = 10000
	DefaultRequestDelay = time.Second
	DefaultMaxRetries   = 3

	dateLayout = "2006-01-02"
)

// Config holds the application configuration. Credentials come exclusively
// from the environment; everything else may be defaulted by the config file
// and overridden by the environment.
type Config struct {
	FirstEmail     string
	FirstPassword  string
	SecondEmail    string
	SecondPassword string

	APIBaseURL string
	AgencyFile string
	OutputFile string
	LogFile    string
	DBPath     string

	PageLimit    int
	MaxHits      int
	RequestDelay time.Duration
	MaxRetries   int
	IncludeEmpty bool
	StartDate    string
	EndDate      string
}

// HasSecondaryCredentials returns true when a secondary login pair is
// configured. The secondary token serves as a fallback when the primary
// token expires mid-run.
func (c *Config) HasSecondaryCredentials() bool {
	return c.SecondEmail != "" && c.SecondPassword != ""
}

// Load reads configuration and returns a validated Config. Required variables:
// FIRST_EMAIL, FIRST_PASSWORD. SECOND_EMAIL and SECOND_PASSWORD are optional
// but must be set together. All AGENCYSAMPLER_* variables are optional and
// override config-file values, which in turn override built-in defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIBaseURL:   DefaultAPIBaseURL,
		AgencyFile:   DefaultAgencyFile,
		OutputFile:   DefaultOutputFile,
		LogFile:      DefaultLogFile,
		DBPath:       DefaultDBPath,
		PageLimit:    DefaultPageLimit,
		MaxHits:      DefaultMaxHits,
		RequestDelay: DefaultRequestDelay,
		MaxRetries:   DefaultMaxRetries,
		IncludeEmpty: true,
	}

	fileCfg, err := LoadConfigFile()
	if err != nil {
		return nil, err
	}
	if err := cfg.applyFile(fileCfg); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto the config.
func (c *Config) applyEnv() error {
	c.FirstEmail = os.Getenv("FIRST_EMAIL")
	c.FirstPassword = os.Getenv("FIRST_PASSWORD")
	c.SecondEmail = os.Getenv("SECOND_EMAIL")
	c.SecondPassword = os.Getenv("SECOND_PASSWORD")

	for key, dst := range map[string]*string{
		"AGENCYSAMPLER_API_BASE_URL": &c.APIBaseURL,
		"AGENCYSAMPLER_AGENCY_FILE":  &c.AgencyFile,
		"AGENCYSAMPLER_OUTPUT_FILE":  &c.OutputFile,
		"AGENCYSAMPLER_LOG_FILE":     &c.LogFile,
		"AGENCYSAMPLER_DB_PATH":      &c.DBPath,
		"AGENCYSAMPLER_START_DATE":   &c.StartDate,
		"AGENCYSAMPLER_END_DATE":     &c.EndDate,
	} {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("AGENCYSAMPLER_PAGE_LIMIT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENCYSAMPLER_PAGE_LIMIT has invalid integer %q: %w", v, err)
		}
		c.PageLimit = n
	}

	if v, ok := os.LookupEnv("AGENCYSAMPLER_MAX_HITS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENCYSAMPLER_MAX_HITS has invalid integer %q: %w", v, err)
		}
		c.MaxHits = n
	}

	if v, ok := os.LookupEnv("AGENCYSAMPLER_MAX_RETRIES"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENCYSAMPLER_MAX_RETRIES has invalid integer %q: %w", v, err)
		}
		c.MaxRetries = n
	}

	if v, ok := os.LookupEnv("AGENCYSAMPLER_REQUEST_DELAY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AGENCYSAMPLER_REQUEST_DELAY has invalid duration %q: %w", v, err)
		}
		c.RequestDelay = d
	}

	if v, ok := os.LookupEnv("AGENCYSAMPLER_INCLUDE_EMPTY"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("AGENCYSAMPLER_INCLUDE_EMPTY has invalid boolean %q: %w", v, err)
		}
		c.IncludeEmpty = b
	}

	return nil
}

// validate checks cross-field constraints after all sources are applied.
func (c *Config) validate() error {
	if c.FirstEmail == "" {
		return fmt.Errorf("FIRST_EMAIL must be set")
	}
	if c.FirstPassword == "" {
		return fmt.Errorf("FIRST_PASSWORD must be set")
	}
	if (c.SecondEmail == "") != (c.SecondPassword == "") {
		return fmt.Errorf("SECOND_EMAIL and SECOND_PASSWORD must be set together")
	}

	if c.APIBaseURL == "" {
		return fmt.Errorf("API base URL must not be empty")
	}

	if c.PageLimit < 1 || c.PageLimit > 100 {
		return fmt.Errorf("page limit %d out of range: must be between 1 and 100", c.PageLimit)
	}
	if c.MaxHits < 0 {
		return fmt.Errorf("max hits must not be negative, got %d", c.MaxHits)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay must not be negative, got %s", c.RequestDelay)
	}

	for name, v := range map[string]string{"start date": c.StartDate, "end date": c.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, v); err != nil {
			return fmt.Errorf("%s %q is not in YYYY-MM-DD format", name, v)
		}
	}

	return nil
}
