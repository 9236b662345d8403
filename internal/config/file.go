package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig represents the structure of ~/.agencysampler/config.yaml. Every
// field is optional; pointer fields distinguish "unset" from a meaningful
// zero value. Credentials may not be placed in the file.
type FileConfig struct {
	APIBaseURL   string `yaml:"api_base_url"`
	AgencyFile   string `yaml:"agency_file"`
	OutputFile   string `yaml:"output_file"`
	LogFile      string `yaml:"log_file"`
	DBPath       string `yaml:"db_path"`
	PageLimit    int    `yaml:"page_limit"`
	MaxHits      *int   `yaml:"max_hits"`
	RequestDelay string `yaml:"request_delay"`
	MaxRetries   *int   `yaml:"max_retries"`
	IncludeEmpty *bool  `yaml:"include_empty"`
	StartDate    string `yaml:"start_date"`
	EndDate      string `yaml:"end_date"`
}

// LoadConfigFile loads configuration from ~/.agencysampler/config.yaml.
// Returns nil if the file doesn't exist (not an error). Returns an error if
// the file exists but cannot be parsed.
func LoadConfigFile() (*FileConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".agencysampler", "config.yaml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// applyFile overlays config-file values onto the defaults.
func (c *Config) applyFile(f *FileConfig) error {
	if f == nil {
		return nil
	}

	if f.APIBaseURL != "" {
		c.APIBaseURL = f.APIBaseURL
	}
	if f.AgencyFile != "" {
		c.AgencyFile = f.AgencyFile
	}
	if f.OutputFile != "" {
		c.OutputFile = f.OutputFile
	}
	if f.LogFile != "" {
		c.LogFile = f.LogFile
	}
	if f.DBPath != "" {
		c.DBPath = f.DBPath
	}
	if f.PageLimit != 0 {
		c.PageLimit = f.PageLimit
	}
	if f.MaxHits != nil {
		c.MaxHits = *f.MaxHits
	}
	if f.RequestDelay != "" {
		d, err := time.ParseDuration(f.RequestDelay)
		if err != nil {
			return fmt.Errorf("config file request_delay has invalid duration %q: %w", f.RequestDelay, err)
		}
		c.RequestDelay = d
	}
	if f.MaxRetries != nil {
		c.MaxRetries = *f.MaxRetries
	}
	if f.IncludeEmpty != nil {
		c.IncludeEmpty = *f.IncludeEmpty
	}
	if f.StartDate != "" {
		c.StartDate = f.StartDate
	}
	if f.EndDate != "" {
		c.EndDate = f.EndDate
	}

	return nil
}
