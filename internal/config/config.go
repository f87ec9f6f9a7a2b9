// Package config holds the harvester configuration. All settings come
// from the environment (optionally via a config file) with production
// defaults matching the published mirror.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Default configuration values.
const (
	DefaultGitHubUser = "TalhaY61"
	DefaultGitHubRepo = "open-hutbe-api"
	DefaultMaxPages   = 10
	DefaultTimeout    = 45 * time.Second
)

// Catalog and mirror locations relative to the data directory.
const (
	hutbesFile  = "hutbes.json"
	prayersFile = "prayers.json"
	pdfDir      = "pdfs"
)

// Config carries every knob the harvester needs. It replaces the
// ambient environment lookups of earlier revisions with an explicit
// record handed to the orchestrator at construction.
type Config struct {
	// GitHubUser and GitHubRepo form the public GitHub Pages base URL
	// under which the mirror is served.
	GitHubUser string
	GitHubRepo string

	// MaxPages bounds the listing pagination walked per language.
	MaxPages int

	// Timeout applies per network call, listing fetch and download alike.
	Timeout time.Duration

	// DataDir is the repository root holding the catalogs and pdf tree.
	DataDir string

	// InsecureSkipVerify disables TLS verification. The source site has
	// served an incomplete chain for years; mirroring stops entirely
	// without this.
	InsecureSkipVerify bool

	// LogLevel and LogFormat configure the logger.
	LogLevel  string
	LogFormat string
}

// FromViper reads the configuration from the given viper instance. Keys
// are bound to environment variables by the root command.
func FromViper(v *viper.Viper) Config {
	return Config{
		GitHubUser:         v.GetString("github.username"),
		GitHubRepo:         v.GetString("github.repo"),
		MaxPages:           v.GetInt("harvest.max_pages"),
		Timeout:            v.GetDuration("harvest.timeout"),
		DataDir:            v.GetString("harvest.data_dir"),
		InsecureSkipVerify: v.GetBool("harvest.insecure_skip_verify"),
		LogLevel:           v.GetString("logger.level"),
		LogFormat:          v.GetString("logger.encoding"),
	}
}

// WithDefaults returns a copy of the config with defaults applied for
// zero-value fields.
func (c Config) WithDefaults() Config {
	if c.GitHubUser == "" {
		c.GitHubUser = DefaultGitHubUser
	}
	if c.GitHubRepo == "" {
		c.GitHubRepo = DefaultGitHubRepo
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.DataDir == "" {
		c.DataDir = "."
	}
	return c
}

// Validate checks the configuration for values the harvester cannot
// work with.
func (c Config) Validate() error {
	if c.GitHubUser == "" || c.GitHubRepo == "" {
		return errors.New("github username and repo must be set")
	}
	if c.MaxPages < 1 {
		return fmt.Errorf("max_pages must be at least 1, got %d", c.MaxPages)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// PagesBase returns the public GitHub Pages base URL, without a
// trailing slash.
func (c Config) PagesBase() string {
	return fmt.Sprintf("https://%s.github.io/%s", c.GitHubUser, c.GitHubRepo)
}

// HutbesPath returns the hutbe catalog file path.
func (c Config) HutbesPath() string {
	return filepath.Join(c.DataDir, hutbesFile)
}

// PrayersPath returns the prayer catalog file path.
func (c Config) PrayersPath() string {
	return filepath.Join(c.DataDir, prayersFile)
}

// PDFRoot returns the root of the local pdf mirror.
func (c Config) PDFRoot() string {
	return filepath.Join(c.DataDir, pdfDir)
}
