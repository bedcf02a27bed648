// Package config loads adfpipe settings from ~/.adfpipe/config.yaml with
// ADFPIPE_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/adfpipe/internal/logging"
)

// Config holds all adfpipe configuration.
// It is loaded from ~/.adfpipe/config.yaml and can be overridden by environment variables.
type Config struct {
	Jira    JiraConfig    `mapstructure:"jira" yaml:"jira"`
	Convert ConvertConfig `mapstructure:"convert" yaml:"convert"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// JiraConfig holds the Jira site and the defaults for new issues.
type JiraConfig struct {
	// URL is the site root, e.g. https://example.atlassian.net
	URL   string `mapstructure:"url" yaml:"url"`
	Email string `mapstructure:"email" yaml:"email"`
	// APIToken is usually set through ADFPIPE_JIRA_API_TOKEN
	APIToken   string        `mapstructure:"api_token" yaml:"api_token,omitempty"`
	ProjectKey string        `mapstructure:"project_key" yaml:"project_key"`
	IssueType  string        `mapstructure:"issue_type" yaml:"issue_type"`
	Timeout    time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ConvertConfig controls how sources are read.
type ConvertConfig struct {
	// Selector picks the editor container out of a full page; empty means the
	// source is already an editor fragment.
	Selector string `mapstructure:"selector" yaml:"selector"`
	// Workers bounds how many sources are converted at once.
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	// Dir is the output directory; empty writes to stdout.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Format is one of json, text, markdown, pdf.
	Format string `mapstructure:"format" yaml:"format"`
}

// LoggingConfig contains configuration for application logging.
type LoggingConfig struct {
	// Level is the log level ("debug", "info", "warn", "error")
	Level string `mapstructure:"level" yaml:"level"`
}

// Formats lists the accepted output formats.
var Formats = []string{"json", "text", "markdown", "pdf"}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Jira: JiraConfig{
			IssueType: "Task",
			Timeout:   30 * time.Second,
		},
		Convert: ConvertConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns ~/.adfpipe/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".adfpipe", "config.yaml"), nil
}

// Load reads configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from a specific file path and merges with
// environment variables. If the file doesn't exist, it creates one with default values.
func LoadFromPath(path string) (*Config, error) {
	path = expandPath(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeConfigFile(path, Default()); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	// Example: ADFPIPE_JIRA_API_TOKEN
	v.SetEnvPrefix("ADFPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Output.Dir = expandPath(cfg.Output.Dir)

	return &cfg, nil
}

// setDefaults registers every key so that env overrides apply to keys the
// file leaves out.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("jira.url", d.Jira.URL)
	v.SetDefault("jira.email", d.Jira.Email)
	v.SetDefault("jira.api_token", d.Jira.APIToken)
	v.SetDefault("jira.project_key", d.Jira.ProjectKey)
	v.SetDefault("jira.issue_type", d.Jira.IssueType)
	v.SetDefault("jira.timeout", d.Jira.Timeout)
	v.SetDefault("convert.selector", d.Convert.Selector)
	v.SetDefault("convert.workers", d.Convert.Workers)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.level", d.Logging.Level)
}

// Validate checks the settings every command relies on.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	validFormat := false
	for _, f := range Formats {
		if c.Output.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid output format '%s', must be one of: %s", c.Output.Format, strings.Join(Formats, ", "))
	}

	if c.Convert.Workers < 1 {
		return fmt.Errorf("convert.workers must be at least 1")
	}

	return nil
}

// ValidateJira checks the settings needed to create issues.
func (c *Config) ValidateJira() error {
	if c.Jira.URL == "" {
		return fmt.Errorf("jira.url is required")
	}
	if !strings.HasPrefix(c.Jira.URL, "http://") && !strings.HasPrefix(c.Jira.URL, "https://") {
		return fmt.Errorf("jira.url must start with http:// or https://")
	}
	if c.Jira.Email == "" {
		return fmt.Errorf("jira.email is required")
	}
	if c.Jira.APIToken == "" {
		return fmt.Errorf("jira.api_token is required (or set ADFPIPE_JIRA_API_TOKEN)")
	}
	if c.Jira.ProjectKey == "" {
		return fmt.Errorf("jira.project_key is required")
	}
	return nil
}

// SaveToPath writes the configuration to path.
func (c *Config) SaveToPath(path string) error {
	return writeConfigFile(expandPath(path), c)
}

// writeConfigFile writes a Config struct to a YAML file.
func writeConfigFile(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandPath expands ~ to the user's home directory in a path string.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
