package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the fleet backend root, e.g. https://api.example.com
	APIBaseURL string `yaml:"apiBaseURL" validate:"required,url"`

	// DSPCode scopes every backend request to one operator
	DSPCode string `yaml:"dspCode" validate:"required"`

	// WorkingDaysRRule describes the operation's working days, e.g.
	// "FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR,SA"
	WorkingDaysRRule string `yaml:"workingDaysRRule" validate:"required"`

	// RequestTimeoutSeconds bounds each backend request (default 15)
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds,omitempty" validate:"omitempty,min=1"`

	// MaxRetries for idempotent backend reads (default 2)
	MaxRetries int `yaml:"maxRetries,omitempty" validate:"omitempty,min=0,max=10"`

	// PostgresURL switches persistence from the REST backend to a local
	// Postgres instance when set
	PostgresURL string `yaml:"postgresURL,omitempty"`

	// LogDir overrides where log files are written (default "logs")
	LogDir string `yaml:"logDir,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from vanassign_config.yaml
// It looks for the config file in the current directory first, then in the
// user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads vanassign_config.<env>.yaml, falling back to the
// unsuffixed file name when env is empty
func LoadWithEnv(env string) (*Config, error) {
	name := "vanassign_config.yaml"
	if env != "" {
		name = fmt.Sprintf("vanassign_config.%s.yaml", env)
	}

	configPath, err := findConfigFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := rrule.StrToRRule(cfg.WorkingDaysRRule); err != nil {
		return fmt.Errorf("invalid workingDaysRRule: %w", err)
	}

	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.RequestTimeoutSeconds == 0 {
		cfg.RequestTimeoutSeconds = 15
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "logs"
	}
}

// findConfigFile searches for the named file in current directory and home
// directory
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
