package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalysisAPIConfig points the service at the remote wound-analysis API.
type AnalysisAPIConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// HistoryConfig selects and sizes the analysis-history store.
type HistoryConfig struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
	Capacity         int    `yaml:"capacity"`
}

type ServiceConfig struct {
	Port           int               `yaml:"port"`
	AnalysisAPI    AnalysisAPIConfig `yaml:"analysisApi"`
	History        HistoryConfig     `yaml:"history"`
	ThumbnailWidth int               `yaml:"thumbnailWidth"`
}

const (
	defaultTimeoutSeconds  = 60
	defaultHistoryCapacity = 10
	defaultThumbnailWidth  = 96
)

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	// Read the config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	// Parse YAML
	var config ServiceConfig
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	applyDefaults(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return &config, nil
}

func applyDefaults(config *ServiceConfig) {
	if config.AnalysisAPI.TimeoutSeconds <= 0 {
		config.AnalysisAPI.TimeoutSeconds = defaultTimeoutSeconds
	}
	if config.History.Capacity <= 0 {
		config.History.Capacity = defaultHistoryCapacity
	}
	if config.History.Type == "" {
		config.History.Type = "sqlite"
	}
	if config.ThumbnailWidth <= 0 {
		config.ThumbnailWidth = defaultThumbnailWidth
	}
}

func validateConfig(config *ServiceConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("port must be in range 1-65535, got %d", config.Port)
	}
	if config.AnalysisAPI.BaseURL == "" {
		return fmt.Errorf("analysisApi.baseUrl must not be empty")
	}
	switch config.History.Type {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unsupported history store type: %s", config.History.Type)
	}
	if config.History.Type != "memory" && config.History.ConnectionString == "" {
		return fmt.Errorf("history.connectionString must not be empty for type %s", config.History.Type)
	}
	return nil
}
