package core

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}
	return configPath
}

func TestLoadConfig_Success(t *testing.T) {
	configPath := writeConfig(t, `port: 8080
analysisApi:
  baseUrl: "http://localhost:8000"
  timeoutSeconds: 30
history:
  type: sqlite
  connectionString: "history.db"
  capacity: 10
thumbnailWidth: 64`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Port != 8080 {
		t.Errorf("Expected port to be 8080, got %d", config.Port)
	}
	if config.AnalysisAPI.BaseURL != "http://localhost:8000" {
		t.Errorf("Unexpected baseUrl: %s", config.AnalysisAPI.BaseURL)
	}
	if config.AnalysisAPI.TimeoutSeconds != 30 {
		t.Errorf("Expected timeout 30, got %d", config.AnalysisAPI.TimeoutSeconds)
	}
	if config.History.Capacity != 10 {
		t.Errorf("Expected capacity 10, got %d", config.History.Capacity)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	configPath := writeConfig(t, `port: 8080
analysisApi:
  baseUrl: "http://localhost:8000"
history:
  type: memory`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.AnalysisAPI.TimeoutSeconds != defaultTimeoutSeconds {
		t.Errorf("Expected default timeout, got %d", config.AnalysisAPI.TimeoutSeconds)
	}
	if config.History.Capacity != defaultHistoryCapacity {
		t.Errorf("Expected default capacity, got %d", config.History.Capacity)
	}
	if config.ThumbnailWidth != defaultThumbnailWidth {
		t.Errorf("Expected default thumbnail width, got %d", config.ThumbnailWidth)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig("/path/that/does/not/exist/config.yaml")

	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if config != nil {
		t.Error("Expected config to be nil when file doesn't exist")
	}
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing base url", "port: 8080\nhistory:\n  type: memory"},
		{"bad port", "port: -1\nanalysisApi:\n  baseUrl: \"http://x\"\nhistory:\n  type: memory"},
		{"unknown store", "port: 8080\nanalysisApi:\n  baseUrl: \"http://x\"\nhistory:\n  type: mongo\n  connectionString: \"x\""},
		{"sqlite without connection", "port: 8080\nanalysisApi:\n  baseUrl: \"http://x\"\nhistory:\n  type: sqlite"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			configPath := writeConfig(t, c.content)
			if _, err := LoadConfig(configPath); err == nil {
				t.Errorf("expected error for %s", c.name)
			}
		})
	}
}
