package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Estimate.Price != 0 {
		t.Errorf("expected Price=0, got %f", cfg.Estimate.Price)
	}
	if cfg.Estimate.IncludeSpecialChars {
		t.Error("expected IncludeSpecialChars=false")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected Format=text, got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != 2 {
		t.Errorf("expected Precision=2, got %d", cfg.Output.Precision)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "tokencost.yaml")

	content := `
estimate:
  price: 0.02
  include_special_chars: true
output:
  format: json
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Estimate.Price != 0.02 {
		t.Errorf("expected Price=0.02, got %f", cfg.Estimate.Price)
	}
	if !cfg.Estimate.IncludeSpecialChars {
		t.Error("expected IncludeSpecialChars=true")
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected Format=json, got %s", cfg.Output.Format)
	}
	if cfg.Output.Precision != 2 {
		t.Errorf("expected default Precision=2, got %d", cfg.Output.Precision)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"negative price": "estimate:\n  price: -1\n",
		"bad format":     "output:\n  format: xml\n",
		"bad yaml":       "estimate: [\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tokencost.yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".tokencost"), 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(tmpDir, ".tokencost", "config.yaml")

	content := `
output:
  precision: 4
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output.Precision != 4 {
		t.Errorf("expected Precision=4, got %d", cfg.Output.Precision)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPrice, "0.5")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Estimate.Price != 0.5 {
		t.Errorf("expected Price=0.5, got %f", cfg.Estimate.Price)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected Level=debug, got %s", cfg.Logging.Level)
	}

	t.Setenv(EnvPrice, "cheap")
	if err := cfg.ApplyEnv(); err == nil {
		t.Error("expected error for malformed price")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := DefaultPath(t.TempDir())

	cfg := DefaultConfig()
	cfg.Estimate.Price = 0.003
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Estimate.Price != 0.003 {
		t.Errorf("expected Price=0.003, got %f", loaded.Estimate.Price)
	}
}
