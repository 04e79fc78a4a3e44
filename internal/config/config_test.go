package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DATABASE", "moviereview.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.Port)
	}
	if cfg.DBType != "sqlite" {
		t.Errorf("Expected default sqlite, got %s", cfg.DBType)
	}
	if cfg.AIModel != "gpt-4o-mini" {
		t.Errorf("Expected default model, got %s", cfg.AIModel)
	}
	if cfg.AIConfigured() {
		t.Error("Expected AI unconfigured without a key")
	}
}

func TestLoadValidation(t *testing.T) {
	t.Setenv("DB_DATABASE", "")
	if _, err := Load(); err == nil {
		t.Error("Expected error without DB_DATABASE")
	}

	t.Setenv("DB_DATABASE", "moviereview")
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("DB_USER", "")
	if _, err := Load(); err == nil {
		t.Error("Expected error without DB_USER for mysql")
	}
}

func TestAIConfigured(t *testing.T) {
	t.Setenv("DB_DATABASE", "moviereview.db")
	t.Setenv("AI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !cfg.AIConfigured() {
		t.Error("Expected AI configured with a key")
	}
}
