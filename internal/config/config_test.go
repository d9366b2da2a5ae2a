package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "./data" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.History.Enabled {
		t.Error("history disabled by default")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := `
data_dir: /srv/estudio
max_document_bytes: 1048576
log_level: debug
history:
  enabled: false
  author_name: Escritora
  author_email: escritora@example.com
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "/srv/estudio" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.MaxDocumentBytes != 1<<20 {
		t.Errorf("MaxDocumentBytes = %d", cfg.MaxDocumentBytes)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.History.Enabled || cfg.History.AuthorName != "Escritora" {
		t.Errorf("History = %+v", cfg.History)
	}
	if got := cfg.DocumentPath(); got != filepath.Join("/srv/estudio", "project.json") {
		t.Errorf("DocumentPath = %q", got)
	}
	if got := cfg.BlobDir(); got != filepath.Join("/srv/estudio", "images") {
		t.Errorf("BlobDir = %q", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("DataDir = %q, want the default", cfg.DataDir)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_dir: [oops\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load of malformed YAML succeeded")
	}
}
