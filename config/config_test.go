package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if !cfg.Import.CastShadows || !cfg.Import.ReceiveShadows {
		t.Error("shadow defaults: ", cfg.Import)
	}
	if cfg.Logging.Level != "info" {
		t.Error("log level default: ", cfg.Logging.Level)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("import:\n  cast_shadows: false\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal("write: ", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal("Load: ", err)
	}
	if cfg.Import.CastShadows {
		t.Error("cast_shadows not overridden")
	}
	if cfg.Logging.Level != "debug" {
		t.Error("level not overridden: ", cfg.Logging.Level)
	}
	// Untouched keys keep their defaults.
	if !cfg.Import.ReceiveShadows {
		t.Error("receive_shadows default lost")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg == nil {
		t.Fatal("Load: ", cfg, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error")
	}
}
