package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	navkiterrors "github.com/navkit-dev/navkit/internal/errors"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": "demo"}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "demo" {
		t.Errorf("Name = %q, want %q", cfg.Name, "demo")
	}
	if cfg.RootComponent != DefaultRootComponent {
		t.Errorf("RootComponent = %q, want %q", cfg.RootComponent, DefaultRootComponent)
	}
	if cfg.Preload != "none" {
		t.Errorf("Preload = %q, want %q", cfg.Preload, "none")
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if got := cfg.DevAddress(); got != "localhost:4200" {
		t.Errorf("DevAddress() = %q, want %q", got, "localhost:4200")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("expected Load of empty dir to fail")
	}
	var nerr *navkiterrors.NavkitError
	if !stderrors.As(err, &nerr) || nerr.Code != "N080" {
		t.Errorf("error = %v, want code N080", err)
	}
}

func TestLoadInvalidJSONFails(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"name": `)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected Load of invalid JSON to fail")
	}
	var nerr *navkiterrors.NavkitError
	if !stderrors.As(err, &nerr) || nerr.Code != "N081" {
		t.Errorf("error = %v, want code N081", err)
	}
}

func TestLoadRejectsUnknownPreload(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{"preload": "eager"}`)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected unknown preload strategy to fail validation")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := New()
	cfg.Name = "demo"
	cfg.UseHash = true
	cfg.Routes.Components = []string{"Home", "About"}
	if err := cfg.SaveTo(filepath.Join(dir, ConfigFileName)); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.UseHash {
		t.Error("UseHash lost in round trip")
	}
	if len(loaded.Routes.Components) != 2 {
		t.Errorf("Routes.Components = %v, want 2 entries", loaded.Routes.Components)
	}
	if loaded.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", loaded.Dir(), dir)
	}
}
