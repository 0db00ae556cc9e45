package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_UsesDefaults(t *testing.T) {
	t.Setenv("COMICSHELF_MANIFEST", "https://example.com/manifest.json")
	os.Unsetenv("COMICSHELF_DB_PATH")
	os.Unsetenv("COMICSHELF_SWIPE_THRESHOLD")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DBPath != "comicshelf.db" {
		t.Fatalf("unexpected db path: %s", cfg.DBPath)
	}
	if cfg.SwipeThreshold != 8 {
		t.Fatalf("unexpected swipe threshold: %d", cfg.SwipeThreshold)
	}
	if !cfg.ImagePreview {
		t.Fatal("expected image preview enabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoad_FileValues(t *testing.T) {
	os.Unsetenv("COMICSHELF_MANIFEST")
	os.Unsetenv("COMICSHELF_DB_PATH")

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "manifest: ./manifest.json\ndb_path: /tmp/shelf.db\nswipe_threshold: 12\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Manifest != "./manifest.json" {
		t.Fatalf("unexpected manifest: %s", cfg.Manifest)
	}
	if cfg.SwipeThreshold != 12 {
		t.Fatalf("unexpected swipe threshold: %d", cfg.SwipeThreshold)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("manifest: ./file.json\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("COMICSHELF_MANIFEST", "https://example.com/env.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Manifest != "https://example.com/env.json" {
		t.Fatalf("expected env override, got %s", cfg.Manifest)
	}
}

func TestValidate_RequiresManifest(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for missing manifest")
	}
}

func TestValidate_RejectsZeroThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Manifest = "m.json"
	cfg.SwipeThreshold = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for zero swipe threshold")
	}
}

func TestSaveAndReload(t *testing.T) {
	os.Unsetenv("COMICSHELF_MANIFEST")
	os.Unsetenv("COMICSHELF_DB_PATH")

	cfg := DefaultConfig()
	cfg.Manifest = "https://example.com/manifest.json"

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if reloaded.Manifest != cfg.Manifest {
		t.Fatalf("expected round-tripped manifest, got %s", reloaded.Manifest)
	}
}
