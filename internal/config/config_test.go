package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "> ")
	}
	if len(cfg.LoadPath) != 0 {
		t.Errorf("LoadPath = %v, want empty", cfg.LoadPath)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goscheme.yaml")
	doc := "prompt: \"scm> \"\nload_path:\n  - /usr/local/share/goscheme\n  - ./lib\ngc_interval: 1024\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "scm> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "scm> ")
	}
	if cfg.GCInterval != 1024 {
		t.Errorf("GCInterval = %d, want 1024", cfg.GCInterval)
	}
	want := []string{"/usr/local/share/goscheme", "./lib"}
	if len(cfg.LoadPath) != len(want) {
		t.Fatalf("LoadPath = %v, want %v", cfg.LoadPath, want)
	}
	for i := range want {
		if cfg.LoadPath[i] != want[i] {
			t.Errorf("LoadPath[%d] = %q, want %q", i, cfg.LoadPath[i], want[i])
		}
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("prompt: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestDefaultPathEndsInDotfile(t *testing.T) {
	p := DefaultPath()
	if filepath.Base(p) != ".goscheme.yaml" {
		t.Errorf("DefaultPath() = %q, want basename .goscheme.yaml", p)
	}
}
