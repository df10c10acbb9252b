package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-blog")
	if err := runInit(io.Discard, dir, "https://repo.cdn.prismic.io/api/v2"); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	cfgYAML, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(cfgYAML), `name: "My Blog"`) || !strings.Contains(string(cfgYAML), "https://repo.cdn.prismic.io/api/v2") {
		t.Errorf("config.yaml = %s", cfgYAML)
	}
	if _, err := os.Stat(filepath.Join(dir, ".env.example")); err != nil {
		t.Errorf(".env.example: %v", err)
	}

	if err := runInit(io.Discard, dir, ""); err == nil {
		t.Error("expected error when config.yaml exists")
	}

	cfg, err := loadConfig(filepath.Join(dir, "config.yaml"), "")
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if cfg.site().Name != "My Blog" {
		t.Errorf("name = %q", cfg.site().Name)
	}
}

func TestToTitle(t *testing.T) {
	tests := map[string]string{
		"my-blog": "My Blog",
		"myblog":  "Myblog",
		"":        "",
	}
	for in, want := range tests {
		if got := toTitle(in); got != want {
			t.Errorf("toTitle(%q) = %q, want %q", in, got, want)
		}
	}
}
