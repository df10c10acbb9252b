package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `site:
  name: "Viagens"
  url: "https://blog.example.com"
prismic:
  endpoint: "https://repo.cdn.prismic.io/api/v2"
  page_size: 3
cache:
  ttl: 5m
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPACETRAVELING_PRISMIC_ACCESS_TOKEN", "secret")
	t.Setenv("SPACETRAVELING_SITE_LOCALE", "en-US")

	cfg, err := loadConfig(path, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	site := cfg.site()
	if site.Name != "Viagens" || site.URL != "https://blog.example.com" {
		t.Errorf("site = %+v", site)
	}
	if site.PageSize != 3 || site.FeedPageSize != 100 || site.DocumentType != "posts" {
		t.Errorf("prismic = %d %d %q", site.PageSize, site.FeedPageSize, site.DocumentType)
	}
	if site.FeedCacheTTL != 5*time.Minute || site.FetchTimeout != 10*time.Second {
		t.Errorf("durations = %v %v", site.FeedCacheTTL, site.FetchTimeout)
	}
	if site.AccessToken != "secret" || site.Locale != "en-US" {
		t.Errorf("env overrides = %q %q", site.AccessToken, site.Locale)
	}
}

func TestLoadConfigDotenv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("SPACETRAVELING_PRISMIC_ENDPOINT=https://dotenv.cdn.prismic.io/api/v2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPACETRAVELING_PRISMIC_ENDPOINT", "")
	os.Unsetenv("SPACETRAVELING_PRISMIC_ENDPOINT")

	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := loadConfig("", envPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Prismic.Endpoint != "https://dotenv.cdn.prismic.io/api/v2" {
		t.Errorf("endpoint = %q", cfg.Prismic.Endpoint)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml"), ""); err == nil {
		t.Error("expected error for an explicit missing config")
	}

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("site:\n  name: x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SPACETRAVELING_PRISMIC_ENDPOINT", "")
	if _, err := loadConfig(path, ""); err == nil {
		t.Error("expected error without an endpoint")
	}
}
