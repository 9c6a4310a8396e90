package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", cfg.PageSize, DefaultPageSize)
	}
	if cfg.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Debounce, DefaultDebounce)
	}
}

func TestNewReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: https://tasks.example.com/api\npage_size: 50\ndebounce: 250ms\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIURL != "https://tasks.example.com/api" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.PageSize != 50 {
		t.Errorf("PageSize = %d, want 50", cfg.PageSize)
	}
	if cfg.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v, want 250ms", cfg.Debounce)
	}
}

func TestNewEnvOverridesAPIURL(t *testing.T) {
	t.Setenv("TASKMASTER_API_URL", "http://127.0.0.1:9000/api")
	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9000/api" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
}

func TestNewRejectsBadPageSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("page_size: -5\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("PageSize = %d, want default for non-positive value", cfg.PageSize)
	}
}

func TestSessionPaths(t *testing.T) {
	cfg := &Config{Dir: "/tmp/tm"}
	if got := cfg.TokenPath(); got != filepath.Join("/tmp/tm", TokenFile) {
		t.Errorf("TokenPath = %q", got)
	}
	if got := cfg.UserPath(); got != filepath.Join("/tmp/tm", UserFile) {
		t.Errorf("UserPath = %q", got)
	}
}

func TestHasToken(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}
	if cfg.HasToken() {
		t.Error("HasToken = true with no token file")
	}
	if err := os.WriteFile(cfg.TokenPath(), []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}
	if !cfg.HasToken() {
		t.Error("HasToken = false with token file present")
	}
}
