package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExpandsEnvInPaths(t *testing.T) {
	t.Setenv("PAPERCUT_ROOT", "/srv/news")

	path := filepath.Join(t.TempDir(), "papercut.yaml")
	yaml := `
server:
  hostname: news.example.com
  listen_addr: ":1190"
nntp:
  maildir_root: "${PAPERCUT_ROOT}/maildir"
  hierarchies:
    alt:
      maildir_root: "${PAPERCUT_ROOT}/alt"
auth:
  enabled: true
  flat_file_path: "${PAPERCUT_ROOT}/users.txt"
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.NNTP.MaildirRoot != "/srv/news/maildir" {
		t.Fatalf("unexpected maildir root: %s", cfg.NNTP.MaildirRoot)
	}
	if cfg.Auth.FlatFilePath != "/srv/news/users.txt" {
		t.Fatalf("unexpected auth path: %s", cfg.Auth.FlatFilePath)
	}
	if got := cfg.NNTP.Hierarchies["alt"].MaildirRoot; got != "/srv/news/alt" {
		t.Fatalf("unexpected hierarchy root: %s", got)
	}
	if cfg.Server.Hostname != "news.example.com" {
		t.Fatalf("unexpected hostname: %s", cfg.Server.Hostname)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.NNTP.ReadOnly {
		t.Fatal("expected default config to allow posting")
	}
	if cfg.Server.ListenAddr == "" {
		t.Fatal("expected a default listen address")
	}
}
