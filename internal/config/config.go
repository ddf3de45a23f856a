// Package config loads the YAML configuration file that wires together
// the NNTP server's hostname, listen address, maildir roots, hierarchy
// routing table, and authentication store.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MainConfig is the top-level document, mirroring the teacher's style of
// one struct per configuration concern nested under a single root.
type MainConfig struct {
	Server ServerConfig `yaml:"server"`
	NNTP   NNTPConfig   `yaml:"nntp"`
	Auth   AuthConfig   `yaml:"auth"`
}

// ServerConfig controls process-wide behavior not specific to the NNTP
// protocol itself.
type ServerConfig struct {
	Hostname   string `yaml:"hostname"`
	ListenAddr string `yaml:"listen_addr"`
	Profile    bool   `yaml:"profile"`
}

// NNTPConfig controls the protocol surface: whether the server accepts
// posts, and which maildir hierarchies it serves.
type NNTPConfig struct {
	ReadOnly    bool                       `yaml:"read_only"`
	MaildirRoot string                     `yaml:"maildir_root"`
	Hierarchies map[string]HierarchyConfig `yaml:"hierarchies"`
}

// HierarchyConfig describes one routed group prefix. Hierarchies map a
// prefix to its own maildir root, letting a single server front several
// independently-rooted group trees (mirroring the source's
// settings.hierarchies dict, where each entry names its own backend
// configuration).
type HierarchyConfig struct {
	MaildirRoot string `yaml:"maildir_root"`
}

// AuthConfig controls whether AUTHINFO is enforced and where credentials
// are read from.
type AuthConfig struct {
	Enabled      bool   `yaml:"enabled"`
	FlatFilePath string `yaml:"flat_file_path"`
}

// NewDefaultConfig returns the configuration a bare `nntp-server` run
// would use with no config file at all: read-only mode disabled (posting
// allowed), auth disabled, maildir root under the current directory.
func NewDefaultConfig() *MainConfig {
	return &MainConfig{
		Server: ServerConfig{
			Hostname:   "localhost",
			ListenAddr: ":1190",
		},
		NNTP: NNTPConfig{
			MaildirRoot: "./maildir",
		},
	}
}

// Load reads and parses a YAML configuration file at path, expanding
// ${VAR}/$VAR environment references in path-like fields the way the
// teacher's deployment configs are interpolated at load time.
func Load(path string) (*MainConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := NewDefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.NNTP.MaildirRoot = os.ExpandEnv(cfg.NNTP.MaildirRoot)
	cfg.Auth.FlatFilePath = os.ExpandEnv(cfg.Auth.FlatFilePath)
	for name, h := range cfg.NNTP.Hierarchies {
		h.MaildirRoot = os.ExpandEnv(h.MaildirRoot)
		cfg.NNTP.Hierarchies[name] = h
	}
	return cfg, nil
}
