package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = "bushel.toml"

// Config holds the CLI configuration.
//
//	log_level = "info"
//
//	[catalog]
//	dsn = "bushel.db"
//	system = "System"
//
//	[libraries]
//	paths = ["./lib", "~/.bushel/lib"]
//
//	[repl]
//	history = "~/.bushel_history"
//
//	[highlight]
//	color = true
type Config struct {
	LogLevel  string          `toml:"log_level"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Libraries LibrariesConfig `toml:"libraries"`
	REPL      REPLConfig      `toml:"repl"`
	Highlight HighlightConfig `toml:"highlight"`
}

// CatalogConfig locates the terminology catalog. An empty DSN disables it.
type CatalogConfig struct {
	DSN    string `toml:"dsn"`
	System string `toml:"system"`
}

// LibrariesConfig lists the directories searched by "require library".
type LibrariesConfig struct {
	Paths []string `toml:"paths"`
}

// REPLConfig holds interactive settings.
type REPLConfig struct {
	History string `toml:"history"`
}

// HighlightConfig controls the highlight command.
type HighlightConfig struct {
	Color *bool `toml:"color"`
}

// LoadConfig reads path, or DefaultConfigFile when path is empty and the
// file exists. Without any file the defaults apply.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		path = os.ExpandEnv(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if len(c.Libraries.Paths) == 0 {
		c.Libraries.Paths = []string{"."}
	}
	for i, p := range c.Libraries.Paths {
		c.Libraries.Paths[i] = expandHome(os.ExpandEnv(p))
	}
	c.Catalog.DSN = expandHome(os.ExpandEnv(c.Catalog.DSN))
	if c.REPL.History == "" {
		c.REPL.History = "~/.bushel_history"
	}
	c.REPL.History = expandHome(os.ExpandEnv(c.REPL.History))
	if c.Highlight.Color == nil {
		on := true
		c.Highlight.Color = &on
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
