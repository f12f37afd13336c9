// Package tools locates and runs the external binaries the vocoder relies
// on: REAPER for pitch marks and SPTK for mel-cepstral analysis.
package tools

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config holds paths to external binaries and scratch space.
type Config struct {
	// BinDir is the directory REAPER and SPTK are resolved under when
	// their own paths are empty.
	BinDir string `yaml:"bin_dir,omitempty"`

	// ReaperBin is the path of the reaper executable.
	ReaperBin string `yaml:"reaper_bin,omitempty"`

	// SPTKDir is the directory holding the SPTK binaries (mcep, ...).
	SPTKDir string `yaml:"sptk_dir,omitempty"`

	// TempDir receives intermediate files. Empty means os.TempDir().
	TempDir string `yaml:"temp_dir,omitempty"`

	// KeepTemp leaves intermediate files in place for debugging.
	KeepTemp bool `yaml:"keep_temp,omitempty"`
}

// DefaultConfig resolves binaries relative to "bin" in the working
// directory: bin/REAPER/reaper and bin/SPTK-3.9.
func DefaultConfig() Config {
	cfg := Config{BinDir: "bin"}
	cfg.resolve()
	return cfg
}

// LoadConfig reads a YAML config file. Unset paths fall back to BinDir.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("tools: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("tools: parse config %s: %w", path, err)
	}
	if cfg.BinDir == "" {
		cfg.BinDir = "bin"
	}
	cfg.resolve()

	return cfg, nil
}

func (c *Config) resolve() {
	if c.ReaperBin == "" {
		c.ReaperBin = filepath.Join(c.BinDir, "REAPER", "reaper")
	}
	if c.SPTKDir == "" {
		c.SPTKDir = filepath.Join(c.BinDir, "SPTK-3.9")
	}
}

// SPTKBin returns the path of the named SPTK tool.
func (c Config) SPTKBin(name string) string {
	return filepath.Join(c.SPTKDir, name)
}

// Scratch creates a fresh directory for one tool invocation. The returned
// cleanup removes it unless KeepTemp is set.
func (c Config) Scratch(pattern string) (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp(c.TempDir, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("tools: %w", err)
	}
	if c.KeepTemp {
		return dir, func() {}, nil
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}
