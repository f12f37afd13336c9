package tools

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ReaperBin != filepath.Join("bin", "REAPER", "reaper") {
		t.Fatalf("ReaperBin = %q", cfg.ReaperBin)
	}
	if got := cfg.SPTKBin("mcep"); got != filepath.Join("bin", "SPTK-3.9", "mcep") {
		t.Fatalf("SPTKBin = %q", got)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tools.yaml")
	body := "bin_dir: /opt/vocoder\nsptk_dir: /usr/local/sptk/bin\ntemp_dir: " + dir + "\nkeep_temp: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ReaperBin != filepath.Join("/opt/vocoder", "REAPER", "reaper") {
		t.Fatalf("ReaperBin = %q", cfg.ReaperBin)
	}
	if cfg.SPTKDir != "/usr/local/sptk/bin" {
		t.Fatalf("SPTKDir = %q", cfg.SPTKDir)
	}
	if !cfg.KeepTemp || cfg.TempDir != dir {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("bin_dir: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestScratch(t *testing.T) {
	cfg := Config{TempDir: t.TempDir()}
	dir, cleanup, err := cfg.Scratch("run-*")
	if err != nil {
		t.Fatalf("Scratch: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("scratch dir missing: %v", err)
	}
	cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("scratch dir not removed: %v", err)
	}

	cfg.KeepTemp = true
	dir, cleanup, err = cfg.Scratch("keep-*")
	if err != nil {
		t.Fatalf("Scratch: %v", err)
	}
	cleanup()
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("kept dir removed: %v", err)
	}
}
