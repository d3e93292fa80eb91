package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaultMatchesDefaultsTable(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.StateDir != "." {
		t.Fatalf("StateDir = %q, want .", cfg.StateDir)
	}
	if cfg.UntrustedLoads {
		t.Fatal("UntrustedLoads = true, want false")
	}
}

func TestLoadReadsTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tomo.toml")
	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadWithFlagsOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tomo.toml")
	if err := WriteExample(path); err != nil {
		t.Fatalf("WriteExample: %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("loglevel", "", "")
	if err := flags.Set("loglevel", "debug"); err != nil {
		t.Fatalf("flags.Set: %v", err)
	}

	cfg, err := LoadWithFlags(path, flags)
	if err != nil {
		t.Fatalf("LoadWithFlags: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug (flag should override file)", cfg.LogLevel)
	}
}
