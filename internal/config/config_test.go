package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target != "x64-systemv-linux" {
		t.Errorf("expected default target, got %q", cfg.Target)
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statimc.yaml")
	body := "target: x64-systemv-linux\ndumps:\n  - siir\n  - machine\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.WantDump(StageSIIR) || !cfg.WantDump(StageMachine) {
		t.Errorf("expected siir and machine dumps enabled, got %v", cfg.Dumps)
	}
	if cfg.WantDump(StageAST) {
		t.Errorf("did not expect ast dump enabled, got %v", cfg.Dumps)
	}
}

func TestValidateRejectsUnknownTarget(t *testing.T) {
	cfg := Config{Target: "arm64-macos"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unknown target")
	}
}

func TestValidateRejectsUnknownDumpStage(t *testing.T) {
	cfg := Config{Target: "x64-systemv-linux", Dumps: []string{"bogus"}}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unknown dump stage")
	}
}

func TestApplyFlagsFlagsWin(t *testing.T) {
	cfg := Config{Target: "x64-systemv-linux", Dumps: []string{StageAST}}
	merged := cfg.ApplyFlags("", []string{StageMachine})
	if merged.Target != "x64-systemv-linux" {
		t.Errorf("expected unchanged target, got %q", merged.Target)
	}
	if !merged.WantDump(StageMachine) || merged.WantDump(StageAST) {
		t.Errorf("expected flags to replace file dumps entirely, got %v", merged.Dumps)
	}
}
