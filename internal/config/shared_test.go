package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"focus-arc/internal/audio"
)

// chdir moves into dir for the rest of the test so config.yaml lookups are isolated.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Arc.StartKey != "1A" || cfg.Arc.PeakBPM != 85 || cfg.Arc.TotalDuration != 1500 {
		t.Errorf("arc defaults = %+v", cfg.Arc)
	}
	if cfg.Storage.Provider != "local" || cfg.Storage.LocalRoot != "./output" {
		t.Errorf("storage defaults = %+v", cfg.Storage)
	}
	if cfg.Mastering.Preset != "warm-handpan" || cfg.Mastering.BitDepth != 24 {
		t.Errorf("mastering defaults = %+v", cfg.Mastering)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FOCUS_ARC_START_KEY", "8B")
	t.Setenv("FOCUS_ARC_PEAK_BPM", "92")
	t.Setenv("FOCUS_STORAGE_PROVIDER", "s3")
	t.Setenv("GEMINI_API_KEY", "secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Arc.StartKey != "8B" || cfg.Arc.PeakBPM != 92 {
		t.Errorf("arc = %+v", cfg.Arc)
	}
	if cfg.Storage.Provider != "s3" {
		t.Errorf("provider = %s", cfg.Storage.Provider)
	}
	if cfg.Enrich.APIKey != "secret" {
		t.Errorf("api key not read from GEMINI_API_KEY")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	content := `
arc:
  start_key: "5A"
  start_bpm: 55
  transitions: ["relative"]
mastering:
  preset: ambient
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Arc.StartKey != "5A" || cfg.Arc.StartBPM != 55 || cfg.Mastering.Preset != "ambient" {
		t.Errorf("file values not applied: %+v / %+v", cfg.Arc, cfg.Mastering)
	}
	// Untouched keys keep their defaults.
	if cfg.Arc.PeakBPM != 85 {
		t.Errorf("peak = %v; want default 85", cfg.Arc.PeakBPM)
	}

	ac, err := cfg.ArcConfig()
	if err != nil {
		t.Fatalf("ArcConfig: %v", err)
	}
	if ac.StartKey != audio.MustParseCamelot("5A") || len(ac.AllowedTransitions) != 1 || ac.AllowedTransitions[0] != audio.Relative {
		t.Errorf("ArcConfig = %+v", ac)
	}
}

func TestArcConfigErrors(t *testing.T) {
	cfg := &Config{}
	cfg.Arc.StartKey = "13C"
	if _, err := cfg.ArcConfig(); err == nil {
		t.Error("expected error for bad start key")
	}

	cfg.Arc.StartKey = "1A"
	cfg.Arc.Transitions = []string{"tritone"}
	if _, err := cfg.ArcConfig(); err == nil {
		t.Error("expected error for bad transition")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("GEMINI_API_KEY", "do-not-write")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "do-not-write") {
		t.Error("secret leaked into config file")
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("written file is not valid yaml: %v", err)
	}
	if back.Arc.StartKey != "1A" || back.Storage.BucketAudio != "published" {
		t.Errorf("written defaults = %+v / %+v", back.Arc, back.Storage)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("expected error when file exists")
	}
}
