package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseScriptResult(t *testing.T) {
	a, err := parseScriptResult([]byte(`{
  "success": true,
  "file": "source.mp3",
  "tempo": 72.4,
  "key": "A♯m",
  "key_confidence": 0.71,
  "energy": 0.31,
  "duration": 184.2,
  "sample_rate": 48000
}`))
	if err != nil {
		t.Fatalf("parseScriptResult: %v", err)
	}
	if a.Tempo != 72 || a.Key != "A♯m" || a.SampleRate != 48000 || a.Energy != 0.31 {
		t.Errorf("analysis = %+v", a)
	}
	if !a.HasCamelot || a.Camelot != MustParseCamelot("3A") {
		t.Errorf("camelot = %s (%v); want 3A", a.Camelot, a.HasCamelot)
	}
}

func TestParseScriptResultDefaults(t *testing.T) {
	a, err := parseScriptResult([]byte(`{"success": true, "tempo": 90, "key": "Cm"}`))
	if err != nil {
		t.Fatal(err)
	}
	if a.Energy != 0.5 || a.SampleRate != 44100 {
		t.Errorf("defaults not applied: %+v", a)
	}
	if a.Camelot != MustParseCamelot("5A") {
		t.Errorf("Cm -> %s; want 5A", a.Camelot)
	}
}

func TestParseScriptResultFailures(t *testing.T) {
	tests := map[string]string{
		"reported failure": `{"success": false, "error": "File not found: x"}`,
		"missing key":      `{"success": true, "tempo": 80}`,
		"missing tempo":    `{"success": true, "key": "C"}`,
		"not json":         `librosa warning`,
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseScriptResult([]byte(in)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseEssentia(t *testing.T) {
	a, err := parseEssentia([]byte(`{
  "metadata": {"audio_properties": {"length": 201.5, "sample_rate": 44100}},
  "lowlevel": {"average_loudness": 0.82},
  "rhythm": {"bpm": 121.6},
  "tonal": {"key_key": "F#", "key_scale": "minor"}
}`))
	if err != nil {
		t.Fatalf("parseEssentia: %v", err)
	}
	if a.Tempo != 122 || a.Key != "F#m" || a.Duration != 201.5 || a.Energy != 0.82 {
		t.Errorf("analysis = %+v", a)
	}
	if a.Camelot != MustParseCamelot("11A") {
		t.Errorf("camelot = %s; want 11A", a.Camelot)
	}

	if _, err := parseEssentia([]byte(`{"rhythm": {"bpm": 0}}`)); err == nil {
		t.Error("expected error for empty analysis")
	}
}

func TestAnalyzeErrors(t *testing.T) {
	a := &Analyzer{Backend: "magic"}
	if _, err := a.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.mp3")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "x.mp3")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Analyze(context.Background(), path); err == nil {
		t.Error("expected error for unknown backend")
	}

	notes := filepath.Join(t.TempDir(), "notes.txt")
	os.WriteFile(notes, []byte("x"), 0644)
	_, err := (&Analyzer{}).Analyze(context.Background(), notes)
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("err = %v; want unsupported format", err)
	}
}
