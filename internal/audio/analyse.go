package audio

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Analysis is what the planner needs from a source recording.
type Analysis struct {
	Tempo      int        `json:"tempo"`
	Key        string     `json:"key"`
	Camelot    CamelotKey `json:"-"`
	HasCamelot bool       `json:"-"`
	Energy     float64    `json:"energy"`
	Duration   float64    `json:"duration"`
	SampleRate int        `json:"sampleRate"`
}

const (
	BackendEssentia = "essentia"
	BackendScript   = "script"
)

// Analyzer runs one of the external analysis backends over a file.
type Analyzer struct {
	Backend  string
	Python   string
	Script   string
	Essentia string
	TempDir  string
	Timeout  time.Duration
}

func (a *Analyzer) Analyze(ctx context.Context, path string) (*Analysis, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("audio: analyse: %w", err)
	}
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("audio: analyse: unsupported format %s", filepath.Ext(path))
	}

	if a.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	switch a.Backend {
	case BackendEssentia:
		return a.analyzeEssentia(ctx, path)
	case BackendScript, "":
		return a.analyzeScript(ctx, path)
	default:
		return nil, fmt.Errorf("audio: analyse: unknown backend %q", a.Backend)
	}
}

type scriptResult struct {
	Success    bool    `json:"success"`
	Tempo      float64 `json:"tempo"`
	Key        string  `json:"key"`
	Energy     float64 `json:"energy"`
	Duration   float64 `json:"duration"`
	SampleRate int     `json:"sample_rate"`
	Error      string  `json:"error"`
}

func (a *Analyzer) analyzeScript(ctx context.Context, path string) (*Analysis, error) {
	log.Printf("🧪 Analysing %s with %s", filepath.Base(path), filepath.Base(a.Script))

	out, runErr := exec.CommandContext(ctx, a.Python, a.Script, path).Output()
	analysis, err := parseScriptResult(out)
	if err != nil {
		if runErr != nil {
			return nil, fmt.Errorf("audio: analyse %s: %w", filepath.Base(path), runErr)
		}
		return nil, err
	}

	log.Printf("✨ Analysis complete for %s (%d BPM, %s)", filepath.Base(path), analysis.Tempo, analysis.Key)
	return analysis, nil
}

func parseScriptResult(data []byte) (*Analysis, error) {
	var raw scriptResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("audio: analyse: bad script output: %w", err)
	}
	if !raw.Success {
		return nil, fmt.Errorf("audio: analyse: %s", raw.Error)
	}
	if raw.Tempo == 0 || raw.Key == "" {
		return nil, fmt.Errorf("audio: analyse: no tempo or key detected")
	}

	analysis := &Analysis{
		Tempo:      int(math.Round(raw.Tempo)),
		Key:        raw.Key,
		Energy:     raw.Energy,
		Duration:   raw.Duration,
		SampleRate: raw.SampleRate,
	}
	analysis.Camelot, analysis.HasCamelot = FromMusicalName(raw.Key)
	return analysis.withDefaults(), nil
}

type essentiaJSON struct {
	Metadata struct {
		AudioProperties struct {
			Length     float64 `json:"length"`
			SampleRate int     `json:"sample_rate"`
		} `json:"audio_properties"`
	} `json:"metadata"`
	LowLevel struct {
		AverageLoudness float64 `json:"average_loudness"`
	} `json:"lowlevel"`
	Rhythm struct {
		BPM float64 `json:"bpm"`
	} `json:"rhythm"`
	Tonal struct {
		KeyKey   string `json:"key_key"`
		KeyScale string `json:"key_scale"`
	} `json:"tonal"`
}

func (a *Analyzer) analyzeEssentia(ctx context.Context, path string) (*Analysis, error) {
	base := filepath.Join(a.TempDir, fmt.Sprintf("focus-%d-%s", time.Now().UnixNano(), filepath.Base(path)))
	safeWav := base + ".safe.wav"
	jsonPath := base + ".json"

	log.Printf("🧪 Pre-transcoding to Safe WAV for analysis: %s", filepath.Base(path))
	if err := transcodeMono(ctx, path, safeWav); err != nil {
		return nil, fmt.Errorf("audio: analyse: transcode: %w", err)
	}
	defer os.Remove(safeWav)

	log.Printf("🚀 Running Essentia on safe WAV...")
	if out, err := exec.CommandContext(ctx, a.Essentia, safeWav, jsonPath).CombinedOutput(); err != nil {
		log.Printf("❌ Essentia failed: %v\nOutput: %s", err, string(out))
		return nil, fmt.Errorf("audio: analyse: essentia: %w", err)
	}
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("audio: analyse: %w", err)
	}

	analysis, err := parseEssentia(data)
	if err != nil {
		return nil, err
	}
	log.Printf("✨ Analysis complete for %s (%d BPM, %s)", filepath.Base(path), analysis.Tempo, analysis.Key)
	return analysis, nil
}

func parseEssentia(data []byte) (*Analysis, error) {
	var raw essentiaJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("audio: analyse: bad essentia output: %w", err)
	}
	if raw.Rhythm.BPM == 0 || raw.Tonal.KeyKey == "" {
		return nil, fmt.Errorf("audio: analyse: no tempo or key detected")
	}

	name := raw.Tonal.KeyKey
	if raw.Tonal.KeyScale == "minor" {
		name += "m"
	}

	analysis := &Analysis{
		Tempo:      int(math.Round(raw.Rhythm.BPM)),
		Key:        name,
		Energy:     raw.LowLevel.AverageLoudness,
		Duration:   raw.Metadata.AudioProperties.Length,
		SampleRate: raw.Metadata.AudioProperties.SampleRate,
	}
	analysis.Camelot, analysis.HasCamelot = toCamelot(raw.Tonal.KeyKey, raw.Tonal.KeyScale)
	return analysis.withDefaults(), nil
}

func (a *Analysis) withDefaults() *Analysis {
	if a.Energy == 0 {
		a.Energy = 0.5
	}
	if a.SampleRate == 0 {
		a.SampleRate = 44100
	}
	return a
}
