package audio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnknownPreset = errors.New("unknown mastering preset")

// Preset is a named sox effect chain.
type Preset struct {
	Description string   `yaml:"description"`
	Chain       []string `yaml:"chain"`
}

// PresetsFile matches the optional mastering presets YAML.
type PresetsFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

const gentleCompand = "compand 0.3,1 6:-70,-60,-20 -5 -90 0.2"

func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		"warm-handpan": {
			Description: "Reduces tinny highs (8kHz-15kHz), boosts warm lows (150Hz-500Hz), gentle compression, subtle reverb. Perfect for handpan tracks.",
			Chain: []string{
				"highpass 40",
				"equalizer 150 0.5q +2.5",
				"equalizer 500 0.8q +1",
				"equalizer 3000 1q -1",
				"equalizer 8000 1.5q -3",
				"equalizer 15000 2q -2",
				"reverb 20 50 100",
				gentleCompand,
				"norm -1",
			},
		},
		"meditation": {
			Description: "Extra warmth, reduced high frequencies, soft reverb, gentle compression. Ideal for deep meditation and sleep music.",
			Chain: []string{
				"highpass 30",
				"equalizer 100 0.5q +2",
				"equalizer 400 0.8q +1.5",
				"equalizer 6000 2q -2",
				"equalizer 10000 2q -3",
				"reverb 30 50 100",
				gentleCompand,
				"norm -0.5",
			},
		},
		"ambient": {
			Description: "Balanced warmth, moderate reverb, smooth high-end rolloff. Great for ambient soundscapes.",
			Chain: []string{
				"highpass 35",
				"equalizer 200 0.5q +2",
				"equalizer 1000 0.8q +0.5",
				"equalizer 5000 1.5q -1.5",
				"equalizer 12000 2q -2.5",
				"reverb 40 50 100",
				gentleCompand,
				"norm -1",
			},
		},
		"acoustic": {
			Description: "Natural warmth, preserves acoustic detail, gentle compression. Perfect for piano, guitar, strings.",
			Chain: []string{
				"highpass 40",
				"equalizer 200 0.5q +2",
				"equalizer 800 0.8q +1",
				"equalizer 4000 1q -1",
				"equalizer 10000 1.5q -2",
				gentleCompand,
				"norm -1",
			},
		},
	}
}

// LoadPresets returns the built-in presets, overridden and extended by the
// YAML file at path when one is given.
func LoadPresets(path string) (map[string]Preset, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("audio: presets: %w", err)
	}

	var file PresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("audio: presets %s: %w", path, err)
	}

	for name, p := range file.Presets {
		if len(p.Chain) == 0 {
			return nil, fmt.Errorf("audio: presets %s: %q has an empty chain", path, name)
		}
		presets[name] = p
	}

	log.Printf("🎛️ Mastering presets loaded: %d built-in + %d from %s", len(DefaultPresets()), len(file.Presets), path)
	return presets, nil
}

// retuneRatios are the targets mastering can retune to in the same sox pass.
var retuneRatios = map[SacredFrequency]bool{432: true, 444: true, 528: true, 1111: true}

// SoxArgs builds the sox argument list. A supported frequency prepends a
// tempo stage with ratio freq/440.
func SoxArgs(input, output string, chain []string, freq SacredFrequency) []string {
	args := []string{input, output}
	if retuneRatios[freq] {
		ratio := strconv.FormatFloat(float64(freq)/BaseFrequency, 'f', -1, 64)
		args = append(args, "tempo", "-s", ratio)
	}
	for _, stage := range chain {
		args = append(args, strings.Fields(stage)...)
	}
	return args
}

// Mastering runs sox presets and the reference-matching helper.
type Mastering struct {
	presets         map[string]Preset
	python          string
	referenceScript string
}

func NewMastering(presets map[string]Preset, python, referenceScript string) *Mastering {
	if presets == nil {
		presets = DefaultPresets()
	}
	return &Mastering{presets: presets, python: python, referenceScript: referenceScript}
}

func (m *Mastering) Preset(name string) (Preset, error) {
	p, ok := m.presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownPreset, name, strings.Join(m.PresetNames(), ", "))
	}
	return p, nil
}

func (m *Mastering) PresetNames() []string {
	names := make([]string, 0, len(m.presets))
	for name := range m.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MasterTrack applies a preset with sox, optionally retuning in the same pass.
func (m *Mastering) MasterTrack(ctx context.Context, input, output, preset string, freq SacredFrequency) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("audio: master: input %s: %w", input, err)
	}
	p, err := m.Preset(preset)
	if err != nil {
		return err
	}

	args := SoxArgs(input, output, p.Chain, freq)
	cmd := exec.CommandContext(ctx, "sox", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("audio: sox %s: %w: %s", filepath.Base(input), err, tail(out))
	}
	return nil
}

// ValidBitDepth reports whether the reference helper can render at depth.
func ValidBitDepth(depth int) bool {
	return depth == 16 || depth == 24 || depth == 32
}

// ReferenceArgs builds the helper invocation; depth 0 means 24.
func (m *Mastering) ReferenceArgs(input, output, reference string, bitDepth int) ([]string, error) {
	if bitDepth == 0 {
		bitDepth = 24
	}
	if !ValidBitDepth(bitDepth) {
		return nil, fmt.Errorf("audio: reference master: bit depth %d not in 16/24/32", bitDepth)
	}
	return []string{
		m.referenceScript, input,
		"--reference", reference,
		"--output", output,
		"--bit-depth", strconv.Itoa(bitDepth),
	}, nil
}

type referenceResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Error   string `json:"error"`
}

// MasterWithReference matches input to the loudness and tone of reference.
// It returns the path the helper reports having written.
func (m *Mastering) MasterWithReference(ctx context.Context, input, output, reference string, bitDepth int) (string, error) {
	if _, err := os.Stat(input); err != nil {
		return "", fmt.Errorf("audio: reference master: input %s: %w", input, err)
	}
	if _, err := os.Stat(reference); err != nil {
		return "", fmt.Errorf("audio: reference master: reference %s: %w", reference, err)
	}

	args, err := m.ReferenceArgs(input, output, reference, bitDepth)
	if err != nil {
		return "", err
	}

	// The helper prints its JSON verdict on stdout even when it exits non-zero.
	out, runErr := exec.CommandContext(ctx, m.python, args...).Output()
	written, err := parseReferenceResult(out)
	if err != nil {
		if runErr != nil {
			return "", fmt.Errorf("audio: reference master %s: %w", filepath.Base(input), runErr)
		}
		return "", err
	}
	return written, nil
}

func parseReferenceResult(data []byte) (string, error) {
	var res referenceResult
	if err := json.Unmarshal(data, &res); err != nil {
		return "", fmt.Errorf("audio: reference master: bad helper output: %w", err)
	}
	if !res.Success {
		return "", fmt.Errorf("audio: reference master: %s", res.Error)
	}
	return res.Output, nil
}
