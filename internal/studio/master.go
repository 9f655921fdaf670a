package studio

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"focus-arc/internal/audio"
	"focus-arc/internal/metrics"
)

type MasterOptions struct {
	Preset    string
	Reference string // switches to reference matching
	BitDepth  int
	Retune    audio.SacredFrequency // applied inside the sox pass
	Suffix    string
	Frequency audio.SacredFrequency // converted after mastering
}

// MasteredName is "<base><suffix>[_<freq>Hz]_mastered<ext>", or
// "<base>_mastered<ext>" in reference mode.
func MasteredName(path string, opts MasterOptions) string {
	base, ext := splitExt(path)
	if opts.Reference != "" {
		return base + "_mastered" + ext
	}
	name := base + opts.Suffix
	if opts.Retune != 0 {
		name += fmt.Sprintf("_%dHz", int(opts.Retune))
	}
	return name + "_mastered" + ext
}

// MasterDir masters every mp3/wav in dir into dir/mastered and, with a
// frequency set, converts the results into dir/final-<freq>hz.
func (s *Studio) MasterDir(ctx context.Context, dir string, opts MasterOptions) (*Report, error) {
	files, err := listAudio(dir, audio.IsBatchFormat)
	if err != nil {
		return nil, err
	}

	masteredDir := filepath.Join(dir, "mastered")
	if err := os.MkdirAll(masteredDir, 0755); err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}

	report := &Report{Dir: masteredDir}
	for _, in := range files {
		out := filepath.Join(masteredDir, MasteredName(in, opts))
		if err := s.masterOne(ctx, in, out, opts); err != nil {
			log.Printf("❌ Mastering failed for %s: %v", filepath.Base(in), err)
			report.fail(in)
			continue
		}
		log.Printf("✅ Saved: %s", filepath.Base(out))
		report.Outputs = append(report.Outputs, out)
	}

	if opts.Frequency == 0 || len(report.Outputs) == 0 {
		return report, nil
	}

	finalDir := filepath.Join(dir, fmt.Sprintf("final-%dhz", int(opts.Frequency)))
	converted, err := s.ConvertDir(ctx, masteredDir, finalDir, opts.Frequency)
	if err != nil {
		return report, err
	}
	converted.Failed = append(report.Failed, converted.Failed...)
	return converted, nil
}

// MasterFile masters one file into <its dir>/mastered; a frequency adds a
// converted "-<freq>hz" copy next to it.
func (s *Studio) MasterFile(ctx context.Context, path string, opts MasterOptions) (*Report, error) {
	masteredDir := filepath.Join(filepath.Dir(path), "mastered")
	if err := os.MkdirAll(masteredDir, 0755); err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}

	out := filepath.Join(masteredDir, MasteredName(path, opts))
	if err := s.masterOne(ctx, path, out, opts); err != nil {
		return nil, err
	}

	report := &Report{Dir: masteredDir, Outputs: []string{out}}
	if opts.Frequency == 0 {
		return report, nil
	}

	base, ext := splitExt(out)
	final := filepath.Join(masteredDir, fmt.Sprintf("%s-%dhz%s", base, int(opts.Frequency), ext))
	if err := s.convertOne(ctx, out, final, opts.Frequency); err != nil {
		return report, err
	}
	report.Outputs = append(report.Outputs, final)
	return report, nil
}

func (s *Studio) masterOne(ctx context.Context, in, out string, opts MasterOptions) (err error) {
	done := metrics.Observe(metrics.StageMaster)
	defer func() { done(err) }()

	if opts.Reference != "" {
		log.Printf("🎚️ Reference mastering: %s (reference %s)", filepath.Base(in), filepath.Base(opts.Reference))
		_, err = s.mastering.MasterWithReference(ctx, in, out, opts.Reference, opts.BitDepth)
		return err
	}

	log.Printf("🎚️ Mastering: %s (preset %s)", filepath.Base(in), opts.Preset)
	return s.mastering.MasterTrack(ctx, in, out, opts.Preset, opts.Retune)
}
