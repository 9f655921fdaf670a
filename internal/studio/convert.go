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

// ConvertDir retunes every mp3/wav in dir into outDir as "<base>-<freq>hz.mp3".
// An empty outDir means "<dir>-<freq>hz".
func (s *Studio) ConvertDir(ctx context.Context, dir, outDir string, target audio.SacredFrequency) (*Report, error) {
	files, err := listAudio(dir, audio.IsBatchFormat)
	if err != nil {
		return nil, err
	}

	if outDir == "" {
		outDir = fmt.Sprintf("%s-%dhz", filepath.Clean(dir), int(target))
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}

	log.Printf("🔮 Converting %d tracks to %s...", len(files), target)

	report := &Report{Dir: outDir}
	for _, in := range files {
		base, _ := splitExt(in)
		out := filepath.Join(outDir, fmt.Sprintf("%s-%dhz.mp3", base, int(target)))
		if err := s.convertOne(ctx, in, out, target); err != nil {
			log.Printf("❌ Failed: %s - %v", filepath.Base(in), err)
			report.fail(in)
			continue
		}
		log.Printf("✅ %s → %s", filepath.Base(in), filepath.Base(out))
		report.Outputs = append(report.Outputs, out)
	}
	return report, nil
}

// ConvertFile retunes one file; an empty output means "<base>-<freq>hz<ext>"
// beside the input.
func (s *Studio) ConvertFile(ctx context.Context, path, output string, target audio.SacredFrequency) (string, error) {
	if output == "" {
		base, ext := splitExt(path)
		output = filepath.Join(filepath.Dir(path), fmt.Sprintf("%s-%dhz%s", base, int(target), ext))
	}
	if err := s.convertOne(ctx, path, output, target); err != nil {
		return "", err
	}
	return output, nil
}

func (s *Studio) convertOne(ctx context.Context, in, out string, target audio.SacredFrequency) (err error) {
	done := metrics.Observe(metrics.StageConvert)
	defer func() { done(err) }()
	return s.convert(ctx, in, out, target)
}
