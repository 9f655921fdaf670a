// Package studio runs the post-generation workflows over a folder of
// downloaded tracks: mastering, retuning, tagging and publishing.
package studio

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"focus-arc/internal/audio"
)

// Mastering is implemented by *audio.Mastering.
type Mastering interface {
	MasterTrack(ctx context.Context, input, output, preset string, freq audio.SacredFrequency) error
	MasterWithReference(ctx context.Context, input, output, reference string, bitDepth int) (string, error)
}

type ConvertFunc func(ctx context.Context, input, output string, target audio.SacredFrequency) error

// ValidateFunc rejects truncated or undecodable downloads.
type ValidateFunc func(ctx context.Context, path string) error

// Store is the publishing side of *storage.Client.
type Store interface {
	UploadAudio(key string, body io.ReadSeeker, contentType string) error
	ListAudio(prefix string) ([]string, error)
	DeleteAudio(key string) error
	AudioLocation(key string) string
	IsPublished(prefix string) (bool, error)
}

type Studio struct {
	mastering Mastering
	convert   ConvertFunc
	validate  ValidateFunc
	store     Store
}

func New(m Mastering, store Store) *Studio {
	return &Studio{
		mastering: m,
		convert:   audio.ConvertFrequency,
		validate:  audio.Validate,
		store:     store,
	}
}

// WithConverter swaps the ffmpeg conversion, mainly for tests.
func (s *Studio) WithConverter(fn ConvertFunc) *Studio {
	s.convert = fn
	return s
}

// WithValidator swaps the ffprobe integrity check.
func (s *Studio) WithValidator(fn ValidateFunc) *Studio {
	s.validate = fn
	return s
}

// Report summarises a batch; per-file failures do not abort the batch.
type Report struct {
	Dir     string
	Outputs []string
	Failed  []string
}

func (r *Report) fail(path string) {
	r.Failed = append(r.Failed, filepath.Base(path))
}

// listAudio returns the files in dir accepted by match, sorted by name.
func listAudio(dir string, match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("studio: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("studio: no audio files found in %s", dir)
	}
	return files, nil
}

func splitExt(path string) (string, string) {
	ext := filepath.Ext(path)
	return filepath.Base(path[:len(path)-len(ext)]), ext
}
