package studio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"focus-arc/internal/album"
	"focus-arc/internal/metadata"
	"focus-arc/internal/metrics"
	"focus-arc/internal/storage"
	"focus-arc/internal/utils"
)

var ErrAlreadyPublished = errors.New("album already published")

func isTaggable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".flac":
		return true
	}
	return false
}

func isPublishable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3", ".wav", ".flac":
		return true
	}
	return false
}

// StampAlbum tags the files in dir with the album's arc, pairing files in
// name order with tracks in arc order.
func StampAlbum(dir string, a *album.Album) (*Report, error) {
	files, err := listAudio(dir, isTaggable)
	if err != nil {
		return nil, err
	}
	if len(files) != len(a.Arc) {
		log.Printf("⚠️ %s holds %d taggable files for a %d-track arc; extra files are left alone", dir, len(files), len(a.Arc))
	}

	report := &Report{Dir: dir}
	for i, path := range files {
		if i >= len(a.Arc) {
			break
		}
		tags := metadata.ArcTags(a.Arc[i], a.TrackTitle(i), a.Name, a.TotalTracks)

		done := metrics.Observe(metrics.StageStamp)
		err := metadata.Stamp(path, tags)
		done(err)
		if err != nil {
			log.Printf("❌ Tagging failed for %s: %v", filepath.Base(path), err)
			report.fail(path)
			continue
		}
		report.Outputs = append(report.Outputs, path)
	}
	return report, nil
}

// PublishKey is "<slug>/<NN>-<Title><ext>".
func PublishKey(slug string, index int, title, path string) string {
	return fmt.Sprintf("%s/%02d-%s%s", slug, index+1, utils.Sanitize(title, "Track"), strings.ToLower(filepath.Ext(path)))
}

// Publish uploads the finished tracks and the album summary under the
// album's slug. It refuses to overwrite an existing release unless force is
// set; a forced publish removes objects the new release no longer contains.
func (s *Studio) Publish(ctx context.Context, dir string, a *album.Album, force bool) (*Report, error) {
	prefix := a.Slug + "/"
	published, err := s.store.IsPublished(prefix)
	if err != nil {
		return nil, fmt.Errorf("studio: publish: %w", err)
	}
	if published && !force {
		return nil, fmt.Errorf("studio: %w: %s", ErrAlreadyPublished, s.store.AudioLocation(prefix))
	}

	var previous []string
	if published {
		if previous, err = s.store.ListAudio(prefix); err != nil {
			return nil, fmt.Errorf("studio: publish: %w", err)
		}
	}

	files, err := listAudio(dir, isPublishable)
	if err != nil {
		return nil, err
	}

	report := &Report{Dir: s.store.AudioLocation(prefix)}
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.validate(ctx, path); err != nil {
			log.Printf("❌ Skipping corrupted file %s: %v", filepath.Base(path), err)
			report.fail(path)
			continue
		}
		key := PublishKey(a.Slug, i, a.TrackTitle(i), path)
		if err := s.uploadFile(key, path); err != nil {
			log.Printf("❌ Upload failed for %s: %v", filepath.Base(path), err)
			report.fail(path)
			continue
		}
		log.Printf("☁️ Published %s", s.store.AudioLocation(key))
		report.Outputs = append(report.Outputs, key)
	}

	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return report, fmt.Errorf("studio: publish: %w", err)
	}
	summaryKey := prefix + "album.json"
	done := metrics.Observe(metrics.StagePublish)
	err = s.store.UploadAudio(summaryKey, bytes.NewReader(data), "application/json")
	done(err)
	if err != nil {
		return report, fmt.Errorf("studio: publish summary: %w", err)
	}
	report.Outputs = append(report.Outputs, summaryKey)

	s.prune(previous, report.Outputs)
	return report, nil
}

// prune deletes keys of an earlier release that the new one did not write.
func (s *Studio) prune(previous, current []string) {
	keep := make(map[string]bool, len(current))
	for _, k := range current {
		keep[k] = true
	}
	for _, k := range previous {
		if keep[k] {
			continue
		}
		if err := s.store.DeleteAudio(k); err != nil {
			log.Printf("⚠️ Could not remove stale %s: %v", s.store.AudioLocation(k), err)
			continue
		}
		log.Printf("🧹 Removed stale %s", s.store.AudioLocation(k))
	}
}

func (s *Studio) uploadFile(key, path string) (err error) {
	done := metrics.Observe(metrics.StagePublish)
	defer func() { done(err) }()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return s.store.UploadAudio(key, f, storage.ContentType(path))
}
