// Package arc lays out a focus album: phase, tempo and key for every track.
package arc

import (
	"errors"
	"fmt"
	"math"

	"focus-arc/internal/audio"
)

// SupportedTracks is the only album length the phase table and tempo curve
// are tuned for.
const SupportedTracks = 10

var (
	ErrUnsupportedTrackCount = errors.New("unsupported track count")
	ErrInvalidStartKey       = errors.New("invalid start key")
)

// Config describes one planning run. Zero fields take the defaults.
type Config struct {
	TotalTracks        int                `json:"totalTracks"`
	TotalDuration      int                `json:"totalDuration"` // seconds
	StartBPM           float64            `json:"startBPM"`
	PeakBPM            float64            `json:"peakBPM"`
	EndBPM             float64            `json:"endBPM"`
	StartKey           audio.CamelotKey   `json:"startKey"`
	AllowedTransitions []audio.Transition `json:"allowedTransitions"`
}

func DefaultConfig() Config {
	return Config{
		TotalTracks:        SupportedTracks,
		TotalDuration:      1500,
		StartBPM:           60,
		PeakBPM:            85,
		EndBPM:             60,
		StartKey:           audio.CamelotKey{Num: 1, Letter: audio.Minor},
		AllowedTransitions: []audio.Transition{audio.PerfectFifth, audio.Relative},
	}
}

// WithDefaults fills every unset field from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.TotalTracks == 0 {
		c.TotalTracks = d.TotalTracks
	}
	if c.TotalDuration == 0 {
		c.TotalDuration = d.TotalDuration
	}
	if c.StartBPM == 0 {
		c.StartBPM = d.StartBPM
	}
	if c.PeakBPM == 0 {
		c.PeakBPM = d.PeakBPM
	}
	if c.EndBPM == 0 {
		c.EndBPM = d.EndBPM
	}
	if c.StartKey == (audio.CamelotKey{}) {
		c.StartKey = d.StartKey
	}
	if len(c.AllowedTransitions) == 0 {
		c.AllowedTransitions = d.AllowedTransitions
	}
	return c
}

// Validate checks the caller-side preconditions of Compose.
func (c Config) Validate() error {
	if c.TotalTracks != SupportedTracks {
		return fmt.Errorf("%w: %d (only %d is supported)", ErrUnsupportedTrackCount, c.TotalTracks, SupportedTracks)
	}
	if !c.StartKey.Valid() {
		return fmt.Errorf("%w: %d%c", ErrInvalidStartKey, c.StartKey.Num, c.StartKey.Letter)
	}
	return nil
}

// Track is one planned entry of the arc.
type Track struct {
	Number     int              `json:"number"`
	Phase      Phase            `json:"phase"`
	TargetBPM  int              `json:"targetBPM"`
	TargetKey  audio.CamelotKey `json:"targetKey"`
	MusicalKey string           `json:"musicalKey"`
	Energy     Energy           `json:"energy"`
	Transition audio.Transition `json:"transition"`
	Duration   int              `json:"duration"` // seconds
}

// Purpose returns the fixed purpose line for the track's slot.
func (t Track) Purpose() string {
	info, _ := PhaseForTrack(t.Number)
	return info.Purpose
}

// Composer combines the tempo curve with a harmonic walk.
type Composer struct {
	planner *audio.Planner
}

func NewComposer(rng audio.Rand) *Composer {
	return &Composer{planner: audio.NewPlanner(rng)}
}

// Compose plans the whole arc. Tracks come back in ascending order; each
// transition is measured against the previous track's key.
func (c *Composer) Compose(cfg Config) ([]Track, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	keys := c.planner.Plan(cfg.StartKey, cfg.TotalTracks, cfg.AllowedTransitions)

	// Remainder seconds are dropped.
	duration := cfg.TotalDuration / cfg.TotalTracks

	tracks := make([]Track, cfg.TotalTracks)
	for i := range tracks {
		number := i + 1
		info, _ := PhaseForTrack(number)

		key := keys[i]
		prev := key
		if i > 0 {
			prev = keys[i-1]
		}

		tracks[i] = Track{
			Number:     number,
			Phase:      info.Phase,
			TargetBPM:  int(math.Round(TempoForTrack(number, cfg.StartBPM, cfg.PeakBPM, cfg.EndBPM))),
			TargetKey:  key,
			MusicalKey: audio.MusicalName(key),
			Energy:     info.Energy,
			Transition: audio.Classify(prev, key),
			Duration:   duration,
		}
	}

	return tracks, nil
}

// Summary reports total length and top tempo of an arc.
func Summary(tracks []Track) (totalSeconds, peakBPM int) {
	for _, t := range tracks {
		totalSeconds += t.Duration
		if t.TargetBPM > peakBPM {
			peakBPM = t.TargetBPM
		}
	}
	return totalSeconds, peakBPM
}
