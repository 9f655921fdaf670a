// Package prompt turns planned tracks into copy-paste prompts for the
// music generation service.
package prompt

import (
	"fmt"
	"strings"

	"focus-arc/internal/arc"
	"focus-arc/internal/audio"
)

const (
	styleTags      = "meditation, ambient, handpan, focus music, deep work, instrumental"
	excludeStyles  = "vocals, singing, lyrics, drums, heavy percussion, bass drops, aggressive sounds"
	styleInfluence = 75
	moodCount      = 3
)

var moodMap = map[arc.Phase][]string{
	arc.Arrival: {"calm", "grounding", "spacious", "peaceful", "gentle", "serene", "settling", "soft", "mindful", "present"},
	arc.Engage:  {"curious", "inviting", "building", "present", "flowing", "attentive", "awakening", "gentle energy", "focused", "clear"},
	arc.Flow:    {"immersive", "effortless", "expansive", "deep", "concentrated", "fluid", "timeless", "absorbed", "rhythmic", "meditative"},
	arc.LockIn:  {"powerful", "peak", "concentrated", "dynamic", "sustained", "intense", "crystalline", "driving", "purposeful", "locked in"},
	arc.EaseOff: {"releasing", "softening", "graceful", "reflective", "integrating", "gentle descent", "satisfied", "easing", "transitioning", "winding down"},
	arc.Landing: {"complete", "restful", "grounded", "peaceful", "contemplative", "resolved", "still", "closing", "integrated", "whole"},
}

var instrumentLayers = map[arc.Phase]string{
	arc.Arrival: "soft handpan, ambient pads, subtle nature sounds",
	arc.Engage:  "handpan melody, light percussion, atmospheric layers",
	arc.Flow:    "rich handpan, rhythmic elements, ambient textures, deep bass",
	arc.LockIn:  "dynamic handpan, driving percussion, layered soundscape",
	arc.EaseOff: "melodic handpan, fading rhythm, soft pads returning",
	arc.Landing: "gentle handpan, ambient drones, nature sounds, space",
}

// Weirdness stays low so the output remains coherent enough to focus to.
var weirdness = map[arc.Phase]int{
	arc.Arrival: 5,
	arc.Engage:  10,
	arc.Flow:    15,
	arc.LockIn:  20,
	arc.EaseOff: 12,
	arc.Landing: 5,
}

type Metadata struct {
	Phase          arc.Phase         `json:"phase"`
	Energy         arc.Energy        `json:"energy"`
	Transition     audio.Transition  `json:"transition"`
	TransitionFrom *audio.CamelotKey `json:"transitionFrom,omitempty"`
	Purpose        string            `json:"purpose"`
}

type Prompt struct {
	TrackNumber    int              `json:"trackNumber"`
	Title          string           `json:"title"`
	Duration       string           `json:"duration"`
	Tempo          int              `json:"tempo"`
	Key            string           `json:"key"`
	CamelotKey     audio.CamelotKey `json:"camelotKey"`
	Text           string           `json:"prompt"`
	Lyrics         string           `json:"lyrics"` // generation form field; empty for instrumental tracks
	Style          string           `json:"style"`
	Instrumental   bool             `json:"instrumental"`
	ExcludeStyles  string           `json:"excludeStyles"`
	Weirdness      int              `json:"weirdness"`
	StyleInfluence int              `json:"styleInfluence"`
	Metadata       Metadata         `json:"_metadata"`
}

// FormatDuration renders seconds as m:ss.
func FormatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func selectMoods(p arc.Phase) string {
	moods := moodMap[p]
	if len(moods) > moodCount {
		moods = moods[:moodCount]
	}
	return strings.Join(moods, ", ")
}

// Generate builds the prompt for one track. An empty name falls back to
// "Track N".
func Generate(track arc.Track, name string) Prompt {
	return generate(track, name, nil)
}

func generate(track arc.Track, name string, from *audio.CamelotKey) Prompt {
	title := name
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Track %d", track.Number)
	}

	text := strings.Join([]string{
		fmt.Sprintf("[%s] [%d BPM]", track.TargetKey, track.TargetBPM),
		selectMoods(track.Phase) + " handpan meditation music,",
		instrumentLayers[track.Phase] + ",",
		"deep focus music, ambient soundscape,",
		"seamless loop structure, no vocals, instrumental only,",
		fmt.Sprintf("smooth harmonic %s transition,", track.Transition),
		"professional production, high quality mixing",
	}, "\n")

	return Prompt{
		TrackNumber:    track.Number,
		Title:          title,
		Duration:       FormatDuration(track.Duration),
		Tempo:          track.TargetBPM,
		Key:            track.MusicalKey,
		CamelotKey:     track.TargetKey,
		Text:           text,
		Lyrics:         "",
		Style:          styleTags,
		Instrumental:   true,
		ExcludeStyles:  excludeStyles,
		Weirdness:      weirdness[track.Phase],
		StyleInfluence: styleInfluence,
		Metadata: Metadata{
			Phase:          track.Phase,
			Energy:         track.Energy,
			Transition:     track.Transition,
			TransitionFrom: from,
			Purpose:        track.Purpose(),
		},
	}
}

// GenerateAlbum builds prompts in track order. names is optional; missing or
// blank entries fall back to numbered titles.
func GenerateAlbum(tracks []arc.Track, names []string) []Prompt {
	prompts := make([]Prompt, len(tracks))
	for i, t := range tracks {
		var name string
		if i < len(names) {
			name = names[i]
		}
		var from *audio.CamelotKey
		if i > 0 {
			k := tracks[i-1].TargetKey
			from = &k
		}
		prompts[i] = generate(t, name, from)
	}
	return prompts
}
