package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"focus-arc/internal/arc"
)

// Names is an album title plus one title per track.
type Names struct {
	Album     string   `json:"album"`
	Tracks    []string `json:"tracks"`
	Rationale string   `json:"rationale,omitempty"`
}

var namingImagery = map[arc.Phase]string{
	arc.Arrival: "grounding into stillness, settling the nervous system",
	arc.Engage:  "gentle activation, curiosity building",
	arc.Flow:    "deep immersion, effortless focus",
	arc.LockIn:  "peak concentration, sustained clarity",
	arc.EaseOff: "graceful descent, gentle release",
	arc.Landing: "integration, completion, rest",
}

func namingPrompt(phases []arc.Phase, inspiration string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a creative musician crafting a focus music album with %d tracks.\n\n", len(phases))
	b.WriteString("The album follows this emotional arc:\n")
	for i, p := range phases {
		fmt.Fprintf(&b, "Track %d (%s): %s\n", i+1, p, namingImagery[p])
	}
	b.WriteString("\n")
	if inspiration != "" {
		fmt.Fprintf(&b, "Musical inspiration: %s\n\n", inspiration)
	}
	fmt.Fprintf(&b, `Create:
1. An evocative album name (2-4 words, poetic, memorable)
2. Individual track titles that flow together as a narrative journey

Guidelines:
- Album name should evoke deep work, focus, or flow states
- Track names should be poetic, not clinical (avoid "Track 1", "Opening", etc.)
- Use imagery: nature, light, water, breath, space, time
- Create a narrative arc across the %d tracks
- Keep each track name under 6 words

Respond in JSON:
{
  "album": "Album Title Here",
  "tracks": ["Track 1 Name", "Track 2 Name"],
  "rationale": "Brief explanation of the naming concept"
}`, len(phases))
	return b.String()
}

func (c *Client) CreativeNames(ctx context.Context, phases []arc.Phase, inspiration string) (Names, error) {
	text, err := c.generate(ctx, namingPrompt(phases, inspiration))
	if err != nil {
		return Names{}, err
	}

	raw, err := extractJSON(text)
	if err != nil {
		return Names{}, err
	}

	var names Names
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return Names{}, fmt.Errorf("gemini: decode names: %w", err)
	}
	if names.Album == "" || len(names.Tracks) != len(phases) {
		return Names{}, fmt.Errorf("gemini: expected album and %d track names, got %q with %d", len(phases), names.Album, len(names.Tracks))
	}
	return names, nil
}

const fallbackAlbum = "Deep Work Journey"

var poeticNames = []string{
	"First Light",
	"Settling In",
	"Opening the Gate",
	"Building Momentum",
	"The Deep Waters",
	"Flow State",
	"The Peak",
	"Gentle Descent",
	"Coming Home",
	"Integration",
}

func FallbackNames(phases []arc.Phase) Names {
	n := len(phases)
	if n > len(poeticNames) {
		n = len(poeticNames)
	}
	tracks := make([]string, n)
	copy(tracks, poeticNames)
	return Names{Album: fallbackAlbum, Tracks: tracks}
}
