package enrich

import (
	"context"
	"encoding/json"
	"fmt"

	"focus-arc/internal/audio"
)

type BPMRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Insights describe the character of a source recording.
type Insights struct {
	Mood              []string `json:"mood"`
	Style             string   `json:"style"`
	Instruments       []string `json:"instruments"`
	Atmosphere        string   `json:"atmosphere"`
	SuggestedBPMRange BPMRange `json:"suggestedBPMRange"`
}

const moodPrompt = `Analyze this audio sample for music production. The basic analysis shows:
- Tempo: %d BPM
- Key: %s
- Energy level: %.2f

Please provide:
1. Mood descriptors (3-5 words like: calm, meditative, flowing, energetic, grounding)
2. Musical style (be specific: "ambient handpan meditation", "rhythmic percussion focus music", etc.)
3. Detected instruments (handpan, flute, percussion, pads, drone, etc.)
4. Overall atmosphere (1 sentence)
5. Suggested BPM range for similar music (min and max)

Respond in JSON format:
{
  "mood": ["word1", "word2", "word3"],
  "style": "style description",
  "instruments": ["instrument1", "instrument2"],
  "atmosphere": "one sentence description",
  "suggestedBPMRange": { "min": 60, "max": 75 }
}`

func (c *Client) AnalyzeMood(ctx context.Context, a *audio.Analysis) (Insights, error) {
	text, err := c.generate(ctx, fmt.Sprintf(moodPrompt, a.Tempo, a.Key, a.Energy))
	if err != nil {
		return Insights{}, err
	}

	raw, err := extractJSON(text)
	if err != nil {
		return Insights{}, err
	}

	var insights Insights
	if err := json.Unmarshal([]byte(raw), &insights); err != nil {
		return Insights{}, fmt.Errorf("gemini: decode insights: %w", err)
	}
	if len(insights.Mood) == 0 {
		return Insights{}, fmt.Errorf("gemini: insights without mood")
	}
	return insights, nil
}

// FallbackInsights is used when no model answer is available. A zero tempo
// yields the default focus range.
func FallbackInsights(tempo int) Insights {
	bpm := BPMRange{Min: 60, Max: 85}
	if tempo > 0 {
		bpm = BPMRange{Min: tempo - 10, Max: tempo + 10}
	}
	return Insights{
		Mood:              []string{"focused", "meditative", "calm"},
		Style:             "handpan meditation",
		Instruments:       []string{"handpan", "ambient pads"},
		Atmosphere:        "peaceful and centering",
		SuggestedBPMRange: bpm,
	}
}
