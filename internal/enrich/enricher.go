package enrich

import (
	"context"
	"log"

	"focus-arc/internal/arc"
	"focus-arc/internal/audio"
)

// Enricher never fails: any model error degrades to the fixed fallbacks.
type Enricher struct {
	client *Client
}

// NewEnricher returns an Enricher that stays offline when client is nil.
func NewEnricher(client *Client) *Enricher {
	return &Enricher{client: client}
}

func (e *Enricher) Online() bool {
	return e.client != nil && e.client.apiKey != ""
}

func (e *Enricher) Insights(ctx context.Context, a *audio.Analysis) Insights {
	if a == nil {
		return FallbackInsights(0)
	}
	if !e.Online() {
		log.Println("⚠️ GEMINI_API_KEY not set, using basic analysis only")
		return FallbackInsights(a.Tempo)
	}

	insights, err := e.client.AnalyzeMood(ctx, a)
	if err != nil {
		log.Printf("⚠️ Mood analysis failed, using fallback: %v", err)
		return FallbackInsights(a.Tempo)
	}
	return insights
}

func (e *Enricher) Names(ctx context.Context, phases []arc.Phase, inspiration string) Names {
	if !e.Online() {
		return FallbackNames(phases)
	}

	names, err := e.client.CreativeNames(ctx, phases, inspiration)
	if err != nil {
		log.Printf("⚠️ Creative naming failed, using fallback: %v", err)
		return FallbackNames(phases)
	}
	return names
}
