package arc

import (
	"fmt"
	"strings"
)

// Phase is one stage of a focus session.
type Phase int

const (
	Arrival Phase = iota
	Engage
	Flow
	LockIn
	EaseOff
	Landing
)

type phaseMeta struct {
	name        string
	emoji       string
	description string
}

var phases = [...]phaseMeta{
	Arrival: {"arrival", "🌅", "Grounding into stillness, releasing external noise, settling the nervous system"},
	Engage:  {"engage", "🎯", "Gentle activation, curiosity building, attention coming online"},
	Flow:    {"flow", "🌊", "Deep immersion, effortless focus, time disappears"},
	LockIn:  {"lockin", "🔥", "Peak performance, maximum clarity, sustained concentration"},
	EaseOff: {"easeoff", "🌙", "Graceful descent, maintaining quality while releasing intensity"},
	Landing: {"landing", "✨", "Integration, completion, rest and reflection"},
}

// Phases lists every phase in session order.
func Phases() []Phase {
	return []Phase{Arrival, Engage, Flow, LockIn, EaseOff, Landing}
}

func (p Phase) valid() bool { return p >= 0 && int(p) < len(phases) }

func (p Phase) String() string {
	if !p.valid() {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phases[p].name
}

func (p Phase) Emoji() string {
	if !p.valid() {
		return ""
	}
	return phases[p].emoji
}

func (p Phase) Description() string {
	if !p.valid() {
		return ""
	}
	return phases[p].description
}

func (p Phase) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("unknown phase %d", int(p))
	}
	return []byte(phases[p].name), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, m := range phases {
		if m.name == s {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", s)
}

// Energy is the intensity label attached to a phase.
type Energy int

const (
	Low Energy = iota
	Building
	Peak
	Sustained
	Descending
)

var energyNames = [...]string{
	Low:        "low",
	Building:   "building",
	Peak:       "peak",
	Sustained:  "sustained",
	Descending: "descending",
}

func (e Energy) String() string {
	if e < 0 || int(e) >= len(energyNames) {
		return fmt.Sprintf("Energy(%d)", int(e))
	}
	return energyNames[e]
}

func (e Energy) MarshalText() ([]byte, error) {
	if e < 0 || int(e) >= len(energyNames) {
		return nil, fmt.Errorf("unknown energy %d", int(e))
	}
	return []byte(energyNames[e]), nil
}

func (e *Energy) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, name := range energyNames {
		if name == s {
			*e = Energy(i)
			return nil
		}
	}
	return fmt.Errorf("unknown energy %q", s)
}

type PhaseInfo struct {
	Phase   Phase
	Energy  Energy
	Purpose string
}

// phaseMap is tuned for a ten-track session; index 0 is track 1.
var phaseMap = [SupportedTracks]PhaseInfo{
	{Arrival, Low, "Settle nervous system, create container for focus"},
	{Arrival, Low, "Ground into present moment, release distractions"},
	{Engage, Building, "Activate attention, build gentle momentum"},
	{Engage, Building, "Curiosity and interest, invite deeper engagement"},
	{Flow, Peak, "Enter deep work state, effortless focus"},
	{Flow, Peak, "Sustained immersion, optimal performance"},
	{LockIn, Sustained, "Peak concentration, maximum cognitive capacity"},
	{EaseOff, Descending, "Graceful transition, maintain quality"},
	{EaseOff, Descending, "Gentle release, integration"},
	{Landing, Low, "Complete the cycle, rest and reflect"},
}

// PhaseForTrack looks up track index 1..10. ok is false outside that range.
func PhaseForTrack(index int) (PhaseInfo, bool) {
	if index < 1 || index > len(phaseMap) {
		return PhaseInfo{}, false
	}
	return phaseMap[index-1], true
}
