package audio

import (
	"fmt"
	"strings"
)

// Transition names the harmonic move between two consecutive keys.
type Transition int

const (
	SameKey Transition = iota
	Relative
	PerfectFifth
	EnergyBoost
	EnergyDrop
)

var transitionNames = [...]string{
	SameKey:      "same-key",
	Relative:     "relative",
	PerfectFifth: "perfect-fifth",
	EnergyBoost:  "energy-boost",
	EnergyDrop:   "energy-drop",
}

// DefaultTransitions is what the planner prefers when nothing else is asked for.
var DefaultTransitions = []Transition{PerfectFifth, Relative}

func (t Transition) String() string {
	if t < 0 || int(t) >= len(transitionNames) {
		return fmt.Sprintf("Transition(%d)", int(t))
	}
	return transitionNames[t]
}

func (t Transition) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(transitionNames) {
		return nil, fmt.Errorf("unknown transition %d", int(t))
	}
	return []byte(transitionNames[t]), nil
}

func (t *Transition) UnmarshalText(b []byte) error {
	parsed, err := ParseTransition(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseTransition(s string) (Transition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range transitionNames {
		if name == s {
			return Transition(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transition %q", s)
}

// Classify labels the move from -> to.
//
// Number distances other than 1, 5, 7 and 11 are reported as perfect-fifth.
// Prompt text downstream relies on that, so it stays.
func Classify(from, to CamelotKey) Transition {
	if from == to {
		return SameKey
	}
	if from.Num == to.Num && from.Letter != to.Letter {
		return Relative
	}

	diff := (to.Num - from.Num + 12) % 12
	switch diff {
	case 1, 11:
		return PerfectFifth
	case 7:
		return EnergyBoost
	case 5:
		return EnergyDrop
	default:
		return PerfectFifth
	}
}

func containsTransition(list []Transition, t Transition) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}
