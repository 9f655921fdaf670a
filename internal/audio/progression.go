package audio

import (
	"math/rand"
	"time"
)

// Rand is the single source of randomness in planning. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Planner walks the wheel one compatible step at a time.
type Planner struct {
	rng Rand
}

// NewPlanner uses rng for the per-step choice. A nil rng gets a time-seeded source.
func NewPlanner(rng Rand) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{rng: rng}
}

// Plan returns steps keys starting at start. Each step picks uniformly among
// the neighbours reached by a preferred transition and falls back to the
// relative key when none qualifies.
func (p *Planner) Plan(start CamelotKey, steps int, preferred []Transition) []CamelotKey {
	if steps < 1 {
		return []CamelotKey{}
	}
	if len(preferred) == 0 {
		preferred = DefaultTransitions
	}

	progression := make([]CamelotKey, 0, steps)
	progression = append(progression, start)
	current := start

	for i := 1; i < steps; i++ {
		candidates := Neighbors(current)

		var matches []CamelotKey
		for _, c := range candidates {
			if containsTransition(preferred, Classify(current, c)) {
				matches = append(matches, c)
			}
		}

		next := candidates[1]
		if len(matches) > 0 {
			next = matches[p.rng.Intn(len(matches))]
		}

		progression = append(progression, next)
		current = next
	}

	return progression
}
