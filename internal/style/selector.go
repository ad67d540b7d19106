package style

import (
	"math/rand/v2"
	"strings"
	"sync"
)

// Selector picks styles. The zero value is not usable; call NewSelector.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector returns a Selector drawing from rng. A nil rng uses a
// randomly seeded source.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{rng: rng}
}

// Random samples uniformly among all styles minus exclude. When the
// exclusion would leave nothing, it is ignored.
func (s *Selector) Random(exclude ...Style) Style {
	return s.Pick(All(), exclude...)
}

// Pick is Random restricted to candidates. An empty candidate list means
// all styles.
func (s *Selector) Pick(candidates []Style, exclude ...Style) Style {
	if len(candidates) == 0 {
		candidates = All()
	}
	skip := make(map[Style]bool, len(exclude))
	for _, e := range exclude {
		skip[e] = true
	}

	var pool []Style
	for _, st := range candidates {
		if !skip[st] {
			pool = append(pool, st)
		}
	}
	if len(pool) == 0 {
		pool = candidates
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return pool[s.rng.IntN(len(pool))]
}

// VariabilityScore measures lexical variety across statements: distinct
// lower-case words over the mean statement length, capped at 1. Fewer than
// two statements score 1.
//
// The denominator is the mean length, not the total word count, so repeated
// identical statements score 1/n while any two statements that differ by a
// single word already reach the cap. The score separates duplicates from
// variants; it does not grade how different two variants are.
func VariabilityScore(statements []string) float64 {
	if len(statements) < 2 {
		return 1.0
	}

	distinct := make(map[string]struct{})
	total := 0
	for _, st := range statements {
		words := strings.Fields(strings.ToLower(st))
		total += len(words)
		for _, w := range words {
			distinct[w] = struct{}{}
		}
	}
	if total == 0 {
		return 0
	}

	mean := float64(total) / float64(len(statements))
	return min(float64(len(distinct))/mean, 1.0)
}
