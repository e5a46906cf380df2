// Package evolution implements the gene selection, prompt synthesis, and
// feedback-driven mutation loop on top of the gene store.
package evolution

import (
	"math/rand"
	"sync"
	"time"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/store"
)

// Selector picks one gene per slot with probability proportional to fitness.
type Selector struct {
	store *store.Store

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector. A non-zero seed makes selection fully
// reproducible, which the tests rely on; zero seeds from the clock.
func NewSelector(s *store.Store, seed int64) *Selector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Selector{
		store: s,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// SelectBestGene returns a fitness-weighted random pick among the genes of
// the given type, or nil when none exist (callers handle slot omission).
// categoryFilter narrows domain-instruction genes by intent category; genes
// with no category stay eligible under any filter.
//
// When every eligible gene has zero fitness the pick falls back to uniform
// random, so freshly mutated genes that have not been re-scored are never
// locked out. Candidates are walked in insertion order, keeping ties
// reproducible under a fixed seed.
func (s *Selector) SelectBestGene(t domain.GeneType, categoryFilter string) *domain.Gene {
	candidates := s.eligible(t, categoryFilter)
	if len(candidates) == 0 {
		return nil
	}

	total := 0.0
	for _, g := range candidates {
		total += g.FitnessScore
	}

	s.mu.Lock()
	var chosen *domain.Gene
	if total <= 0 {
		chosen = candidates[s.rng.Intn(len(candidates))]
	} else {
		r := s.rng.Float64() * total
		cum := 0.0
		for _, g := range candidates {
			cum += g.FitnessScore
			if r < cum {
				chosen = g
				break
			}
		}
		if chosen == nil {
			// Float accumulation can land exactly on total.
			chosen = candidates[len(candidates)-1]
		}
	}
	s.mu.Unlock()

	s.store.IncrementUsage(chosen.ID)
	SelectionsTotal.WithLabelValues(string(t)).Inc()
	return chosen
}

func (s *Selector) eligible(t domain.GeneType, categoryFilter string) []*domain.Gene {
	genes := s.store.GenesForType(t)
	if categoryFilter == "" {
		return genes
	}
	out := genes[:0]
	for _, g := range genes {
		if g.Category == "" || g.Category == categoryFilter {
			out = append(out, g)
		}
	}
	return out
}
