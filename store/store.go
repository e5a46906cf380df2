// Package store holds the gene pool: a type-indexed, engine-owned collection
// of genes. All mutation goes through the store's own operations so concurrent
// readers never observe a half-updated gene.
package store

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/id"
)

type Store struct {
	mu     sync.RWMutex
	byType map[domain.GeneType][]*domain.Gene
	byID   map[string]*domain.Gene

	// dirty marks unflushed changes; generation counts every mutation so a
	// flush can detect writes that landed while it was persisting.
	dirty      bool
	generation uint64
}

func New() *Store {
	return &Store{
		byType: make(map[domain.GeneType][]*domain.Gene),
		byID:   make(map[string]*domain.Gene),
	}
}

// AddGene inserts a gene, assigning an ID if none is set and defaulting the
// version and creation time. The stored copy (with its assigned ID) is
// returned; the caller's struct is not retained.
func (s *Store) AddGene(g *domain.Gene) *domain.Gene {
	stored := g.Clone()
	if stored.ID == "" {
		stored.ID = id.NewGene()
	}
	if stored.Version == 0 {
		stored.Version = 1
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.FitnessScore = domain.ClampFitness(stored.FitnessScore)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType[stored.Type] = append(s.byType[stored.Type], stored)
	s.byID[stored.ID] = stored
	s.markDirty()
	return stored.Clone()
}

// Get returns a copy of the gene, or domain.ErrNotFound.
func (s *Store) Get(geneID string) (*domain.Gene, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.byID[geneID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return g.Clone(), nil
}

// GenesForType returns a snapshot of the genes of the given type in insertion
// order. An empty slice means no genes exist for that type; not an error.
func (s *Store) GenesForType(t domain.GeneType) []*domain.Gene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	genes := s.byType[t]
	out := make([]*domain.Gene, len(genes))
	for i, g := range genes {
		out[i] = g.Clone()
	}
	return out
}

// AllGenes returns a snapshot of the whole pool, grouped by type in the
// canonical type order, insertion order within each type.
func (s *Store) AllGenes() []*domain.Gene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Gene, 0, len(s.byID))
	for _, t := range domain.AllGeneTypes {
		for _, g := range s.byType[t] {
			out = append(out, g.Clone())
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// AdjustFitness adds delta to the gene's fitness, clamped into [0, 1].
// Unknown IDs are a logged no-op: feedback about a gene that no longer exists
// must not crash the pipeline.
func (s *Store) AdjustFitness(geneID string, delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byID[geneID]
	if !ok {
		slog.Warn("fitness adjustment for unknown gene", "gene_id", geneID)
		return
	}
	g.FitnessScore = domain.ClampFitness(g.FitnessScore + delta)
	s.markDirty()
}

func (s *Store) RecordPositiveReaction(geneID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byID[geneID]
	if !ok {
		slog.Warn("positive reaction for unknown gene", "gene_id", geneID)
		return
	}
	g.PositiveReactions++
	s.markDirty()
}

func (s *Store) RecordNegativeReaction(geneID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byID[geneID]
	if !ok {
		slog.Warn("negative reaction for unknown gene", "gene_id", geneID)
		return
	}
	g.NegativeReactions++
	s.markDirty()
}

// IncrementUsage records that the gene was selected. Usage only increases.
func (s *Store) IncrementUsage(geneID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byID[geneID]
	if !ok {
		slog.Warn("usage increment for unknown gene", "gene_id", geneID)
		return
	}
	g.UsageCount++
	s.markDirty()
}

// ApplyReaction applies one feedback event to one gene as a single atomic
// unit: the fitness delta and the reaction counter move together under one
// lock acquisition, so two concurrent feedback events cannot interleave
// between them. Returns domain.ErrNotFound for genes that no longer exist.
func (s *Store) ApplyReaction(geneID string, delta float64, positive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.byID[geneID]
	if !ok {
		return fmt.Errorf("reaction for gene %s: %w", geneID, domain.ErrNotFound)
	}
	g.FitnessScore = domain.ClampFitness(g.FitnessScore + delta)
	if positive {
		g.PositiveReactions++
	} else {
		g.NegativeReactions++
	}
	s.markDirty()
	return nil
}

// Replace swaps the whole pool, used when loading a persisted snapshot at
// startup. Insertion order of the given slice is preserved per type.
func (s *Store) Replace(genes []*domain.Gene) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byType = make(map[domain.GeneType][]*domain.Gene)
	s.byID = make(map[string]*domain.Gene)
	for _, g := range genes {
		stored := g.Clone()
		s.byType[stored.Type] = append(s.byType[stored.Type], stored)
		s.byID[stored.ID] = stored
	}
	s.dirty = false
	s.generation++
}

// markDirty records a mutation. Callers hold the write lock.
func (s *Store) markDirty() {
	s.dirty = true
	s.generation++
}

// Snapshot returns the whole pool in canonical order together with the
// mutation generation it reflects, so a flush can later tell whether any
// write landed while it was persisting.
func (s *Store) Snapshot() ([]*domain.Gene, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Gene, 0, len(s.byID))
	for _, t := range domain.AllGeneTypes {
		for _, g := range s.byType[t] {
			out = append(out, g.Clone())
		}
	}
	return out, s.generation
}

// ClearDirtyAt clears the dirty flag only when no mutation landed after the
// given generation, and reports whether it did. A write racing a flush keeps
// the pool dirty so the next flush picks it up instead of losing it.
func (s *Store) ClearDirtyAt(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	s.dirty = false
	return true
}

// Dirty reports whether the pool changed since the last ClearDirty, so the
// checkpointer can skip clean flushes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

func (s *Store) ClearDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty = false
}
