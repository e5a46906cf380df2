package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/genepool/domain"
	"github.com/longregen/genepool/store"
)

func addGene(s *store.Store, t domain.GeneType, category, content string, fitness float64) *domain.Gene {
	return s.AddGene(&domain.Gene{Type: t, Category: category, Content: content, FitnessScore: fitness})
}

func TestSelectBestGeneEmptyPool(t *testing.T) {
	sel := NewSelector(store.New(), 1)
	assert.Nil(t, sel.SelectBestGene(domain.GeneTypePersona, ""))
}

func TestSelectBestGeneWeighting(t *testing.T) {
	s := store.New()
	strong := addGene(s, domain.GeneTypePersona, "", "strong", 0.9)
	weak := addGene(s, domain.GeneTypePersona, "", "weak", 0.1)

	sel := NewSelector(s, 42)

	const trials = 10000
	counts := map[string]int{}
	for i := 0; i < trials; i++ {
		g := sel.SelectBestGene(domain.GeneTypePersona, "")
		require.NotNil(t, g)
		counts[g.ID]++
	}

	strongShare := float64(counts[strong.ID]) / trials
	assert.InDelta(t, 0.9, strongShare, 0.05, "strong gene should win ~90%% of picks")
	assert.Greater(t, counts[weak.ID], 0, "weak gene must still be reachable")
}

func TestSelectBestGeneUniformFallback(t *testing.T) {
	s := store.New()
	a := addGene(s, domain.GeneTypePersona, "", "a", 0)
	b := addGene(s, domain.GeneTypePersona, "", "b", 0)

	sel := NewSelector(s, 7)

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		g := sel.SelectBestGene(domain.GeneTypePersona, "")
		require.NotNil(t, g)
		counts[g.ID]++
	}
	assert.Greater(t, counts[a.ID], 0)
	assert.Greater(t, counts[b.ID], 0)
}

func TestSelectBestGeneCategoryFilter(t *testing.T) {
	s := store.New()
	briefing := addGene(s, domain.GeneTypeDomainInstruction, "briefing", "briefing rules", 0.8)
	addGene(s, domain.GeneTypeDomainInstruction, "insight", "insight rules", 0.8)
	generic := addGene(s, domain.GeneTypeDomainInstruction, "", "generic rules", 0.8)

	sel := NewSelector(s, 3)

	seen := map[string]bool{}
	for i := 0; i < 500; i++ {
		g := sel.SelectBestGene(domain.GeneTypeDomainInstruction, "briefing")
		require.NotNil(t, g)
		seen[g.ID] = true
	}
	assert.True(t, seen[briefing.ID])
	assert.True(t, seen[generic.ID], "uncategorized genes are eligible under any filter")
	assert.Len(t, seen, 2, "other categories must never be picked")
}

func TestSelectBestGeneIncrementsUsage(t *testing.T) {
	s := store.New()
	g := addGene(s, domain.GeneTypePersona, "", "x", 0.5)

	sel := NewSelector(s, 1)
	for i := 0; i < 3; i++ {
		sel.SelectBestGene(domain.GeneTypePersona, "")
	}

	got, err := s.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.UsageCount)
}

func TestSelectBestGeneDeterministicWithSeed(t *testing.T) {
	build := func() *Selector {
		s := store.New()
		s.Replace([]*domain.Gene{
			{ID: "gene_1", Type: domain.GeneTypePersona, FitnessScore: 0.4},
			{ID: "gene_2", Type: domain.GeneTypePersona, FitnessScore: 0.6},
			{ID: "gene_3", Type: domain.GeneTypePersona, FitnessScore: 0.2},
		})
		return NewSelector(s, 99)
	}

	first := build()
	second := build()
	for i := 0; i < 100; i++ {
		a := first.SelectBestGene(domain.GeneTypePersona, "")
		b := second.SelectBestGene(domain.GeneTypePersona, "")
		require.Equal(t, a.ID, b.ID, "same seed must give same pick sequence")
	}
}
