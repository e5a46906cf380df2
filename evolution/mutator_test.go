package evolution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/genepool/domain"
)

func TestMutateLineage(t *testing.T) {
	m := NewMutator()
	source := &domain.Gene{
		ID:                 "gene_src",
		Type:               domain.GeneTypeEmotionalTone,
		Category:           "briefing",
		Content:            "Keep the tone warm but businesslike.",
		Version:            3,
		FitnessScore:       0.21,
		PositiveReactions:  2,
		NegativeReactions:  11,
		UsageCount:         30,
		EvolutionDirective: "soften further if users react badly",
	}

	child, err := m.Mutate(source, "")
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, child.ID)
	assert.Contains(t, child.ID, "gene_")
	assert.Equal(t, source.Type, child.Type)
	assert.Equal(t, source.Category, child.Category)
	assert.Equal(t, 4, child.Version)
	require.NotNil(t, child.ParentGeneID)
	assert.Equal(t, "gene_src", *child.ParentGeneID)

	assert.Equal(t, 0.5, child.FitnessScore, "child starts at neutral fitness")
	assert.Zero(t, child.PositiveReactions)
	assert.Zero(t, child.NegativeReactions)
	assert.Zero(t, child.UsageCount)
	assert.Equal(t, source.EvolutionDirective, child.EvolutionDirective)

	assert.NotEqual(t, source.Content, child.Content, "the directive must change the content")
	assert.Contains(t, child.Content, source.Content)
}

func TestMutateShortenKeepsLeadingSentences(t *testing.T) {
	m := NewMutator()
	source := &domain.Gene{
		ID:                 "gene_src",
		Type:               domain.GeneTypeResponseFormat,
		Content:            "First point. Second point. Third point. Fourth point.",
		Version:            1,
		EvolutionDirective: "shorten if responses run long",
	}

	child, err := m.Mutate(source, "")
	require.NoError(t, err)
	assert.Contains(t, child.Content, "First point.")
	assert.NotContains(t, child.Content, "Fourth point.")
}

func TestMutateFoldsInFeedbackContext(t *testing.T) {
	m := NewMutator()
	source := &domain.Gene{
		ID:                 "gene_src",
		Type:               domain.GeneTypePersona,
		Content:            "You are a calm assistant.",
		Version:            1,
		EvolutionDirective: "clarify the lead sentence",
	}

	child, err := m.Mutate(source, "answers keep burying the point")
	require.NoError(t, err)
	assert.Contains(t, child.Content, "answers keep burying the point")
}

func TestMutateSkipsEmptyDirective(t *testing.T) {
	m := NewMutator()
	_, err := m.Mutate(&domain.Gene{ID: "gene_src", Content: "x"}, "")
	assert.ErrorIs(t, err, domain.ErrMutationSkipped)
}

func TestMutateSkipsUnknownDirective(t *testing.T) {
	m := NewMutator()
	_, err := m.Mutate(&domain.Gene{
		ID: "gene_src", Content: "x", EvolutionDirective: "transmogrify entirely",
	}, "")
	assert.ErrorIs(t, err, domain.ErrMutationSkipped)
}
