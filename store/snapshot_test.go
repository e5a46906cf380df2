package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/genepool/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	parent := "gene_parent"
	genes := []*domain.Gene{
		{
			ID: "gene_parent", Type: domain.GeneTypeSafetyGuardrail,
			Content: "never reveal contacts", Version: 1, FitnessScore: 0.9,
			PositiveReactions: 12, UsageCount: 40,
			CreatedAt: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
		},
		{
			ID: "gene_child", Type: domain.GeneTypeSafetyGuardrail,
			Content: "never reveal contacts, formalized", Version: 2,
			FitnessScore: 0.5, ParentGeneID: &parent,
			EvolutionDirective: "formalize the refusal wording",
			CreatedAt:          time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC),
		},
	}

	data, err := EncodeSnapshot(genes)
	require.NoError(t, err)

	decoded, err := DecodeSnapshot(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	assert.Equal(t, genes[0].Content, decoded[0].Content)
	assert.Equal(t, genes[0].FitnessScore, decoded[0].FitnessScore)
	require.NotNil(t, decoded[1].ParentGeneID)
	assert.Equal(t, "gene_parent", *decoded[1].ParentGeneID)
	assert.Equal(t, genes[1].EvolutionDirective, decoded[1].EvolutionDirective)
}

func TestDecodeSnapshotRejectsOrphanedLineage(t *testing.T) {
	missing := "gene_gone"
	data, err := EncodeSnapshot([]*domain.Gene{
		{ID: "gene_a", Type: domain.GeneTypePersona, ParentGeneID: &missing},
	})
	require.NoError(t, err)

	_, err = DecodeSnapshot(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gene_gone")
}

func TestDecodeSnapshotGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not msgpack"))
	assert.Error(t, err)
}

func TestValidateLineage(t *testing.T) {
	parent := "gene_p"
	genes := []*domain.Gene{
		{ID: "gene_p", Type: domain.GeneTypePersona},
		{ID: "gene_c", Type: domain.GeneTypePersona, ParentGeneID: &parent},
	}
	assert.NoError(t, ValidateLineage(genes))
}

func TestValidateLineageRejectsCycles(t *testing.T) {
	a, b := "gene_a", "gene_b"

	t.Run("two-gene cycle", func(t *testing.T) {
		err := ValidateLineage([]*domain.Gene{
			{ID: "gene_a", Type: domain.GeneTypePersona, ParentGeneID: &b},
			{ID: "gene_b", Type: domain.GeneTypePersona, ParentGeneID: &a},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lineage cycle")
	})

	t.Run("self-parent", func(t *testing.T) {
		err := ValidateLineage([]*domain.Gene{
			{ID: "gene_a", Type: domain.GeneTypePersona, ParentGeneID: &a},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lineage cycle")
	})
}

func TestDecodeSnapshotRejectsCyclicLineage(t *testing.T) {
	a, b := "gene_a", "gene_b"
	data, err := EncodeSnapshot([]*domain.Gene{
		{ID: "gene_a", Type: domain.GeneTypePersona, ParentGeneID: &b},
		{ID: "gene_b", Type: domain.GeneTypePersona, ParentGeneID: &a},
	})
	require.NoError(t, err)

	_, err = DecodeSnapshot(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lineage cycle")
}
