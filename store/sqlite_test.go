package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/longregen/genepool/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "genes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndLoadGenes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	parent := "gene_parent"
	genes := []*domain.Gene{
		{
			ID: "gene_parent", Type: domain.GeneTypePersona, Content: "calm assistant",
			Version: 1, FitnessScore: 0.28, PositiveReactions: 2, NegativeReactions: 9,
			UsageCount: 14, EvolutionDirective: "soften the tone",
			CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		},
		{
			ID: "gene_child", Type: domain.GeneTypePersona, Category: "briefing",
			Content: "calm assistant, softened", Version: 2, FitnessScore: 0.5,
			ParentGeneID: &parent, EvolutionDirective: "soften the tone",
			CreatedAt: time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		},
	}
	require.NoError(t, db.SaveGenes(ctx, genes))

	loaded, err := db.LoadGenes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "gene_parent", loaded[0].ID)
	assert.Equal(t, 0.28, loaded[0].FitnessScore)
	assert.Equal(t, 9, loaded[0].NegativeReactions)
	assert.Equal(t, 14, loaded[0].UsageCount)
	assert.Nil(t, loaded[0].ParentGeneID)
	assert.Equal(t, genes[0].CreatedAt, loaded[0].CreatedAt, "timestamps round-trip with sub-second precision")

	require.NotNil(t, loaded[1].ParentGeneID)
	assert.Equal(t, "gene_parent", *loaded[1].ParentGeneID)
	assert.Equal(t, 2, loaded[1].Version)
	assert.Equal(t, "briefing", loaded[1].Category)
}

func TestSaveGenesUpserts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	g := &domain.Gene{
		ID: "gene_a", Type: domain.GeneTypePersona, Content: "v1",
		Version: 1, FitnessScore: 0.5, CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, db.SaveGenes(ctx, []*domain.Gene{g}))

	g.FitnessScore = 0.65
	g.UsageCount = 7
	require.NoError(t, db.SaveGenes(ctx, []*domain.Gene{g}))

	loaded, err := db.LoadGenes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 0.65, loaded[0].FitnessScore)
	assert.Equal(t, 7, loaded[0].UsageCount)
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var genes []*domain.Gene
	for _, id := range []string{"gene_c", "gene_a", "gene_b"} {
		genes = append(genes, &domain.Gene{
			ID: id, Type: domain.GeneTypePersona, Content: id,
			Version: 1, CreatedAt: time.Now().UTC(),
		})
	}
	require.NoError(t, db.SaveGenes(ctx, genes))

	loaded, err := db.LoadGenes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "gene_c", loaded[0].ID)
	assert.Equal(t, "gene_a", loaded[1].ID)
	assert.Equal(t, "gene_b", loaded[2].ID)
}

func TestPing(t *testing.T) {
	db := openTestDB(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestCheckpointerFlush(t *testing.T) {
	db := openTestDB(t)
	pool := New()
	pool.AddGene(&domain.Gene{Type: domain.GeneTypePersona, Content: "x", FitnessScore: 0.5})

	cp := NewCheckpointer(pool, db, time.Hour)
	cp.Flush(context.Background())

	loaded, err := db.LoadGenes(context.Background())
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.False(t, pool.Dirty(), "flush clears the dirty flag")
}

func TestCheckpointerKeepsReactionLandingMidFlush(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	pool := New()
	g := pool.AddGene(&domain.Gene{Type: domain.GeneTypePersona, Content: "x", FitnessScore: 0.5})
	cp := NewCheckpointer(pool, db, time.Hour)

	// Interleave the flush steps by hand: snapshot, persist, then a reaction
	// lands before the dirty flag is cleared.
	genes, gen := pool.Snapshot()
	require.NoError(t, db.SaveGenes(ctx, genes))
	require.NoError(t, pool.ApplyReaction(g.ID, 0.05, true))
	require.False(t, pool.ClearDirtyAt(gen))

	// The shutdown flush must not skip: the pool is still dirty.
	cp.Flush(ctx)

	loaded, err := db.LoadGenes(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 1, loaded[0].PositiveReactions, "the racing reaction must reach disk")
	assert.InDelta(t, 0.55, loaded[0].FitnessScore, 1e-9)
	assert.False(t, pool.Dirty())
}
