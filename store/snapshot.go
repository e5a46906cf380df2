package store

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/longregen/genepool/domain"
)

// Snapshot is the portable dump format for a gene pool, used by the export
// and import CLI commands. It must round-trip every Gene field losslessly,
// including parent linkage, so lineage survives a device migration.
type Snapshot struct {
	SavedAt time.Time      `msgpack:"saved_at"`
	Genes   []*domain.Gene `msgpack:"genes"`
}

func EncodeSnapshot(genes []*domain.Gene) ([]byte, error) {
	snap := Snapshot{SavedAt: time.Now().UTC(), Genes: genes}
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

func DecodeSnapshot(data []byte) ([]*domain.Gene, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if err := ValidateLineage(snap.Genes); err != nil {
		return nil, err
	}
	return snap.Genes, nil
}

// ValidateLineage checks that the lineage graph is well formed: every parent
// reference resolves within the given pool, and no parent chain loops back on
// itself. Both conditions mean the snapshot was corrupted or hand-crafted.
func ValidateLineage(genes []*domain.Gene) error {
	byID := make(map[string]*domain.Gene, len(genes))
	for _, g := range genes {
		byID[g.ID] = g
	}

	// Genes whose chain was already walked to a root.
	acyclic := make(map[string]struct{}, len(genes))
	for _, g := range genes {
		walked := make(map[string]struct{})
		cur := g
		for cur.ParentGeneID != nil {
			if _, ok := acyclic[cur.ID]; ok {
				break
			}
			if _, ok := walked[cur.ID]; ok {
				return fmt.Errorf("gene %s is part of a lineage cycle", cur.ID)
			}
			walked[cur.ID] = struct{}{}
			parent, ok := byID[*cur.ParentGeneID]
			if !ok {
				return fmt.Errorf("gene %s references missing parent %s", cur.ID, *cur.ParentGeneID)
			}
			cur = parent
		}
		for id := range walked {
			acyclic[id] = struct{}{}
		}
	}
	return nil
}
