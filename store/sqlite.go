package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/longregen/genepool/domain"
)

// DB is the durable home of the gene pool: a single sqlite file on device.
// The in-memory Store stays authoritative at runtime; the DB is loaded once
// at startup and flushed at checkpoints and shutdown.
type DB struct {
	db *sql.DB
}

func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open gene db: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init gene schema: %w", err)
	}

	return &DB{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS genes (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			category TEXT DEFAULT '',
			content TEXT NOT NULL,
			version INTEGER NOT NULL DEFAULT 1,
			fitness_score REAL NOT NULL DEFAULT 0.5,
			parent_gene_id TEXT,
			positive_reactions INTEGER NOT NULL DEFAULT 0,
			negative_reactions INTEGER NOT NULL DEFAULT 0,
			usage_count INTEGER NOT NULL DEFAULT 0,
			evolution_directive TEXT DEFAULT '',
			created_at INTEGER NOT NULL,
			inserted_seq INTEGER
		);
		CREATE INDEX IF NOT EXISTS idx_genes_type ON genes(type);
		CREATE INDEX IF NOT EXISTS idx_genes_parent ON genes(parent_gene_id);
	`)
	return err
}

// LoadGenes reads the whole pool, ordered so the in-memory store rebuilds the
// same insertion order that was flushed (selection tie-breaking depends on it).
func (d *DB) LoadGenes(ctx context.Context) ([]*domain.Gene, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, type, category, content, version, fitness_score, parent_gene_id,
		       positive_reactions, negative_reactions, usage_count, evolution_directive, created_at
		FROM genes
		ORDER BY inserted_seq`)
	if err != nil {
		return nil, fmt.Errorf("load genes: %w", err)
	}
	defer rows.Close()

	var genes []*domain.Gene
	for rows.Next() {
		g := &domain.Gene{}
		var parent sql.NullString
		var createdAt int64
		if err := rows.Scan(&g.ID, &g.Type, &g.Category, &g.Content, &g.Version,
			&g.FitnessScore, &parent, &g.PositiveReactions, &g.NegativeReactions,
			&g.UsageCount, &g.EvolutionDirective, &createdAt); err != nil {
			return nil, fmt.Errorf("scan gene: %w", err)
		}
		if parent.Valid {
			p := parent.String
			g.ParentGeneID = &p
		}
		g.CreatedAt = time.Unix(0, createdAt).UTC()
		genes = append(genes, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load genes: %w", err)
	}
	return genes, nil
}

// SaveGenes upserts the given pool snapshot in one transaction. The slice
// order becomes the persisted insertion order.
func (d *DB) SaveGenes(ctx context.Context, genes []*domain.Gene) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin gene flush: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO genes (id, type, category, content, version, fitness_score, parent_gene_id,
			positive_reactions, negative_reactions, usage_count, evolution_directive, created_at, inserted_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			content = excluded.content,
			fitness_score = excluded.fitness_score,
			positive_reactions = excluded.positive_reactions,
			negative_reactions = excluded.negative_reactions,
			usage_count = excluded.usage_count,
			inserted_seq = excluded.inserted_seq`)
	if err != nil {
		return fmt.Errorf("prepare gene flush: %w", err)
	}
	defer stmt.Close()

	for seq, g := range genes {
		var parent any
		if g.ParentGeneID != nil {
			parent = *g.ParentGeneID
		}
		if _, err := stmt.ExecContext(ctx, g.ID, string(g.Type), g.Category, g.Content,
			g.Version, g.FitnessScore, parent, g.PositiveReactions, g.NegativeReactions,
			g.UsageCount, g.EvolutionDirective, g.CreatedAt.UnixNano(), seq); err != nil {
			return fmt.Errorf("flush gene %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit gene flush: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.db.Close()
}
