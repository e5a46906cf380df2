package store

import (
	"context"
	"log/slog"
	"time"
)

// Checkpointer periodically flushes a dirty store to sqlite so the pool
// survives process death between explicit shutdowns.
type Checkpointer struct {
	store    *Store
	db       *DB
	interval time.Duration
}

func NewCheckpointer(s *Store, db *DB, interval time.Duration) *Checkpointer {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Checkpointer{store: s, db: db, interval: interval}
}

// Start launches the checkpoint loop and returns a stop function that
// performs a final flush before returning.
func (c *Checkpointer) Start(ctx context.Context) func() {
	tickCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				c.Flush(tickCtx)
			}
		}
	}()
	return func() {
		cancel()
		<-done
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer flushCancel()
		c.Flush(flushCtx)
	}
}

// Flush writes the pool to disk when it changed since the last flush. The
// dirty flag is cleared compare-and-clear style against the snapshot's
// generation: a write landing while SaveGenes runs keeps the pool dirty, so
// the next flush persists it rather than losing it.
func (c *Checkpointer) Flush(ctx context.Context) {
	if !c.store.Dirty() {
		return
	}
	genes, gen := c.store.Snapshot()
	if err := c.db.SaveGenes(ctx, genes); err != nil {
		slog.ErrorContext(ctx, "gene pool checkpoint failed", "genes", len(genes), "error", err)
		return
	}
	if !c.store.ClearDirtyAt(gen) {
		slog.DebugContext(ctx, "gene pool changed during checkpoint, staying dirty", "genes", len(genes))
		return
	}
	slog.DebugContext(ctx, "gene pool checkpoint complete", "genes", len(genes))
}
