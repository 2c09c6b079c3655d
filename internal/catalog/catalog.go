// Package catalog implements the default in-memory Catalog: a sink for
// the per-track records the orchestrator persists after a scan, without
// pulling in a real database dependency.
package catalog

import (
	"context"
	"sync"

	"github.com/wavepath/flacscan/internal/types"
)

// Catalog stores records in process memory, keyed by insertion order with
// path-based upsert semantics. Safe for concurrent use so a shared
// instance can back a batch scan across independent files.
type Catalog struct {
	mu      sync.Mutex
	records []types.Record
	byPath  map[string]int
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{byPath: make(map[string]int)}
}

// UpdateOrCreate inserts rec, or overwrites the existing record sharing
// its Path.
func (c *Catalog) UpdateOrCreate(ctx context.Context, rec types.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.byPath[rec.Path]; ok {
		c.records[i] = rec
		return nil
	}
	c.byPath[rec.Path] = len(c.records)
	c.records = append(c.records, rec)
	return nil
}

// Records returns a snapshot of every stored record.
func (c *Catalog) Records() []types.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Record, len(c.records))
	copy(out, c.records)
	return out
}
