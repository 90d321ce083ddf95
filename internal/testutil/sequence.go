package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator hands out deterministic element ids: "<prefix>-1", "<prefix>-2", ...
//
// Unlike dom.UUIDGenerator, SequenceGenerator can be reset for test reuse, so the
// same scenario rewritten twice produces byte-identical markup for golden
// comparison.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewSequenceGenerator creates a generator whose first id is "<prefix>-1".
// If prefix is empty, "ma-id" is used.
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "ma-id"
	}
	return &SequenceGenerator{prefix: prefix}
}

// NewID returns the next id in the sequence.
//
// Implements dom.IDGenerator.
func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}

// Issued returns how many ids have been handed out since creation or Reset.
func (g *SequenceGenerator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.seq
}

// Reset restarts the sequence. After Reset, the next id is "<prefix>-1" again.
func (g *SequenceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
