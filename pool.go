package seqcdc

import (
	"io"
	"sync"
)

// ChunkerPool is a pool of Chunker instances for reuse in high-throughput scenarios.
// It reduces allocations by recycling chunkers and their read buffers instead
// of creating new ones.
type ChunkerPool struct {
	pool sync.Pool
	cfg  *Config
}

// NewChunkerPool creates a new ChunkerPool with the given options.
// All chunkers created from this pool will use these options.
func NewChunkerPool(opts ...Option) (*ChunkerPool, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewChunkerPoolFromConfig(cfg), nil
}

// NewChunkerPoolFromConfig creates a new ChunkerPool sharing cfg.
func NewChunkerPoolFromConfig(cfg *Config) *ChunkerPool {
	return &ChunkerPool{cfg: cfg}
}

// Get retrieves a Chunker from the pool, or creates a new one if the pool is empty.
// The chunker is configured with the given reader and ready to use.
func (p *ChunkerPool) Get(r io.Reader) *Chunker {
	if v := p.pool.Get(); v != nil {
		chunker := v.(*Chunker)
		chunker.Reset(r)

		return chunker
	}

	return NewChunkerFromConfig(r, p.cfg)
}

// Put returns a Chunker to the pool for reuse.
// The chunker should not be used after being returned to the pool.
func (p *ChunkerPool) Put(c *Chunker) {
	// Clear the reader to avoid holding references
	c.reader = nil
	p.pool.Put(c)
}

// Config returns the configuration shared by the pooled chunkers.
func (p *ChunkerPool) Config() *Config {
	return p.cfg
}
