package model

import "sync"

// GridToPool returns a discarded generation to the pool for reuse
func GridToPool(grid *Grid, pool *GridPool) {
	if pool == nil || grid == nil {
		return
	}

	pool.Put(grid)
}

// GridPool recycles generation buffers so a long run does not allocate one per step
type GridPool struct {
	pool sync.Pool
}

func NewGridPool() *GridPool {
	return &GridPool{
		pool: sync.Pool{
			New: func() any {
				return &Grid{}
			},
		},
	}
}

// Get retrieves an all-dead grid of the given size
func (p *GridPool) Get(rows, cols int) *Grid {
	g := p.pool.Get().(*Grid)
	g.reset(rows, cols)
	return g
}

// Put hands a grid back. The caller must not use it afterwards.
func (p *GridPool) Put(g *Grid) {
	g.clear()
	p.pool.Put(g)
}
