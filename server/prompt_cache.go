package server

import (
	"sync"

	"github.com/longregen/genepool/domain"
)

// promptCache keeps recently synthesized prompts addressable by ID so a
// later feedback call can recover the exact genes that produced them.
// Bounded FIFO: once full, the oldest prompt is evicted and feedback for it
// becomes a 404, which the client treats as expired provenance.
type promptCache struct {
	mu      sync.Mutex
	max     int
	order   []string
	prompts map[string]*domain.SynthesizedPrompt
}

func newPromptCache(max int) *promptCache {
	if max <= 0 {
		max = 256
	}
	return &promptCache{
		max:     max,
		prompts: make(map[string]*domain.SynthesizedPrompt),
	}
}

func (c *promptCache) Put(p *domain.SynthesizedPrompt) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.prompts[p.ID]; !exists {
		c.order = append(c.order, p.ID)
	}
	c.prompts[p.ID] = p
	for len(c.order) > c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.prompts, oldest)
	}
}

func (c *promptCache) Get(id string) (*domain.SynthesizedPrompt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.prompts[id]
	return p, ok
}

func (c *promptCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}
