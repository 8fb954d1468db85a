package term

import "sync"

// Pool is an append-only registry of every term seen by any parse in the
// process. It is used to describe terms in messages after the lexicon frame
// that defined them has been popped.
type Pool struct {
	mu    sync.RWMutex
	byID  map[ID]*Term
	order []*Term
}

// DefaultPool is shared by all parsers unless one is given its own pool.
var DefaultPool = NewPool()

func NewPool() *Pool {
	return &Pool{byID: make(map[ID]*Term)}
}

// Add registers terms. Existing entries are kept.
func (p *Pool) Add(terms ...*Term) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range terms {
		if _, ok := p.byID[t.ID]; ok {
			continue
		}
		p.byID[t.ID] = t
		p.order = append(p.order, t)
	}
}

// Term returns the registered term with id.
func (p *Pool) Term(id ID) (*Term, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.byID[id]
	return t, ok
}

// Len returns the number of registered terms.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.order)
}

// Terms returns a snapshot in registration order.
func (p *Pool) Terms() []*Term {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]*Term(nil), p.order...)
}
