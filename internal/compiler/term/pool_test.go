package term

import (
	"fmt"
	"sync"
	"testing"
)

func TestPoolKeepsFirstRegistration(t *testing.T) {
	p := NewPool()
	first := New(RoleType, IDURI("window"), NewName("window"))
	second := New(RoleType, IDURI("window"), NewName("other"))

	p.Add(first)
	p.Add(second)

	got, ok := p.Term(first.ID)
	if !ok || got != first {
		t.Errorf("expected first registration, got %v", got)
	}
	if p.Len() != 1 {
		t.Errorf("expected 1 term, got %d", p.Len())
	}
}

func TestPoolConcurrentAdd(t *testing.T) {
	p := NewPool()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				p.Add(New(RoleVariable, IDURI(fmt.Sprintf("v%d", j)), NewName(fmt.Sprintf("v%d", j))))
			}
		}(i)
	}
	wg.Wait()

	if p.Len() != 50 {
		t.Errorf("expected 50 distinct terms, got %d", p.Len())
	}
	if len(p.Terms()) != 50 {
		t.Errorf("expected snapshot of 50, got %d", len(p.Terms()))
	}
}
