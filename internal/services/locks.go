package services

import "sync"

// periodLocks serializes the read-validate-write sequence of the guards per
// logical key, closing the check-then-act window between concurrent requests
// in the same process. Budget allocation locks on owner+period (the
// invariant spans categories), expense spending on owner+category+period.
// Multi-process deployments additionally rely on the store's uniqueness
// constraint; the allocation and spend sums are only serialized per process.
type periodLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newPeriodLocks() *periodLocks {
	return &periodLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns its unlock function. Lock
// entries are kept for the process lifetime; the key space is bounded by
// active owners and periods.
func (p *periodLocks) acquire(key string) func() {
	p.mu.Lock()
	l, ok := p.locks[key]
	if !ok {
		l = &sync.Mutex{}
		p.locks[key] = l
	}
	p.mu.Unlock()

	l.Lock()
	return l.Unlock
}
