package service

import (
	"sync"

	"github.com/google/uuid"
)

// resourceLocks serializes validate-then-insert per resource. Booking creation
// is a check-then-act sequence; without mutual exclusion two simultaneous
// requests for the same interval can both pass validation before either is
// persisted.
type resourceLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newResourceLocks() *resourceLocks {
	return &resourceLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// get returns the mutex for a resource, creating it on first use. Lock entries
// are never reclaimed; the resource catalogue is small and long-lived.
func (l *resourceLocks) get(resourceID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[resourceID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[resourceID] = m
	}
	return m
}
