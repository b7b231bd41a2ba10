package sheet

import (
	"sync"
	"time"
)

// IDGenerator produces record identifiers.
type IDGenerator interface {
	Next() int64
}

// ClockIDGenerator issues millisecond timestamps, strictly increasing within
// the process even when called several times in the same millisecond.
type ClockIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClockIDGenerator(now func() time.Time) *ClockIDGenerator {
	if now == nil {
		now = time.Now
	}
	return &ClockIDGenerator{now: now}
}

func (g *ClockIDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
