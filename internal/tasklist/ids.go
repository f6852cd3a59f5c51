package tasklist

import "time"

// IDGenerator hands out timestamp-like ids that are strictly increasing, so
// two tasks created within the same millisecond still get distinct ids.
type IDGenerator struct {
	now  func() time.Time
	last int64
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Observe makes sure later ids are greater than id.
func (g *IDGenerator) Observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

func (g *IDGenerator) Next() int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
