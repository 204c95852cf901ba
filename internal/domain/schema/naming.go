package schema

import (
	"strconv"
	"sync/atomic"
)

// NameGenerator produces unique names for derived tables
type NameGenerator interface {
	Next(base string) string
}

// Counter is a NameGenerator appending a monotonically increasing number
// to the base name. It is safe for concurrent use.
type Counter struct {
	n atomic.Uint64
}

// NewCounter returns a counter whose first generated suffix is start
func NewCounter(start uint64) *Counter {
	c := &Counter{}
	c.n.Store(start)
	return c
}

// Next returns base followed by the next counter value
func (c *Counter) Next(base string) string {
	return base + strconv.FormatUint(c.n.Add(1)-1, 10)
}
