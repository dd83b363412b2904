package ingest

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues upload ids of the form upload-<unixMillis>-<ordinal>.
// An id is never issued twice; when a candidate is taken, the timestamp is
// bumped until a free one is found.
//
// Only ids from the current millisecond onwards are remembered. Once the
// clock passes every issued id the set is dropped and the new millisecond
// becomes a floor: a clock that steps back is bumped up to it.
type IDGenerator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	high   int64
	floor  int64
	exists func(id string) bool
}

// NewIDGenerator returns a generator that also avoids every id for which
// exists reports true. exists may be nil.
func NewIDGenerator(exists func(id string) bool) *IDGenerator {
	return &IDGenerator{issued: make(map[string]struct{}), exists: exists}
}

func (g *IDGenerator) Next(now time.Time, ordinal int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	millis := max(now.UnixMilli(), g.floor)
	if millis > g.high {
		clear(g.issued)
		g.floor = millis
	}
	for {
		id := fmt.Sprintf("upload-%d-%d", millis, ordinal)
		if _, ok := g.issued[id]; !ok && (g.exists == nil || !g.exists(id)) {
			g.issued[id] = struct{}{}
			g.high = max(g.high, millis)
			return id
		}
		millis++
	}
}
