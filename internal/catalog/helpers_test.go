package catalog_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-catalog/internal/catalog"
	"github.com/google/uuid"
)

var (
	authed = catalog.Viewer{Authenticated: true}
	anon   = catalog.Viewer{}
)

// testClock is a controllable clock for deterministic timestamps.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// sequentialIDs yields predictable identifiers so test assertions can name
// records directly.
func sequentialIDs() catalog.IDGenerator {
	var mu sync.Mutex
	next := 0
	return func() uuid.UUID {
		mu.Lock()
		defer mu.Unlock()
		next++
		return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", next))
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
