// Package telemetry counts rare, non-fatal faults raised by the simulation
// and forwards them to a reporter. Nothing in the game depends on it for
// correctness.
package telemetry

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
)

// Counter names raised by the simulation packages.
const (
	PatrolMissingLevel = "enemy.patrol.missing_level"
	SpriteMismatch     = "sprite.frame_mismatch"
	SpriteMissing      = "sprite.missing"
	SpriteCorrupt      = "sprite.corrupt"
	AnimUnknownState   = "anim.unknown_state"
	SpawnDeferred      = "spawn.deferred"
)

// Reporter receives every increment with the counter's new total.
type Reporter interface {
	Report(name string, count int)
}

// Nop discards reports.
type Nop struct{}

// Report implements Reporter.
func (Nop) Report(string, int) {}

// Counters is a set of named monotonically increasing counters.
// The zero value is not usable; call NewCounters.
type Counters struct {
	mu       sync.Mutex
	counts   map[string]int
	reporter Reporter
}

// NewCounters creates a counter set. A nil reporter discards reports.
func NewCounters(r Reporter) *Counters {
	if r == nil {
		r = Nop{}
	}
	return &Counters{counts: make(map[string]int), reporter: r}
}

// Inc increments name and reports the new total. Safe on a nil receiver.
func (c *Counters) Inc(name string) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	c.counts[name]++
	n := c.counts[name]
	c.mu.Unlock()

	c.reporter.Report(name, n)
	return n
}

// Get returns the current value of name.
func (c *Counters) Get(name string) int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

// Snapshot returns a copy of all counters.
func (c *Counters) Snapshot() map[string]int {
	out := make(map[string]int)
	if c == nil {
		return out
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

// Names returns the counter names that have been raised, sorted.
func (c *Counters) Names() []string {
	snap := c.Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LogReporter logs the first occurrence of each counter and then every
// power of two, so a fault raised every tick stays readable.
type LogReporter struct {
	Logger *log.Logger
}

// Report implements Reporter.
func (r LogReporter) Report(name string, count int) {
	if r.Logger == nil || !shouldLog(count) {
		return
	}
	r.Logger.Warn("diagnostic", "counter", name, "count", count)
}

// shouldLog reports whether count is 1 or a power of two.
func shouldLog(count int) bool {
	return count > 0 && count&(count-1) == 0
}
