package api

import (
	"sync"
	"sync/atomic"
	"time"
)

// Stats tracks process-lifetime, monotonic request counters. Safe for
// concurrent use by many request-handling goroutines.
type Stats struct {
	startedAt time.Time

	requestsTotal    atomic.Uint64
	solveTimeUsSum   atomic.Uint64
	solveTimeUsCount atomic.Uint64

	routeMu  sync.Mutex
	perRoute map[string]uint64
}

// NewStats creates a Stats tracker anchored to the current time.
func NewStats() *Stats {
	return &Stats{
		startedAt: time.Now(),
		perRoute:  make(map[string]uint64),
	}
}

// Record increments requestsTotal and the per-route counter, and folds
// elapsedUs into the running solve-time sum.
func (s *Stats) Record(route string, elapsedUs int64) {
	s.requestsTotal.Add(1)
	s.solveTimeUsSum.Add(uint64(elapsedUs))
	s.solveTimeUsCount.Add(1)

	s.routeMu.Lock()
	s.perRoute[route]++
	s.routeMu.Unlock()
}

// Snapshot is the JSON-serializable view of Stats returned by GET stats.
type Snapshot struct {
	RequestsTotal    uint64            `json:"requests_total"`
	RequestsPerRoute map[string]uint64 `json:"requests_per_route"`
	SolveTimeUsSum   uint64            `json:"solve_time_us_sum"`
	SolveTimeUsCount uint64            `json:"solve_time_us_count"`
	UptimeSeconds    int64             `json:"uptime_seconds"`
}

// Snapshot returns a point-in-time copy of the counters.
func (s *Stats) Snapshot() Snapshot {
	s.routeMu.Lock()
	perRoute := make(map[string]uint64, len(s.perRoute))
	for k, v := range s.perRoute {
		perRoute[k] = v
	}
	s.routeMu.Unlock()

	return Snapshot{
		RequestsTotal:    s.requestsTotal.Load(),
		RequestsPerRoute: perRoute,
		SolveTimeUsSum:   s.solveTimeUsSum.Load(),
		SolveTimeUsCount: s.solveTimeUsCount.Load(),
		UptimeSeconds:    int64(time.Since(s.startedAt).Seconds()),
	}
}

// UptimeSeconds reports elapsed process time, used by the health endpoint.
func (s *Stats) UptimeSeconds() int64 {
	return int64(time.Since(s.startedAt).Seconds())
}
