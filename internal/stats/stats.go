// Package stats tracks runtime statistics for the HomeAI server.
package stats

import (
	"runtime"
	"sync"
	"time"
)

// Collector accumulates per-turn metrics. Safe for concurrent use.
type Collector struct {
	startTime time.Time

	mu            sync.Mutex
	turnCount     int64
	errorCount    int64
	totalDuration int64 // nanoseconds
}

// NewCollector creates a stats collector anchored at now.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
	}
}

// Stats represents server statistics at a point in time.
type Stats struct {
	MemoryStats MemoryStats `json:"memory"`
	Goroutines  int         `json:"goroutines"`
	Uptime      string      `json:"uptime"`

	// Conversation metrics
	TurnCount    int64   `json:"turn_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// MemoryStats represents memory usage statistics.
type MemoryStats struct {
	HeapAlloc   int64   `json:"heap_alloc_bytes"`
	HeapAllocMB float64 `json:"heap_alloc_mb"`
	HeapSys     int64   `json:"heap_sys_bytes"`
	HeapSysMB   float64 `json:"heap_sys_mb"`
	NumGC       uint32  `json:"num_gc"`
}

// Collect returns current statistics.
func (c *Collector) Collect() *Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.mu.Lock()
	turns := c.turnCount
	errors := c.errorCount
	total := c.totalDuration
	c.mu.Unlock()

	avgLatency := float64(0)
	if turns > 0 {
		avgLatency = float64(total) / float64(turns) / 1e6 // nanos to millis
	}

	return &Stats{
		MemoryStats: MemoryStats{
			HeapAlloc:   int64(m.HeapAlloc),
			HeapAllocMB: bytesToMB(int64(m.HeapAlloc)),
			HeapSys:     int64(m.HeapSys),
			HeapSysMB:   bytesToMB(int64(m.HeapSys)),
			NumGC:       m.NumGC,
		},
		Goroutines:   runtime.NumGoroutine(),
		Uptime:       time.Since(c.startTime).String(),
		TurnCount:    turns,
		ErrorCount:   errors,
		AvgLatencyMs: avgLatency,
	}
}

// RecordTurn records a completed conversation turn.
func (c *Collector) RecordTurn(duration time.Duration) {
	c.mu.Lock()
	c.turnCount++
	c.totalDuration += duration.Nanoseconds()
	c.mu.Unlock()
}

// RecordError records a failed turn.
func (c *Collector) RecordError() {
	c.mu.Lock()
	c.errorCount++
	c.mu.Unlock()
}

// StartTime returns when the collector started.
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// bytesToMB converts bytes to megabytes.
func bytesToMB(b int64) float64 {
	return float64(b) / 1024 / 1024
}
