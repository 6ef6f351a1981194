package logger

import (
	"sync"
	"time"
)

// Metrics tracks operational metrics for a run: counters (incrementing
// values such as fetch errors) and timings (durations with min/max/average
// aggregation). All operations are safe for concurrent use by the lookup
// workers.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	timings  map[string][]time.Duration
}

var defaultMetrics *Metrics

func init() {
	defaultMetrics = NewMetrics()
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		timings:  make(map[string][]time.Duration),
	}
}

// IncrCounter increments a counter by 1, initializing it on first use.
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// RecordTiming records a duration measurement.
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.timings[name] = append(m.timings[name], duration)
}

// TimingStats summarizes one timing series
type TimingStats struct {
	Count   int
	Total   time.Duration
	Average time.Duration
	Min     time.Duration
	Max     time.Duration
}

// Snapshot is a point-in-time copy of all metrics
type Snapshot struct {
	Counters map[string]int64
	Timings  map[string]TimingStats
}

// GetSnapshot returns a deep copy of all metrics, safe to read while the
// workers keep updating.
func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := Snapshot{
		Counters: make(map[string]int64, len(m.counters)),
		Timings:  make(map[string]TimingStats, len(m.timings)),
	}

	for k, v := range m.counters {
		snapshot.Counters[k] = v
	}

	for k, durations := range m.timings {
		if len(durations) == 0 {
			continue
		}
		stats := TimingStats{
			Count: len(durations),
			Min:   durations[0],
			Max:   durations[0],
		}
		for _, d := range durations {
			stats.Total += d
			if d < stats.Min {
				stats.Min = d
			}
			if d > stats.Max {
				stats.Max = d
			}
		}
		stats.Average = stats.Total / time.Duration(stats.Count)
		snapshot.Timings[k] = stats
	}

	return snapshot
}

// Package-level convenience functions using the default metrics tracker

// IncrCounter increments a counter on the default metrics tracker
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// RecordTiming records a duration on the default metrics tracker
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// GetSnapshot returns a snapshot of the default metrics tracker
func GetSnapshot() Snapshot {
	return defaultMetrics.GetSnapshot()
}
