// Package perf collects frame and render timings for the pager. Collection
// is off unless GLIDE_PROFILE is set; summaries go to the log.
package perf

import (
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/andyrewlee/glide/internal/logging"
)

const (
	sampleWindow      = 256
	defaultIntervalMs = 5000
)

// Stat summarizes the durations recorded under one name since the last
// snapshot.
type Stat struct {
	Name  string
	Count int64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	P95   time.Duration
}

// Counter is a named running total since the last snapshot.
type Counter struct {
	Name  string
	Value int64
}

type series struct {
	count   int64
	total   time.Duration
	min     time.Duration
	max     time.Duration
	samples [sampleWindow]time.Duration
	n       int // filled slots
	next    int
}

func (s *series) add(d time.Duration) {
	s.count++
	s.total += d
	if s.count == 1 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
	s.samples[s.next] = d
	s.next = (s.next + 1) % sampleWindow
	s.n = min(s.n+1, sampleWindow)
}

func (s *series) p95() time.Duration {
	return percentile(s.samples[:s.n], 0.95)
}

type registry struct {
	mu       sync.Mutex
	series   map[string]*series
	counters map[string]int64
}

var (
	enabled  atomic.Bool
	interval atomic.Int64 // nanoseconds; 0 disables periodic logging
	lastLog  atomic.Int64

	reg = registry{series: map[string]*series{}, counters: map[string]int64{}}
)

func init() {
	enabled.Store(envEnabled(os.Getenv("GLIDE_PROFILE")))
	interval.Store(int64(envInterval(os.Getenv("GLIDE_PROFILE_INTERVAL_MS"))))
}

// Enabled reports whether profiling is enabled.
func Enabled() bool {
	return enabled.Load()
}

// Time returns a function that records the elapsed time under name.
func Time(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	start := time.Now()
	return func() { Record(name, time.Since(start)) }
}

// Record adds one duration sample.
func Record(name string, d time.Duration) {
	if !enabled.Load() {
		return
	}
	reg.mu.Lock()
	s, ok := reg.series[name]
	if !ok {
		s = &series{}
		reg.series[name] = s
	}
	s.add(d)
	reg.mu.Unlock()
	maybeLog()
}

// Count adds delta to a named counter.
func Count(name string, delta int64) {
	if !enabled.Load() {
		return
	}
	reg.mu.Lock()
	reg.counters[name] += delta
	reg.mu.Unlock()
	maybeLog()
}

// Snapshot returns the stats and counters sorted by name and resets them.
func Snapshot() ([]Stat, []Counter) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	stats := make([]Stat, 0, len(reg.series))
	for name, s := range reg.series {
		if s.count == 0 {
			continue
		}
		stats = append(stats, Stat{
			Name:  name,
			Count: s.count,
			Avg:   s.total / time.Duration(s.count),
			Min:   s.min,
			Max:   s.max,
			P95:   s.p95(),
		})
	}
	counters := make([]Counter, 0, len(reg.counters))
	for name, v := range reg.counters {
		if v != 0 {
			counters = append(counters, Counter{Name: name, Value: v})
		}
	}
	reg.series = map[string]*series{}
	reg.counters = map[string]int64{}

	sort.Slice(stats, func(i, j int) bool { return stats[i].Name < stats[j].Name })
	sort.Slice(counters, func(i, j int) bool { return counters[i].Name < counters[j].Name })
	return stats, counters
}

// Flush logs a summary immediately, e.g. on exit.
func Flush(reason string) {
	if !enabled.Load() {
		return
	}
	prefix := "PERF SUMMARY"
	if r := strings.TrimSpace(reason); r != "" {
		prefix += " " + r
	}
	logSnapshot(prefix)
}

func maybeLog() {
	every := time.Duration(interval.Load())
	if every <= 0 {
		return
	}
	now := time.Now().UnixNano()
	last := lastLog.Load()
	if last != 0 && time.Duration(now-last) < every {
		return
	}
	if !lastLog.CompareAndSwap(last, now) {
		return
	}
	logSnapshot("PERF")
}

func logSnapshot(prefix string) {
	stats, counters := Snapshot()
	for _, s := range stats {
		logging.Info("%s %s count=%d avg=%s p95=%s min=%s max=%s",
			prefix, s.Name, s.Count, s.Avg, s.P95, s.Min, s.Max)
	}
	for _, c := range counters {
		logging.Info("%s %s count=%d", prefix, c.Name, c.Value)
	}
}

// percentile returns the nearest-rank percentile of samples.
func percentile(samples []time.Duration, p float64) time.Duration {
	n := len(samples)
	if n == 0 {
		return 0
	}
	sorted := make([]time.Duration, n)
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	pos := int(math.Ceil(p*float64(n))) - 1
	return sorted[max(0, min(pos, n-1))]
}

func envEnabled(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "0", "false", "no":
		return false
	}
	return true
}

func envInterval(raw string) time.Duration {
	ms := defaultIntervalMs
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
		ms = v
	}
	return time.Duration(ms) * time.Millisecond
}

// EnableForTest turns collection on with periodic logging off and returns
// a function restoring the previous settings.
func EnableForTest() func() {
	prevEnabled, prevInterval := enabled.Load(), interval.Load()
	enabled.Store(true)
	interval.Store(0)
	Snapshot()
	return func() {
		enabled.Store(prevEnabled)
		interval.Store(prevInterval)
		Snapshot()
	}
}
