package main

import (
	"sort"
	"sync"
	"time"

	"github.com/facebookgo/stats"
	"github.com/rs/zerolog/log"
)

// logStats is a stats.Client which keeps totals in memory so they can be
// logged once all the bagging is finished.
type logStats struct {
	m      sync.Mutex
	sums   map[string]float64
	counts map[string]int
	totals map[string]float64 // for averages, histograms and timers
}

var _ stats.Client = &logStats{}

func newLogStats() *logStats {
	return &logStats{
		sums:   make(map[string]float64),
		counts: make(map[string]int),
		totals: make(map[string]float64),
	}
}

func (s *logStats) BumpSum(key string, val float64) {
	s.m.Lock()
	s.sums[key] += val
	s.m.Unlock()
}

func (s *logStats) BumpAvg(key string, val float64) {
	s.m.Lock()
	s.counts[key]++
	s.totals[key] += val
	s.m.Unlock()
}

func (s *logStats) BumpHistogram(key string, val float64) {
	s.BumpAvg(key, val)
}

func (s *logStats) BumpTime(key string) interface {
	End()
} {
	return timer{s: s, key: key, start: time.Now()}
}

type timer struct {
	s     *logStats
	key   string
	start time.Time
}

// End records the elapsed time in seconds.
func (t timer) End() {
	t.s.BumpHistogram(t.key, time.Since(t.start).Seconds())
}

// average returns the mean of the values bumped under key.
func (s *logStats) average(key string) float64 {
	s.m.Lock()
	defer s.m.Unlock()
	if s.counts[key] == 0 {
		return 0
	}
	return s.totals[key] / float64(s.counts[key])
}

// report logs every statistic.
func (s *logStats) report() {
	s.m.Lock()
	defer s.m.Unlock()
	seen := make(map[string]bool)
	var keys []string
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	for k := range s.sums {
		add(k)
	}
	for k := range s.counts {
		add(k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e := log.Info().Str("key", k)
		if v, ok := s.sums[k]; ok {
			e = e.Float64("sum", v)
		}
		if n := s.counts[k]; n > 0 {
			e = e.Int("count", n).Float64("avg", s.totals[k]/float64(n))
		}
		e.Msg("stats")
	}
}
