package triage

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// MsgStatsFailed is the banner shown when the stats fetch fails.
const MsgStatsFailed = "Failed to load statistics."

// StatsPhase tags a StatsUpdate.
type StatsPhase int

const (
	StatsLoading StatsPhase = iota
	StatsLoaded
	StatsFailed
)

// StatsUpdate is pushed to the stats owner as fetches progress.
type StatsUpdate struct {
	Phase    StatsPhase
	Snapshot model.StatsSnapshot
	Err      string
}

// StatsView fetches the store's precomputed aggregate snapshot. It never
// aggregates client-side; it only derives display ratios.
type StatsView struct {
	store  Store
	notify func(StatsUpdate)

	mu   sync.Mutex
	seq  uint64
	snap *model.StatsSnapshot
}

// NewStatsView creates a stats controller. If events is non-nil it
// reloads on every ticket-created event. notify may be nil.
func NewStatsView(store Store, events *Dispatcher, notify func(StatsUpdate)) *StatsView {
	if notify == nil {
		notify = func(StatsUpdate) {}
	}
	s := &StatsView{store: store, notify: notify}
	if events != nil {
		events.Subscribe(EventTicketCreated, func(Event) {
			s.Load()
		})
	}
	return s
}

// Load fetches the snapshot. Overlapping loads resolve to the most
// recently issued one.
func (s *StatsView) Load() {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.notify(StatsUpdate{Phase: StatsLoading})

	go func() {
		snap, err := s.store.Stats(context.Background())

		s.mu.Lock()
		if seq != s.seq {
			s.mu.Unlock()
			return
		}
		if err != nil {
			s.mu.Unlock()
			s.notify(StatsUpdate{Phase: StatsFailed, Err: MsgStatsFailed})
			return
		}
		s.snap = &snap
		s.mu.Unlock()
		s.notify(StatsUpdate{Phase: StatsLoaded, Snapshot: snap})
	}()
}

// Snapshot returns the last loaded snapshot, or nil.
func (s *StatsView) Snapshot() *model.StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return nil
	}
	snap := *s.snap
	return &snap
}

// ResolutionRate derives the percentage of tickets no longer open,
// rounded to the nearest integer. ok is false when no tickets exist, in
// which case the view shows an unavailable marker instead of dividing.
func ResolutionRate(snap model.StatsSnapshot) (rate int, ok bool) {
	if snap.TotalTickets <= 0 {
		return 0, false
	}
	resolved := float64(snap.TotalTickets - snap.OpenTickets)
	return int(math.Round(resolved / float64(snap.TotalTickets) * 100)), true
}

// BreakdownEntry is one bar of a breakdown chart.
type BreakdownEntry struct {
	Key      string
	Count    int
	Fraction float64 // this entry's share of the breakdown total
}

// Breakdown orders a count map for display: by count descending, ties by
// key ascending. The tie-break is this repository's documented choice;
// the store leaves it unspecified.
func Breakdown[K ~string](counts map[K]int) []BreakdownEntry {
	total := 0
	for _, count := range counts {
		total += count
	}

	entries := make([]BreakdownEntry, 0, len(counts))
	for key, count := range counts {
		entry := BreakdownEntry{Key: string(key), Count: count}
		if total > 0 {
			entry.Fraction = float64(count) / float64(total)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
