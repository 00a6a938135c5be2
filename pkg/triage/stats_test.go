package triage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/tickdesk-io/tickdesk/pkg/api"
	"github.com/tickdesk-io/tickdesk/pkg/model"
)

func TestResolutionRate(t *testing.T) {
	cases := []struct {
		total, open int
		want        int
		ok          bool
	}{
		{10, 3, 70, true},
		{10, 10, 0, true},
		{3, 1, 67, true}, // 66.66 rounds to 67
		{0, 0, 0, false},
	}
	for _, tc := range cases {
		snap := model.StatsSnapshot{TotalTickets: tc.total, OpenTickets: tc.open}
		got, ok := ResolutionRate(snap)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ResolutionRate(total=%d, open=%d) = %d,%v want %d,%v",
				tc.total, tc.open, got, ok, tc.want, tc.ok)
		}
	}
}

func TestBreakdownOrderingAndProportions(t *testing.T) {
	entries := Breakdown(map[model.Category]int{
		model.CategoryBilling:   3,
		model.CategoryTechnical: 7,
	})
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Key != "technical" || entries[1].Key != "billing" {
		t.Errorf("order = %s, %s; want technical first", entries[0].Key, entries[1].Key)
	}
	if entries[0].Fraction != 0.7 || entries[1].Fraction != 0.3 {
		t.Errorf("fractions = %v, %v", entries[0].Fraction, entries[1].Fraction)
	}
}

func TestBreakdownTieBreakIsKeyOrder(t *testing.T) {
	entries := Breakdown(map[model.Priority]int{
		model.PriorityLow:    2,
		model.PriorityHigh:   2,
		model.PriorityMedium: 5,
	})
	got := []string{entries[0].Key, entries[1].Key, entries[2].Key}
	want := []string{"medium", "high", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBreakdownEmpty(t *testing.T) {
	if entries := Breakdown(map[model.Category]int{}); len(entries) != 0 {
		t.Errorf("empty breakdown should yield no entries, got %v", entries)
	}
}

func TestStatsViewLoad(t *testing.T) {
	snap := model.StatsSnapshot{TotalTickets: 4, OpenTickets: 1}
	store := &fakeStore{
		statsFn: func() (model.StatsSnapshot, error) { return snap, nil },
	}
	var mu sync.Mutex
	var got []StatsUpdate
	s := NewStatsView(store, nil, func(u StatsUpdate) {
		mu.Lock()
		got = append(got, u)
		mu.Unlock()
	})

	s.Load()
	settle()

	if s.Snapshot() == nil || s.Snapshot().TotalTickets != 4 {
		t.Fatalf("snapshot = %+v", s.Snapshot())
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0].Phase != StatsLoading || got[1].Phase != StatsLoaded {
		t.Errorf("updates = %+v", got)
	}
}

func TestStatsViewFailureBanner(t *testing.T) {
	store := &fakeStore{
		statsFn: func() (model.StatsSnapshot, error) {
			return model.StatsSnapshot{}, &api.TransportError{Op: "fetch stats", Err: errors.New("boom")}
		},
	}
	var mu sync.Mutex
	var last StatsUpdate
	s := NewStatsView(store, nil, func(u StatsUpdate) {
		mu.Lock()
		last = u
		mu.Unlock()
	})

	s.Load()
	settle()

	mu.Lock()
	defer mu.Unlock()
	if last.Phase != StatsFailed || last.Err != MsgStatsFailed {
		t.Errorf("last update = %+v, want %q", last, MsgStatsFailed)
	}
}

func TestStatsViewReloadsOnTicketCreated(t *testing.T) {
	store := &fakeStore{}
	events := NewDispatcher()
	NewStatsView(store, events, nil)

	events.Publish(Event{Type: EventTicketCreated})
	time.Sleep(20 * time.Millisecond)

	store.mu.Lock()
	calls := store.statsCalls
	store.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 stats fetch on ticket-created, got %d", calls)
	}
}
