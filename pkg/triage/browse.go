package triage

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/tickdesk-io/tickdesk/pkg/debounce"
	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// MsgListFailed is the banner shown when a list fetch fails.
const MsgListFailed = "Failed to load tickets."

// BrowsePhase tags a BrowseUpdate.
type BrowsePhase int

const (
	// BrowseLoading: a fetch was just issued.
	BrowseLoading BrowsePhase = iota
	// BrowseLoaded: Tickets holds the latest result.
	BrowseLoaded
	// BrowseFailed: the latest fetch failed; the previous list stands.
	BrowseFailed
)

// BrowseUpdate is pushed to the browser's owner as fetches progress.
type BrowseUpdate struct {
	Phase   BrowsePhase
	Tickets []model.Ticket
	Err     string
}

// Browser owns the active filter query and the fetched ticket list.
// Discrete filter changes fetch immediately; search text fetches after a
// quiet window; a ticket-created event fetches immediately. Every fetch
// carries a monotonically increasing sequence number, and a response is
// dropped unless its sequence is still the latest, so overlapping fetches
// resolve to the most recently issued one no matter the arrival order.
type Browser struct {
	store  Store
	search *debounce.Debouncer
	notify func(BrowseUpdate)

	mu      sync.Mutex
	seq     uint64
	query   model.FilterQuery
	tickets []model.Ticket
}

// NewBrowser creates a browser. window is the search quiet window
// (debounce.SearchDuration in production). If events is non-nil the
// browser re-fetches on every ticket-created event. notify may be nil.
func NewBrowser(store Store, events *Dispatcher, window time.Duration, notify func(BrowseUpdate)) *Browser {
	if notify == nil {
		notify = func(BrowseUpdate) {}
	}
	b := &Browser{
		store:  store,
		search: debounce.New(window),
		notify: notify,
	}
	if events != nil {
		events.Subscribe(EventTicketCreated, func(Event) {
			b.Fetch()
		})
	}
	return b
}

// SetCategory narrows the list to one category; empty clears the filter.
// Takes effect immediately.
func (b *Browser) SetCategory(category model.Category) {
	b.mu.Lock()
	b.query.Category = category
	b.mu.Unlock()
	b.Fetch()
}

// SetPriority narrows the list to one priority; empty clears the filter.
// Takes effect immediately.
func (b *Browser) SetPriority(priority model.Priority) {
	b.mu.Lock()
	b.query.Priority = priority
	b.mu.Unlock()
	b.Fetch()
}

// SetStatus narrows the list to one status; empty clears the filter.
// Takes effect immediately.
func (b *Browser) SetStatus(status model.Status) {
	b.mu.Lock()
	b.query.Status = status
	b.mu.Unlock()
	b.Fetch()
}

// SetSearch records free-text input. The fetch is issued only after the
// quiet window elapses with no further input, using the final value.
func (b *Browser) SetSearch(text string) {
	b.search.Trigger(func() {
		b.mu.Lock()
		b.query.Search = text
		b.mu.Unlock()
		b.Fetch()
	})
}

// Query returns the active filter query.
func (b *Browser) Query() model.FilterQuery {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// Tickets returns the most recently applied list result.
func (b *Browser) Tickets() []model.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.tickets)
}

// Fetch issues a list request for the active query. Responses are applied
// in issue order: an older response arriving after a newer one is dropped.
func (b *Browser) Fetch() {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	query := b.query
	b.mu.Unlock()

	b.notify(BrowseUpdate{Phase: BrowseLoading})

	go func() {
		tickets, err := b.store.List(context.Background(), query)

		b.mu.Lock()
		if seq != b.seq {
			b.mu.Unlock()
			return
		}
		if err != nil {
			b.mu.Unlock()
			b.notify(BrowseUpdate{Phase: BrowseFailed, Err: MsgListFailed})
			return
		}
		b.tickets = tickets
		b.mu.Unlock()
		b.notify(BrowseUpdate{Phase: BrowseLoaded, Tickets: slices.Clone(tickets)})
	}()
}

// SetTicketStatus patches one ticket's status. On success the store's
// response replaces the whole record in the current list; the store is
// authoritative for the full object. Failure is silent and leaves the
// list untouched. Calls racing on the same ticket resolve in
// response-arrival order (last responder wins); see the package notes.
func (b *Browser) SetTicketStatus(id string, status model.Status) {
	go func() {
		updated, err := b.store.PatchStatus(context.Background(), id, status)
		if err != nil {
			return
		}

		b.mu.Lock()
		replaced := false
		for i := range b.tickets {
			if b.tickets[i].ID == updated.ID {
				b.tickets[i] = updated
				replaced = true
			}
		}
		tickets := slices.Clone(b.tickets)
		b.mu.Unlock()

		if replaced {
			b.notify(BrowseUpdate{Phase: BrowseLoaded, Tickets: tickets})
		}
	}()
}
