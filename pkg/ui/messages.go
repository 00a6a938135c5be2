package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tickdesk-io/tickdesk/pkg/model"
	"github.com/tickdesk-io/tickdesk/pkg/triage"
)

// Messages bridging controller callbacks into the program loop.
type (
	// BrowseMsg carries a list fetch progress update.
	BrowseMsg triage.BrowseUpdate
	// SuggestMsg carries a suggestion engine state change.
	SuggestMsg triage.SuggestUpdate
	// StatsMsg carries a stats fetch progress update.
	StatsMsg triage.StatsUpdate
)

// submitDoneMsg reports an intake submission outcome.
type submitDoneMsg struct {
	ticket model.Ticket
	err    error
}

// yankedMsg confirms a ticket id copied to the clipboard.
type yankedMsg struct {
	id string
}

// Relay forwards controller callbacks into a running program. Callbacks
// can fire from debounce timers and fetch goroutines before the program
// exists, so messages are buffered until Attach.
type Relay struct {
	mu      sync.Mutex
	program *tea.Program
	backlog []tea.Msg
}

// NewRelay creates an unattached relay.
func NewRelay() *Relay {
	return &Relay{}
}

// Attach binds the relay to the program and flushes buffered messages.
func (r *Relay) Attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	backlog := r.backlog
	r.backlog = nil
	r.mu.Unlock()

	for _, msg := range backlog {
		p.Send(msg)
	}
}

// Send delivers msg to the program, buffering if not yet attached.
func (r *Relay) Send(msg tea.Msg) {
	r.mu.Lock()
	p := r.program
	if p == nil {
		r.backlog = append(r.backlog, msg)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(msg)
}
