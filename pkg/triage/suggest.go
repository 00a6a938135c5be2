package triage

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/tickdesk-io/tickdesk/pkg/debounce"
	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// MinClassifyLen is the minimum trimmed description length, in runes,
// before a classification request is worth issuing.
const MinClassifyLen = 10

// Classifier is the slice of the store the suggestion engine needs.
type Classifier interface {
	Classify(ctx context.Context, description string) (model.Suggestion, error)
}

// SuggestState is the engine's position in its lifecycle.
type SuggestState int

const (
	// SuggestIdle: no request pending beyond a possible debounce window.
	SuggestIdle SuggestState = iota
	// SuggestClassifying: exactly one classification request in flight.
	SuggestClassifying
	// SuggestSuggested: a suggestion for the current text is held.
	SuggestSuggested
)

// SuggestUpdate is pushed to the engine's owner on every state change.
type SuggestUpdate struct {
	State      SuggestState
	Suggestion *model.Suggestion // non-nil only in SuggestSuggested
}

// SuggestEngine converts description keystrokes into at most one in-flight
// classification request per settled edit. Responses for superseded text
// are dropped on arrival: last text wins, not last response.
type SuggestEngine struct {
	classifier Classifier
	debouncer  *debounce.Debouncer
	notify     func(SuggestUpdate)

	mu      sync.Mutex
	seq     uint64
	state   SuggestState
	current *model.Suggestion
}

// NewSuggestEngine creates an engine with the given quiet window. notify
// may be nil.
func NewSuggestEngine(classifier Classifier, window time.Duration, notify func(SuggestUpdate)) *SuggestEngine {
	if notify == nil {
		notify = func(SuggestUpdate) {}
	}
	return &SuggestEngine{
		classifier: classifier,
		debouncer:  debounce.New(window),
		notify:     notify,
	}
}

// TextChanged records a new description snapshot. Any held suggestion is
// cleared synchronously and any in-flight request is superseded. Text
// shorter than MinClassifyLen trimmed runes never triggers a request;
// otherwise one request is issued once the quiet window elapses.
func (e *SuggestEngine) TextChanged(text string) {
	e.mu.Lock()
	e.seq++
	seq := e.seq
	e.state = SuggestIdle
	e.current = nil
	e.mu.Unlock()

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < MinClassifyLen {
		e.debouncer.Cancel()
		e.notify(SuggestUpdate{State: SuggestIdle})
		return
	}

	e.notify(SuggestUpdate{State: SuggestIdle})
	e.debouncer.Trigger(func() {
		e.classify(seq, text)
	})
}

// Reset returns the engine to idle, discarding pending and in-flight work.
func (e *SuggestEngine) Reset() {
	e.debouncer.Cancel()
	e.mu.Lock()
	e.seq++
	e.state = SuggestIdle
	e.current = nil
	e.mu.Unlock()
	e.notify(SuggestUpdate{State: SuggestIdle})
}

// State returns the engine's current lifecycle position.
func (e *SuggestEngine) State() SuggestState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Current returns the held suggestion, or nil.
func (e *SuggestEngine) Current() *model.Suggestion {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	s := *e.current
	return &s
}

func (e *SuggestEngine) classify(seq uint64, text string) {
	e.mu.Lock()
	if seq != e.seq {
		e.mu.Unlock()
		return
	}
	e.state = SuggestClassifying
	e.mu.Unlock()
	e.notify(SuggestUpdate{State: SuggestClassifying})

	suggestion, err := e.classifier.Classify(context.Background(), text)

	e.mu.Lock()
	if seq != e.seq {
		// The text moved on while we were in flight. The response is
		// stale and must not be applied, success or not.
		e.mu.Unlock()
		return
	}
	if err != nil {
		// Classification failure is silent: no suggestion, nothing
		// blocked.
		e.state = SuggestIdle
		e.current = nil
		e.mu.Unlock()
		e.notify(SuggestUpdate{State: SuggestIdle})
		return
	}
	e.state = SuggestSuggested
	e.current = &suggestion
	e.mu.Unlock()
	e.notify(SuggestUpdate{State: SuggestSuggested, Suggestion: &suggestion})
}
