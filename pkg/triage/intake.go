package triage

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/tickdesk-io/tickdesk/pkg/api"
	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// Intake error strings shown to the user.
const (
	MsgTitleRequired       = "Title is required."
	MsgDescriptionRequired = "Description is required."
	MsgCreateFailed        = "Failed to create ticket. Please try again."
)

// Intake owns the draft ticket being composed. Description edits flow
// through the suggestion engine; a settled suggestion becomes the draft's
// category/priority default until the user picks something newer.
type Intake struct {
	store   Store
	suggest *SuggestEngine
	events  *Dispatcher

	mu         sync.Mutex
	draft      model.Draft
	suggestion *model.Suggestion
}

// NewIntake creates an intake controller. window is the classification
// quiet window (debounce.ClassifyDuration in production, shorter in
// tests). notify, which may be nil, observes suggestion engine changes
// after they have been folded into the draft.
func NewIntake(store Store, events *Dispatcher, window time.Duration, notify func(SuggestUpdate)) *Intake {
	c := &Intake{
		store:  store,
		events: events,
		draft:  model.NewDraft(),
	}
	c.suggest = NewSuggestEngine(store, window, func(u SuggestUpdate) {
		c.applySuggestion(u)
		if notify != nil {
			notify(u)
		}
	})
	return c
}

func (c *Intake) applySuggestion(u SuggestUpdate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestion = u.Suggestion
	if u.Suggestion != nil {
		// A default, not a lock: the engine only delivers suggestions
		// whose source text is still current, and the user can re-pick
		// either field afterwards.
		c.draft.Category = u.Suggestion.Category
		c.draft.Priority = u.Suggestion.Priority
	}
}

// SetTitle updates the draft title, capped at model.MaxTitleLen runes.
func (c *Intake) SetTitle(title string) {
	runes := []rune(title)
	if len(runes) > model.MaxTitleLen {
		title = string(runes[:model.MaxTitleLen])
	}
	c.mu.Lock()
	c.draft.Title = title
	c.mu.Unlock()
}

// SetDescription updates the draft description and feeds the suggestion
// engine.
func (c *Intake) SetDescription(description string) {
	c.mu.Lock()
	c.draft.Description = description
	c.mu.Unlock()
	c.suggest.TextChanged(description)
}

// SetCategory records an explicit category selection.
func (c *Intake) SetCategory(category model.Category) {
	c.mu.Lock()
	c.draft.Category = category
	c.mu.Unlock()
}

// SetPriority records an explicit priority selection.
func (c *Intake) SetPriority(priority model.Priority) {
	c.mu.Lock()
	c.draft.Priority = priority
	c.mu.Unlock()
}

// Draft returns a snapshot of the draft under composition.
func (c *Intake) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Suggestion returns the currently held suggestion, or nil.
func (c *Intake) Suggestion() *model.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.suggestion == nil {
		return nil
	}
	s := *c.suggestion
	return &s
}

// Classifying reports whether a classification request is in flight.
func (c *Intake) Classifying() bool {
	return c.suggest.State() == SuggestClassifying
}

// Submit validates the draft and creates the ticket. Blank title or
// description fails fast with a field-level message before any network
// call. On success the draft resets to its defaults, the suggestion is
// discarded, and a ticket-created event is published exactly once.
func (c *Intake) Submit(ctx context.Context) (model.Ticket, error) {
	c.mu.Lock()
	draft := c.draft
	c.mu.Unlock()

	if strings.TrimSpace(draft.Title) == "" {
		return model.Ticket{}, &api.ValidationError{
			Fields: map[string][]string{"title": {MsgTitleRequired}},
		}
	}
	if strings.TrimSpace(draft.Description) == "" {
		return model.Ticket{}, &api.ValidationError{
			Fields: map[string][]string{"description": {MsgDescriptionRequired}},
		}
	}

	ticket, err := c.store.Create(ctx, draft)
	if err != nil {
		return model.Ticket{}, err
	}

	c.mu.Lock()
	c.draft = model.NewDraft()
	c.suggestion = nil
	c.mu.Unlock()
	c.suggest.Reset()

	if c.events != nil {
		c.events.Publish(Event{Type: EventTicketCreated, Ticket: &ticket})
	}
	return ticket, nil
}

// SubmitErrorMessage maps a Submit failure to its user-facing string:
// the concatenated field messages for a validation rejection, a generic
// retry message otherwise.
func SubmitErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *api.ValidationError
	if errors.As(err, &ve) {
		return ve.Message()
	}
	return MsgCreateFailed
}
