package triage

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/tickdesk-io/tickdesk/pkg/api"
	"github.com/tickdesk-io/tickdesk/pkg/model"
)

func TestSubmitBlankTitleFailsFast(t *testing.T) {
	store := &fakeStore{}
	c := NewIntake(store, nil, testWindow, nil)
	c.SetDescription("The search page returns a blank screen on every query.")
	settle()

	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := SubmitErrorMessage(err); got != MsgTitleRequired {
		t.Errorf("message = %q, want %q", got, MsgTitleRequired)
	}
	if n := len(store.created()); n != 0 {
		t.Errorf("expected no network call, got %d creates", n)
	}
}

func TestSubmitBlankDescriptionFailsFast(t *testing.T) {
	store := &fakeStore{}
	c := NewIntake(store, nil, testWindow, nil)
	c.SetTitle("Search broken")

	_, err := c.Submit(context.Background())
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := SubmitErrorMessage(err); got != MsgDescriptionRequired {
		t.Errorf("message = %q, want %q", got, MsgDescriptionRequired)
	}
	if n := len(store.created()); n != 0 {
		t.Errorf("expected no network call, got %d creates", n)
	}
}

func TestSubmitSuccessResetsDraftAndFiresEventOnce(t *testing.T) {
	created := sampleTicket("9", "Search broken")
	store := &fakeStore{
		createFn: func(d model.Draft) (model.Ticket, error) {
			return created, nil
		},
	}
	events := NewDispatcher()
	var fired atomic.Int32
	events.Subscribe(EventTicketCreated, func(e Event) {
		fired.Add(1)
		if e.Ticket == nil || e.Ticket.ID != "9" {
			t.Errorf("event ticket = %+v", e.Ticket)
		}
	})

	c := NewIntake(store, events, testWindow, nil)
	c.SetTitle("Search broken")
	c.SetDescription("The search page returns a blank screen on every query.")
	c.SetCategory(model.CategoryTechnical)
	c.SetPriority(model.PriorityHigh)

	ticket, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ticket.ID != "9" {
		t.Errorf("ticket ID = %q", ticket.ID)
	}

	draft := c.Draft()
	want := model.NewDraft()
	if draft != want {
		t.Errorf("draft after submit = %+v, want %+v", draft, want)
	}
	if c.Suggestion() != nil {
		t.Error("suggestion should be cleared after submit")
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("refresh event fired %d times, want exactly 1", got)
	}
}

func TestSubmitStoreValidationMessageConcatenation(t *testing.T) {
	store := &fakeStore{
		createFn: func(model.Draft) (model.Ticket, error) {
			return model.Ticket{}, &api.ValidationError{Fields: map[string][]string{
				"title":    {"Ensure this field has no more than 200 characters."},
				"category": {"Invalid category."},
			}}
		},
	}
	c := NewIntake(store, nil, testWindow, nil)
	c.SetTitle("A title")
	c.SetDescription("A description long enough to be meaningful here.")

	_, err := c.Submit(context.Background())
	want := "Invalid category. Ensure this field has no more than 200 characters."
	if got := SubmitErrorMessage(err); got != want {
		t.Errorf("message = %q, want %q", got, want)
	}
}

func TestSubmitTransportFailureGenericMessage(t *testing.T) {
	store := &fakeStore{
		createFn: func(model.Draft) (model.Ticket, error) {
			return model.Ticket{}, &api.TransportError{Op: "create ticket", Err: errors.New("connection refused")}
		},
	}
	c := NewIntake(store, nil, testWindow, nil)
	c.SetTitle("A title")
	c.SetDescription("A description long enough to be meaningful here.")

	_, err := c.Submit(context.Background())
	if got := SubmitErrorMessage(err); got != MsgCreateFailed {
		t.Errorf("message = %q, want %q", got, MsgCreateFailed)
	}
	if draft := c.Draft(); draft.Title != "A title" {
		t.Error("draft must survive a failed submit")
	}
}

func TestSuggestionBecomesDraftDefault(t *testing.T) {
	store := &fakeStore{
		classifyFn: func(string) (model.Suggestion, error) {
			return model.Suggestion{Category: model.CategoryBilling, Priority: model.PriorityHigh}, nil
		},
	}
	c := NewIntake(store, nil, testWindow, nil)
	c.SetDescription("I was charged twice for the same subscription renewal.")
	settle()

	draft := c.Draft()
	if draft.Category != model.CategoryBilling || draft.Priority != model.PriorityHigh {
		t.Errorf("draft = %+v, suggestion should have become the default", draft)
	}
	if c.Suggestion() == nil {
		t.Error("suggestion should be held for display")
	}
}

func TestManualPickSurvivesSupersededSuggestion(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	store := &fakeStore{
		classifyFn: func(string) (model.Suggestion, error) {
			started <- struct{}{}
			<-release
			return model.Suggestion{Category: model.CategoryBilling, Priority: model.PriorityCritical}, nil
		},
	}
	c := NewIntake(store, nil, testWindow, nil)

	c.SetDescription("I was charged twice for the same subscription renewal.")
	<-started

	// The user edits the text (superseding the in-flight request) and
	// then picks a category by hand.
	c.SetDescription("short")
	c.SetCategory(model.CategoryAccount)
	close(release)
	settle()

	if got := c.Draft().Category; got != model.CategoryAccount {
		t.Errorf("category = %q, the late suggestion must not revert a manual pick", got)
	}
}

func TestSetTitleCapsLength(t *testing.T) {
	c := NewIntake(&fakeStore{}, nil, testWindow, nil)
	long := make([]rune, 0, 250)
	for i := 0; i < 250; i++ {
		long = append(long, 'x')
	}
	c.SetTitle(string(long))
	if got := c.Draft().TitleLen(); got != model.MaxTitleLen {
		t.Errorf("title length = %d, want %d", got, model.MaxTitleLen)
	}
}
