package triage

import (
	"context"
	"sync"
	"time"

	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// fakeStore is a scriptable Store for controller tests.
type fakeStore struct {
	mu            sync.Mutex
	listCalls     []model.FilterQuery
	createCalls   []model.Draft
	patchCalls    []string
	statsCalls    int
	classifyCalls []string

	listFn     func(model.FilterQuery) ([]model.Ticket, error)
	createFn   func(model.Draft) (model.Ticket, error)
	patchFn    func(string, model.Status) (model.Ticket, error)
	statsFn    func() (model.StatsSnapshot, error)
	classifyFn func(string) (model.Suggestion, error)
}

func (f *fakeStore) List(_ context.Context, q model.FilterQuery) ([]model.Ticket, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, q)
	fn := f.listFn
	f.mu.Unlock()
	if fn == nil {
		return nil, nil
	}
	return fn(q)
}

func (f *fakeStore) Create(_ context.Context, d model.Draft) (model.Ticket, error) {
	f.mu.Lock()
	f.createCalls = append(f.createCalls, d)
	fn := f.createFn
	f.mu.Unlock()
	if fn == nil {
		return model.Ticket{}, nil
	}
	return fn(d)
}

func (f *fakeStore) PatchStatus(_ context.Context, id string, s model.Status) (model.Ticket, error) {
	f.mu.Lock()
	f.patchCalls = append(f.patchCalls, id)
	fn := f.patchFn
	f.mu.Unlock()
	if fn == nil {
		return model.Ticket{}, nil
	}
	return fn(id, s)
}

func (f *fakeStore) Stats(_ context.Context) (model.StatsSnapshot, error) {
	f.mu.Lock()
	f.statsCalls++
	fn := f.statsFn
	f.mu.Unlock()
	if fn == nil {
		return model.StatsSnapshot{}, nil
	}
	return fn()
}

func (f *fakeStore) Classify(_ context.Context, description string) (model.Suggestion, error) {
	f.mu.Lock()
	f.classifyCalls = append(f.classifyCalls, description)
	fn := f.classifyFn
	f.mu.Unlock()
	if fn == nil {
		return model.Suggestion{}, nil
	}
	return fn(description)
}

func (f *fakeStore) classified() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.classifyCalls...)
}

func (f *fakeStore) listed() []model.FilterQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.FilterQuery{}, f.listCalls...)
}

func (f *fakeStore) created() []model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Draft{}, f.createCalls...)
}

// testWindow is a debounce window short enough to keep tests fast but
// long enough to observe coalescing.
const testWindow = 30 * time.Millisecond

// settle waits out a test debounce window plus scheduling slack.
func settle() {
	time.Sleep(5 * testWindow)
}

func sampleTicket(id, title string) model.Ticket {
	return model.Ticket{
		ID:          id,
		Title:       title,
		Description: "A sufficiently detailed description of the problem.",
		Category:    model.CategoryGeneral,
		Priority:    model.PriorityLow,
		Status:      model.StatusOpen,
		CreatedAt:   time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
	}
}
