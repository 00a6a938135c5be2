package triage

import (
	"sync"

	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// EventType identifies a cross-controller notification.
type EventType string

// EventTicketCreated fires once per successful ticket creation. The list
// and stats controllers re-fetch when they observe it.
const EventTicketCreated EventType = "ticket.created"

// Event is a notification passed between controllers.
type Event struct {
	Type   EventType
	Ticket *model.Ticket
}

// Handler handles a published event.
type Handler func(Event)

// Dispatcher is a synchronous in-process publisher. Handlers run on the
// publishing goroutine, so an event can never be coalesced away or
// observed after a dependent fetch it should have preceded.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[EventType][]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]Handler)}
}

// Publish invokes every handler registered for the event's type.
func (d *Dispatcher) Publish(event Event) {
	d.mu.RLock()
	handlers := append([]Handler{}, d.listeners[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Subscribe registers a handler for the given event type.
func (d *Dispatcher) Subscribe(eventType EventType, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners[eventType] = append(d.listeners[eventType], handler)
}
