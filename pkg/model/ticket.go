package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLen is the client-side cap on ticket titles, in runes.
// The store enforces its own limit; this is a UX guard.
const MaxTitleLen = 200

// Ticket is the persisted support-request record. The store assigns ID and
// CreatedAt at creation; both are immutable afterwards.
type Ticket struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks invariants that hold for every persisted ticket.
func (t *Ticket) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("ticket ID cannot be empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("ticket title cannot be empty")
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("ticket description cannot be empty")
	}
	return nil
}

// Status represents the triage state of a ticket. Transitions are
// unconstrained: any status may be replaced by any other.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// Statuses lists all recognized statuses in workflow order.
func Statuses() []Status {
	return []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}
}

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// Label returns a human-readable form ("in_progress" -> "In Progress").
// Unrecognized values from the store are rendered as-is rather than
// rejected.
func (s Status) Label() string {
	return titleize(string(s))
}

// Category classifies what a ticket is about.
type Category string

const (
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryAccount   Category = "account"
	CategoryGeneral   Category = "general"
)

// Categories lists all recognized categories.
func Categories() []Category {
	return []Category{CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral}
}

// IsValid returns true if the category is a recognized value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral:
		return true
	}
	return false
}

// Label returns a human-readable form.
func (c Category) Label() string {
	return titleize(string(c))
}

// Priority represents ticket urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists all recognized priorities, least urgent first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// IsValid returns true if the priority is a recognized value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Label returns a human-readable form.
func (p Priority) Label() string {
	return titleize(string(p))
}

// Draft is an unsaved ticket being composed in the intake form. It has no
// identity until the store accepts it.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
}

// NewDraft returns an empty draft with the intake defaults.
func NewDraft() Draft {
	return Draft{Category: CategoryGeneral, Priority: PriorityLow}
}

// TitleLen reports the title length in runes, for the 0/200 counter.
func (d Draft) TitleLen() int {
	return utf8.RuneCountInString(d.Title)
}

// Suggestion is a classifier-produced category/priority pair. It is
// advisory: the user's explicit selections always win.
type Suggestion struct {
	Category Category `json:"suggested_category"`
	Priority Priority `json:"suggested_priority"`
}

// FilterQuery narrows a ticket list fetch. Zero-valued fields are omitted
// from the request entirely rather than sent as wildcards.
type FilterQuery struct {
	Category Category
	Priority Priority
	Status   Status
	Search   string
}

// IsZero reports whether no filter is active.
func (q FilterQuery) IsZero() bool {
	return q.Category == "" && q.Priority == "" && q.Status == "" && q.Search == ""
}

// StatsSnapshot is the precomputed aggregate view served by the store.
// The client derives ratios from it but never mutates it.
type StatsSnapshot struct {
	TotalTickets      int              `json:"total_tickets"`
	OpenTickets       int              `json:"open_tickets"`
	AvgTicketsPerDay  float64          `json:"avg_tickets_per_day"`
	PriorityBreakdown map[Priority]int `json:"priority_breakdown"`
	CategoryBreakdown map[Category]int `json:"category_breakdown"`
}

func titleize(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(p)
		parts[i] = strings.ToUpper(string(r)) + p[size:]
	}
	return strings.Join(parts, " ")
}
