// Package triage holds the client-side core of the help desk: the intake
// form controller, the classification suggestion engine, the list
// filter/search controller with its status workflow, and the stats view.
// Everything here is presentation-agnostic; the UI layer is a thin shell
// over these controllers.
package triage

import (
	"context"

	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// Store is the remote ticket service as seen by the controllers.
// *api.Client satisfies it; tests substitute fakes.
type Store interface {
	List(ctx context.Context, q model.FilterQuery) ([]model.Ticket, error)
	Create(ctx context.Context, draft model.Draft) (model.Ticket, error)
	PatchStatus(ctx context.Context, id string, status model.Status) (model.Ticket, error)
	Stats(ctx context.Context) (model.StatsSnapshot, error)
	Classify(ctx context.Context, description string) (model.Suggestion, error)
}
