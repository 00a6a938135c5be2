// Package api is the typed client for the remote ticket service. It is a
// thin request/response wrapper: no retries, no caching, failures
// propagate to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tickdesk-io/tickdesk/pkg/model"
)

// DefaultTimeout bounds every store request.
const DefaultTimeout = 10 * time.Second

// Client talks to the ticket service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the service rooted at baseURL (e.g.
// "http://localhost:8000/api").
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// List fetches tickets matching the query, newest first. Empty query
// fields are omitted from the request entirely.
func (c *Client) List(ctx context.Context, q model.FilterQuery) ([]model.Ticket, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", string(q.Category))
	}
	if q.Priority != "" {
		params.Set("priority", string(q.Priority))
	}
	if q.Status != "" {
		params.Set("status", string(q.Status))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	endpoint := c.baseURL + "/tickets/"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	body, err := c.do(ctx, "list tickets", http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	// The service returns either a bare array or a paginated envelope
	// with a "results" array.
	var tickets []model.Ticket
	if err := json.Unmarshal(body, &tickets); err == nil {
		return tickets, nil
	}
	var envelope struct {
		Results []model.Ticket `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Op: "list tickets", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return envelope.Results, nil
}

// Create submits a draft and returns the persisted ticket. A 400 response
// is decoded into a ValidationError carrying the store's field messages.
func (c *Client) Create(ctx context.Context, draft model.Draft) (model.Ticket, error) {
	var ticket model.Ticket
	body, err := c.do(ctx, "create ticket", http.MethodPost, c.baseURL+"/tickets/", draft, decodeValidation)
	if err != nil {
		return model.Ticket{}, err
	}
	if err := json.Unmarshal(body, &ticket); err != nil {
		return model.Ticket{}, &TransportError{Op: "create ticket", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return ticket, nil
}

// PatchStatus replaces a ticket's status and returns the full updated
// record; the store is authoritative for the whole object.
func (c *Client) PatchStatus(ctx context.Context, id string, status model.Status) (model.Ticket, error) {
	payload := map[string]model.Status{"status": status}
	endpoint := fmt.Sprintf("%s/tickets/%s/", c.baseURL, url.PathEscape(id))

	body, err := c.do(ctx, "update status", http.MethodPatch, endpoint, payload, func(status int, _ []byte) error {
		if status == http.StatusNotFound {
			return &NotFoundError{ID: id}
		}
		return nil
	})
	if err != nil {
		return model.Ticket{}, err
	}

	var ticket model.Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return model.Ticket{}, &TransportError{Op: "update status", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return ticket, nil
}

// Stats fetches the precomputed aggregate snapshot. All-or-nothing: there
// are no partial results.
func (c *Client) Stats(ctx context.Context) (model.StatsSnapshot, error) {
	body, err := c.do(ctx, "fetch stats", http.MethodGet, c.baseURL+"/tickets/stats/", nil, nil)
	if err != nil {
		return model.StatsSnapshot{}, err
	}
	var snap model.StatsSnapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return model.StatsSnapshot{}, &TransportError{Op: "fetch stats", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return snap, nil
}

// Classify asks the service's model for a category/priority suggestion.
// Callers must treat failure as "no suggestion", never as fatal.
func (c *Client) Classify(ctx context.Context, description string) (model.Suggestion, error) {
	payload := map[string]string{"description": description}
	body, err := c.do(ctx, "classify", http.MethodPost, c.baseURL+"/tickets/classify/", payload, nil)
	if err != nil {
		return model.Suggestion{}, err
	}
	var s model.Suggestion
	if err := json.Unmarshal(body, &s); err != nil {
		return model.Suggestion{}, &TransportError{Op: "classify", Err: fmt.Errorf("decoding response: %w", err)}
	}
	return s, nil
}

// errorMapper lets an operation translate specific non-2xx responses into
// typed errors before the generic TransportError fallback applies.
type errorMapper func(status int, body []byte) error

func (c *Client) do(ctx context.Context, op, method, endpoint string, payload any, mapErr errorMapper) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, &TransportError{Op: op, Err: err}
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	if mapErr != nil {
		if typed := mapErr(resp.StatusCode, body); typed != nil {
			return nil, typed
		}
	}
	return nil, &TransportError{Op: op, Status: resp.StatusCode}
}

// decodeValidation turns a 400 body of {"field": ["msg", ...], ...} into
// a ValidationError. Non-list values ({"detail": "msg"}) are accepted too.
func decodeValidation(status int, body []byte) error {
	if status != http.StatusBadRequest {
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil
	}

	fields := make(map[string][]string, len(raw))
	for name, v := range raw {
		switch val := v.(type) {
		case string:
			fields[name] = []string{val}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok {
					fields[name] = append(fields[name], s)
				}
			}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
