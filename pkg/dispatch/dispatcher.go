// Package dispatch sends batches of GraphQL queries to one endpoint
// concurrently and collects a keyed, per-query outcome for each of them.
//
// A batch is validated up front. Once it passes, every query runs in its own
// goroutine under its own timeout; a failing query only affects its own
// Outcome and Execute returns after all of them have settled.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTimeout = 30 * time.Second

	PlaceholderEndpoint  = "YOUR_GRAPHQL_ENDPOINT_HERE"
	PlaceholderAuthToken = "YOUR_AUTH_TOKEN_HERE"
	PlaceholderLocale    = "YOUR_LOCALE_HERE"
)

// ErrNotConfigured is returned before any request when the endpoint is unset
// or still holds its placeholder value.
var ErrNotConfigured = errors.New("graphql endpoint not configured")

// Config is the connection settings shared by every query of a Dispatcher.
type Config struct {
	Endpoint  string
	AuthToken string
	Locale    string
	Timeout   time.Duration
}

// CheckConfigured reports ErrNotConfigured for a missing or placeholder endpoint.
func (c Config) CheckConfigured() error {
	if c.Endpoint == "" || c.Endpoint == PlaceholderEndpoint {
		return fmt.Errorf("%w: set TELOGICAL_GRAPHQL_ENDPOINT or pass --endpoint", ErrNotConfigured)
	}
	return nil
}

type Option func(*Dispatcher)

// WithHTTPClient replaces the default client. Its Timeout should be left at
// zero; the per-query timeout is applied through the request context.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		d.client = client
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithConcurrencyLimit caps the number of queries in flight. Zero, the
// default, sends the whole batch at once.
func WithConcurrencyLimit(n int) Option {
	return func(d *Dispatcher) {
		d.limit = n
	}
}

// Dispatcher is safe for concurrent use. Its configuration is fixed at
// construction; build a new one to point at a different endpoint.
type Dispatcher struct {
	cfg     Config
	client  *http.Client
	logger  *slog.Logger
	metrics *Metrics
	limit   int
}

func New(cfg Config, opts ...Option) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	d := &Dispatcher{
		cfg:    cfg,
		client: &http.Client{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}

	if cfg.Endpoint == PlaceholderEndpoint {
		d.logger.Warn("using placeholder GraphQL endpoint")
	}
	if cfg.AuthToken == PlaceholderAuthToken {
		d.logger.Warn("using placeholder auth token, authentication may fail")
	}
	return d
}

func (d *Dispatcher) Config() Config {
	return d.cfg
}

// Execute normalizes the batch and runs every query concurrently. The error
// is non-nil only for batch-level problems (validation or configuration), in
// which case no request has been made.
func (d *Dispatcher) Execute(ctx context.Context, inputs []Input) (Results, error) {
	specs, err := Normalize(inputs)
	if err != nil {
		return nil, err
	}
	if err := d.cfg.CheckConfigured(); err != nil {
		return nil, err
	}
	return d.run(ctx, specs), nil
}

// ExecuteOne runs a single query with the same timeout and error taxonomy
// as a batch element.
func (d *Dispatcher) ExecuteOne(ctx context.Context, spec QuerySpec) (Outcome, error) {
	specs, err := Normalize([]Input{Spec(spec)})
	if err != nil {
		return Outcome{}, err
	}
	if err := d.cfg.CheckConfigured(); err != nil {
		return Outcome{}, err
	}
	return d.run(ctx, specs)[specs[0].ID], nil
}

func (d *Dispatcher) run(ctx context.Context, specs []QuerySpec) Results {
	batchID := uuid.NewString()
	logger := d.logger.With("batch_id", batchID)
	logger.Debug("dispatching batch", "queries", len(specs))
	d.metrics.batchStarted()

	outcomes := make([]Outcome, len(specs))

	var g errgroup.Group
	if d.limit > 0 {
		g.SetLimit(d.limit)
	}
	for i, spec := range specs {
		g.Go(func() error {
			outcomes[i] = d.execute(ctx, logger, batchID, spec)
			return nil
		})
	}
	_ = g.Wait()

	results := make(Results, len(outcomes))
	for _, o := range outcomes {
		results[o.QueryID] = o
	}
	logger.Debug("batch settled", "queries", len(specs), "failed", results.Failed())
	return results
}

func (d *Dispatcher) execute(ctx context.Context, logger *slog.Logger, batchID string, spec QuerySpec) (out Outcome) {
	start := time.Now()
	d.metrics.queryStarted()

	defer func() {
		if r := recover(); r != nil {
			out = failure(spec.ID, KindException, fmt.Sprint(r))
			out.ErrorType = "panic"
		}
		elapsed := time.Since(start)
		d.metrics.queryFinished(out, elapsed)
		if !out.Succeeded() {
			logger.Error("query failed",
				"query_id", spec.ID,
				"error_kind", out.ErrorKind,
				"status_code", out.StatusCode,
				"details", out.Details)
			return
		}
		logger.Debug("query succeeded", "query_id", spec.ID, "duration", elapsed, "graphql_errors", len(out.GraphQLErrors))
	}()

	return d.post(ctx, batchID, spec)
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors,omitempty"`
}

// graphQLErrors decodes a response's errors array. Elements that are not
// shaped like GraphQL errors are kept, with their text (or raw JSON) as the
// message, so a malformed errors entry never costs the caller the data.
func graphQLErrors(raw json.RawMessage) gqlerror.List {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var list gqlerror.List
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return gqlerror.List{{Message: string(raw)}}
	}
	list = make(gqlerror.List, 0, len(items))
	for _, item := range items {
		var e gqlerror.Error
		if err := json.Unmarshal(item, &e); err == nil && e.Message != "" {
			list = append(list, &e)
			continue
		}
		var text string
		if err := json.Unmarshal(item, &text); err == nil {
			list = append(list, &gqlerror.Error{Message: text})
			continue
		}
		var obj struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(item, &obj); err == nil && obj.Message != "" {
			list = append(list, &gqlerror.Error{Message: obj.Message})
			continue
		}
		list = append(list, &gqlerror.Error{Message: string(item)})
	}
	return list
}

func (d *Dispatcher) post(parent context.Context, batchID string, spec QuerySpec) Outcome {
	ctx, cancel := context.WithTimeout(parent, d.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(request{Query: spec.Query, Variables: spec.Variables})
	if err != nil {
		return exception(spec.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return exception(spec.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", d.cfg.AuthToken)
	req.Header.Set("Locale", d.cfg.Locale)
	req.Header.Set("X-Request-ID", batchID)

	resp, err := d.client.Do(req)
	if err != nil {
		return d.transportFailure(parent, spec.ID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return d.transportFailure(parent, spec.ID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out := failure(spec.ID, KindHTTPError, string(raw))
		out.StatusCode = resp.StatusCode
		return out
	}

	var payload response
	if err := json.Unmarshal(raw, &payload); err != nil {
		return exception(spec.ID, fmt.Errorf("decoding response body: %w", err))
	}
	data := payload.Data
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	return Outcome{
		QueryID:       spec.ID,
		Status:        StatusSuccess,
		Data:          data,
		GraphQLErrors: graphQLErrors(payload.Errors),
	}
}

// transportFailure classifies a failed round trip. A deadline that belongs
// to the caller's context is reported as such rather than as the per-query
// timeout.
func (d *Dispatcher) transportFailure(parent context.Context, queryID string, err error) Outcome {
	if isTimeout(err) {
		if cause := parent.Err(); cause != nil {
			return failure(queryID, KindTimeout, fmt.Sprintf("the caller's deadline expired before the query completed: %v", cause))
		}
		return failure(queryID, KindTimeout, fmt.Sprintf("the query execution timed out after %s", d.cfg.Timeout))
	}

	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}
	out := failure(queryID, KindClientError, err.Error())
	out.ErrorType = fmt.Sprintf("%T", cause)
	return out
}

func exception(queryID string, err error) Outcome {
	out := failure(queryID, KindException, err.Error())
	out.ErrorType = fmt.Sprintf("%T", errors.Unwrap(err))
	if out.ErrorType == "<nil>" {
		out.ErrorType = fmt.Sprintf("%T", err)
	}
	return out
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
