package dispatch

import (
	"encoding/json"
	"sort"

	"github.com/vektah/gqlparser/v2/gqlerror"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// ErrorKind classifies a failed query.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindClientError ErrorKind = "client-error"
	KindHTTPError   ErrorKind = "http-error"
	KindException   ErrorKind = "exception"
)

// Outcome is the result of one query. A success may still carry
// GraphQLErrors next to partial or null Data: the request was answered,
// just not cleanly.
type Outcome struct {
	QueryID       string          `json:"queryId"`
	Status        Status          `json:"status"`
	Data          json.RawMessage `json:"data,omitempty"`
	GraphQLErrors gqlerror.List   `json:"graphqlErrors,omitempty"`
	ErrorKind     ErrorKind       `json:"errorKind,omitempty"`
	ErrorType     string          `json:"errorType,omitempty"`
	StatusCode    int             `json:"statusCode,omitempty"`
	Details       string          `json:"details,omitempty"`
}

func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

func failure(queryID string, kind ErrorKind, details string) Outcome {
	return Outcome{
		QueryID:   queryID,
		Status:    StatusError,
		ErrorKind: kind,
		Details:   details,
	}
}

// Results maps query identifiers to outcomes. When a batch repeats an
// identifier, the outcome of the later element wins.
type Results map[string]Outcome

// IDs returns the identifiers in sorted order.
func (r Results) IDs() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Failed counts outcomes with an error status.
func (r Results) Failed() int {
	n := 0
	for _, o := range r {
		if !o.Succeeded() {
			n++
		}
	}
	return n
}
