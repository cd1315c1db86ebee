package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyBatch is returned when a batch contains no queries.
	ErrEmptyBatch = errors.New("the queries list cannot be empty")
	// ErrInvalidQuery is returned when a batch element cannot be normalized.
	ErrInvalidQuery = errors.New("invalid query format")
)

// ValidationError identifies the batch element that failed normalization.
// Index is -1 for errors that concern the batch as a whole.
type ValidationError struct {
	Index  int
	Reason string
	err    error
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid batch: %s", e.Reason)
	}
	return fmt.Sprintf("invalid query at index %d: %s", e.Index, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

func invalidAt(index int, reason string) *ValidationError {
	return &ValidationError{Index: index, Reason: reason, err: ErrInvalidQuery}
}

// QuerySpec is one normalized query ready to be sent.
type QuerySpec struct {
	ID        string         `json:"queryId"`
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type inputKind int

const (
	inputInvalid inputKind = iota
	inputText
	inputSpec
	inputRecord
)

// Input is one element of a caller-supplied batch: a bare query string,
// a loosely typed record, or an already built QuerySpec. The zero value is
// rejected by Normalize.
type Input struct {
	kind   inputKind
	text   string
	spec   QuerySpec
	record map[string]any
	raw    string
}

// Text wraps a bare query document.
func Text(query string) Input {
	return Input{kind: inputText, text: query}
}

// Spec wraps a prepared QuerySpec. An empty ID is filled in by Normalize.
func Spec(spec QuerySpec) Input {
	return Input{kind: inputSpec, spec: spec}
}

// Record wraps a decoded object such as {"query": "...", "queryId": "..."}.
// The alias "query_id" is accepted for the identifier.
func Record(record map[string]any) Input {
	return Input{kind: inputRecord, record: record}
}

// Texts converts query strings into a batch.
func Texts(queries ...string) []Input {
	inputs := make([]Input, len(queries))
	for i, q := range queries {
		inputs[i] = Text(q)
	}
	return inputs
}

// UnmarshalJSON accepts a JSON string or object. Anything else is kept as an
// invalid element so Normalize can report its position in the batch.
func (in *Input) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		*in = Input{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*in = Text(s)
	case '{':
		var m map[string]any
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return err
		}
		*in = Record(m)
	default:
		*in = Input{kind: inputInvalid, raw: string(trimmed)}
	}
	return nil
}

// GeneratedID returns the identifier assigned to the element at a zero-based
// position when the caller supplies none.
func GeneratedID(index int) string {
	return fmt.Sprintf("query_%d", index+1)
}

// Normalize converts a batch into QuerySpecs. It fails on the first element
// that does not resolve to a non-empty query, so a malformed batch is never
// partially dispatched.
func Normalize(inputs []Input) ([]QuerySpec, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Index: -1, Reason: ErrEmptyBatch.Error(), err: ErrEmptyBatch}
	}

	specs := make([]QuerySpec, 0, len(inputs))
	for i, in := range inputs {
		spec, err := in.normalize(i)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func (in Input) normalize(index int) (QuerySpec, error) {
	var spec QuerySpec

	switch in.kind {
	case inputText:
		spec = QuerySpec{Query: in.text}
	case inputSpec:
		spec = in.spec
	case inputRecord:
		var err error
		spec, err = specFromRecord(index, in.record)
		if err != nil {
			return QuerySpec{}, err
		}
	default:
		reason := "expected a string or an object with a \"query\" field"
		if in.raw != "" {
			reason += ", got " + in.raw
		}
		return QuerySpec{}, invalidAt(index, reason)
	}

	if strings.TrimSpace(spec.Query) == "" {
		return QuerySpec{}, invalidAt(index, "query must be a non-empty string")
	}
	if spec.ID == "" {
		spec.ID = GeneratedID(index)
	}
	return spec, nil
}

func specFromRecord(index int, record map[string]any) (QuerySpec, error) {
	rawQuery, ok := record["query"]
	if !ok || rawQuery == nil {
		return QuerySpec{}, invalidAt(index, "missing required field \"query\"")
	}
	query, ok := rawQuery.(string)
	if !ok {
		return QuerySpec{}, invalidAt(index, fmt.Sprintf("field \"query\" must be a string, got %T", rawQuery))
	}

	spec := QuerySpec{Query: query}

	for _, key := range []string{"queryId", "query_id"} {
		rawID, ok := record[key]
		if !ok || rawID == nil {
			continue
		}
		id, ok := rawID.(string)
		if !ok {
			return QuerySpec{}, invalidAt(index, fmt.Sprintf("field %q must be a string, got %T", key, rawID))
		}
		spec.ID = id
		break
	}

	if rawVars, ok := record["variables"]; ok && rawVars != nil {
		vars, ok := rawVars.(map[string]any)
		if !ok {
			return QuerySpec{}, invalidAt(index, fmt.Sprintf("field \"variables\" must be an object, got %T", rawVars))
		}
		spec.Variables = vars
	}

	return spec, nil
}
