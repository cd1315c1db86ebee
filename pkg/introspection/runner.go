package introspection

import (
	"context"
	"fmt"

	"github.com/telogical/gqlx/pkg/dispatch"
	"github.com/telogical/gqlx/pkg/schema"
)

// Executor is the single-query path of a dispatcher.
type Executor interface {
	ExecuteOne(ctx context.Context, spec dispatch.QuerySpec) (dispatch.Outcome, error)
}

// Result is the outcome of one introspection run. TypeName echoes the
// requested type for ModeTypeDetails.
type Result struct {
	dispatch.Outcome
	Mode     Mode   `json:"mode"`
	TypeName string `json:"typeName,omitempty"`
}

// Request builds the QuerySpec for a mode without sending it.
func Request(mode Mode, typeName string) (dispatch.QuerySpec, error) {
	doc, err := QueryText(mode, typeName)
	if err != nil {
		return dispatch.QuerySpec{}, err
	}
	return dispatch.QuerySpec{
		ID:        "introspection_" + string(mode),
		Query:     doc,
		Variables: Variables(mode, typeName),
	}, nil
}

// Run validates the mode parameters and executes the matching document.
// Invalid parameters return an error and nothing is sent.
func Run(ctx context.Context, exec Executor, mode Mode, typeName string) (Result, error) {
	spec, err := Request(mode, typeName)
	if err != nil {
		return Result{}, err
	}
	out, err := exec.ExecuteOne(ctx, spec)
	if err != nil {
		return Result{}, err
	}
	res := Result{Outcome: out, Mode: mode}
	if mode == ModeTypeDetails {
		res.TypeName = typeName
	}
	return res, nil
}

// FetchSchema runs the full_schema document and parses the response.
// Transport failures and responses without a schema are returned as errors.
func FetchSchema(ctx context.Context, exec Executor) (*schema.Schema, error) {
	res, err := Run(ctx, exec, ModeFullSchema, "")
	if err != nil {
		return nil, err
	}
	if !res.Succeeded() {
		return nil, fmt.Errorf("introspection failed (%s): %s", res.ErrorKind, res.Details)
	}
	if len(res.GraphQLErrors) > 0 && isNull(res.Data) {
		return nil, fmt.Errorf("introspection failed: %w", res.GraphQLErrors)
	}
	return schema.Parse(res.Data)
}

func isNull(data []byte) bool {
	return len(data) == 0 || string(data) == "null"
}
