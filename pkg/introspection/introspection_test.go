package introspection_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/telogical/gqlx/pkg/dispatch"
	"github.com/telogical/gqlx/pkg/introspection"
)

type fakeExecutor struct {
	calls []dispatch.QuerySpec
	out   dispatch.Outcome
	err   error
}

func (f *fakeExecutor) ExecuteOne(_ context.Context, spec dispatch.QuerySpec) (dispatch.Outcome, error) {
	f.calls = append(f.calls, spec)
	out := f.out
	out.QueryID = spec.ID
	return out, f.err
}

func TestParseMode(t *testing.T) {
	for _, mode := range introspection.Modes {
		got, err := introspection.ParseMode(string(mode))
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	got, err := introspection.ParseMode("Type-Details")
	require.NoError(t, err)
	assert.Equal(t, introspection.ModeTypeDetails, got)

	_, err = introspection.ParseMode("everything")
	require.ErrorIs(t, err, introspection.ErrUnknownMode)
	assert.Contains(t, err.Error(), "full_schema")
}

func TestQueryText_DocumentsParse(t *testing.T) {
	for _, mode := range introspection.Modes {
		t.Run(string(mode), func(t *testing.T) {
			doc, err := introspection.QueryText(mode, "Package")
			require.NoError(t, err)
			parsed, perr := parser.ParseQuery(&ast.Source{Name: string(mode), Input: doc})
			require.True(t, perr == nil, "%v", perr)
			assert.Len(t, parsed.Operations, 1)
		})
	}
}

func TestQueryText_TypeDetailsRequiresTypeName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := introspection.QueryText(introspection.ModeTypeDetails, name)
		assert.ErrorIs(t, err, introspection.ErrMissingTypeName)
	}

	_, err := introspection.QueryText(introspection.ModeFullSchema, "")
	assert.NoError(t, err)
}

func TestRequest(t *testing.T) {
	spec, err := introspection.Request(introspection.ModeTypeDetails, "Package")
	require.NoError(t, err)
	assert.Equal(t, "introspection_type_details", spec.ID)
	assert.Equal(t, map[string]any{"typeName": "Package"}, spec.Variables)
	assert.NotContains(t, spec.Query, "Package", "type name is passed as a variable")

	spec, err = introspection.Request(introspection.ModeTypesOnly, "ignored")
	require.NoError(t, err)
	assert.Nil(t, spec.Variables)
}

func TestRun_TypeDetailsWithoutTypeNameSendsNothing(t *testing.T) {
	exec := &fakeExecutor{}

	_, err := introspection.Run(context.Background(), exec, introspection.ModeTypeDetails, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typeName")
	assert.Empty(t, exec.calls)
}

func TestRun_EchoesTypeName(t *testing.T) {
	exec := &fakeExecutor{out: dispatch.Outcome{Status: dispatch.StatusSuccess, Data: json.RawMessage(`{"__type":{"name":"Package"}}`)}}

	res, err := introspection.Run(context.Background(), exec, introspection.ModeTypeDetails, "Package")
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "Package", res.TypeName)
	assert.Equal(t, introspection.ModeTypeDetails, res.Mode)
	assert.True(t, res.Succeeded())

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"typeName":"Package"`)
	assert.Contains(t, string(raw), `"status":"success"`)

	res, err = introspection.Run(context.Background(), exec, introspection.ModeQueriesOnly, "Package")
	require.NoError(t, err)
	assert.Empty(t, res.TypeName)
}

func TestRun_PassesErrorOutcomeThrough(t *testing.T) {
	exec := &fakeExecutor{out: dispatch.Outcome{Status: dispatch.StatusError, ErrorKind: dispatch.KindTimeout, Details: "slow"}}

	res, err := introspection.Run(context.Background(), exec, introspection.ModeTypesOnly, "")
	require.NoError(t, err)
	assert.Equal(t, dispatch.KindTimeout, res.ErrorKind)
}

func TestRun_NotConfigured(t *testing.T) {
	exec := &fakeExecutor{err: dispatch.ErrNotConfigured}

	_, err := introspection.Run(context.Background(), exec, introspection.ModeTypesOnly, "")
	assert.True(t, errors.Is(err, dispatch.ErrNotConfigured))
}

func TestFetchSchema(t *testing.T) {
	payload, err := os.ReadFile(filepath.Join("..", "..", "testdata", "telecom.json"))
	require.NoError(t, err)
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &envelope))

	exec := &fakeExecutor{out: dispatch.Outcome{Status: dispatch.StatusSuccess, Data: envelope.Data}}
	s, err := introspection.FetchSchema(context.Background(), exec)
	require.NoError(t, err)
	assert.Equal(t, "Query", s.QueryTypeName)
	require.Len(t, exec.calls, 1)
	assert.Equal(t, "introspection_full_schema", exec.calls[0].ID)
}

func TestFetchSchema_Failures(t *testing.T) {
	exec := &fakeExecutor{out: dispatch.Outcome{Status: dispatch.StatusError, ErrorKind: dispatch.KindHTTPError, Details: "HTTP 500"}}
	_, err := introspection.FetchSchema(context.Background(), exec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")

	exec = &fakeExecutor{out: dispatch.Outcome{
		Status:        dispatch.StatusSuccess,
		Data:          json.RawMessage("null"),
		GraphQLErrors: gqlerror.List{{Message: "introspection disabled"}},
	}}
	_, err = introspection.FetchSchema(context.Background(), exec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "introspection disabled")
}
