package cmd_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telogical/gqlx/cmd"
	"github.com/telogical/gqlx/pkg/introspection"
)

func TestIntrospect_PrintsData(t *testing.T) {
	b := fixtureBackend(t)

	stdout, _, err := runOnline(t, b, "introspect", "types_only", "-f", "text")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"__schema": {`)

	req, _ := b.request(0)
	assert.Contains(t, req.Query, "__schema")
	assert.Nil(t, req.Variables)
}

func TestIntrospect_TypeDetails(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request, _ graphqlRequest) {
		_, _ = w.Write([]byte(`{"data": {"__type": {"name": "Package", "kind": "OBJECT"}}}`))
	})

	stdout, _, err := runOnline(t, b, "introspect", "type_details", "--type", "Package", "-f", "json")
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "type_details", res["mode"])
	assert.Equal(t, "Package", res["typeName"])
	assert.Equal(t, "success", res["status"])
	assert.Equal(t, "introspection_type_details", res["queryId"])

	req, _ := b.request(0)
	assert.Equal(t, map[string]any{"typeName": "Package"}, req.Variables)
}

func TestIntrospect_TypeDetailsRequiresType(t *testing.T) {
	b := fixtureBackend(t)

	_, _, err := runOnline(t, b, "introspect", "type_details")
	require.ErrorIs(t, err, introspection.ErrMissingTypeName)
	assert.Zero(t, b.count())
}

func TestIntrospect_UnknownMode(t *testing.T) {
	b := fixtureBackend(t)

	_, _, err := runOnline(t, b, "introspect", "everything")
	require.ErrorIs(t, err, introspection.ErrUnknownMode)
	assert.Zero(t, b.count())
}

func TestIntrospect_PrintOnly(t *testing.T) {
	clearEnv(t)

	stdout, _, err := cmd.ExecuteWithArgs([]string{"introspect", "mutations-only", "--print"})
	require.NoError(t, err)
	assert.Contains(t, stdout, "mutationType")
}

func TestIntrospect_HTTPFailure(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter, _ *http.Request, _ graphqlRequest) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad token"))
	})

	stdout, stderr, err := runOnline(t, b, "introspect", "full_schema", "-f", "text")
	require.ErrorIs(t, err, cmd.ErrQueriesFailed)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "http-error")
	assert.Contains(t, stderr, "bad token")
}
