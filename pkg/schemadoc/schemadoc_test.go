package schemadoc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telogical/gqlx/pkg/schema"
	"github.com/telogical/gqlx/pkg/schemadoc"
)

const planSchema = `{
  "data": {
    "__schema": {
      "queryType": {"name": "Query"},
      "mutationType": null,
      "types": [
        {"kind": "OBJECT", "name": "Query", "fields": [
          {"name": "findPlan", "description": "Look up a plan",
           "args": [{"name": "filter", "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "INPUT_OBJECT", "name": "PlanFilter"}}}],
           "type": {"kind": "OBJECT", "name": "Plan"}}
        ]},
        {"kind": "INPUT_OBJECT", "name": "PlanFilter", "inputFields": [
          {"name": "zip", "type": {"kind": "SCALAR", "name": "String"}}
        ]},
        {"kind": "OBJECT", "name": "Plan", "fields": [
          {"name": "id", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "ID"}}},
          {"name": "title", "args": [], "type": {"kind": "SCALAR", "name": "String"}}
        ]},
        {"kind": "SCALAR", "name": "String"},
        {"kind": "SCALAR", "name": "ID"}
      ]
    }
  }
}`

// returnFields extracts the bullet entries of the first Return Fields block.
func returnFields(t *testing.T, doc string) []string {
	t.Helper()
	_, rest, ok := strings.Cut(doc, "**Return Fields:**\n\n")
	require.True(t, ok)
	block, _, _ := strings.Cut(rest, "\n\n")
	return strings.Split(block, "\n")
}

func TestGenerate_RoundTrip(t *testing.T) {
	doc, err := schemadoc.Generate([]byte(planSchema))
	require.NoError(t, err)

	assert.Contains(t, doc, "## Query: findPlan")
	assert.Contains(t, doc, "Look up a plan")
	assert.Contains(t, doc, "`PlanFilter!`")
	assert.Contains(t, doc, "**Return Type:** `Plan`")
	assert.Equal(t, []string{"- `id`", "- `title`"}, returnFields(t, doc))

	assert.Contains(t, doc, "#### Inputs")
	assert.Contains(t, doc, "##### PlanFilter")
	assert.Contains(t, doc, "#### Objects")
	assert.Contains(t, doc, "##### Plan")
	assert.Contains(t, doc, "No mutations available.")
}

func TestGenerate_FailsFast(t *testing.T) {
	for _, payload := range []string{`{"data": {}}`, `{"data": {"__schema": {"queryType": {"name": "Query"}}}}`, `nope`} {
		doc, err := schemadoc.Generate([]byte(payload))
		assert.Error(t, err)
		assert.Empty(t, doc)
	}
}

func TestRender_NoArgumentsMarker(t *testing.T) {
	s, err := schema.New("Query", "", "", []schema.TypeDefinition{
		{Kind: schema.KindObject, Name: "Query", Fields: []schema.Field{
			{Name: "providerCount", Type: schema.Named(schema.KindScalar, "Int")},
		}},
		{Kind: schema.KindScalar, Name: "Int"},
	}, nil)
	require.NoError(t, err)

	doc := schemadoc.Render(s)
	assert.Contains(t, doc, "**Arguments:** None")
	assert.NotContains(t, doc, "### Arguments")
	assert.Equal(t, []string{"- (fields not available in introspection)"}, returnFields(t, doc))
}

func TestRender_UnresolvableReturnType(t *testing.T) {
	s, err := schema.New("Query", "", "", []schema.TypeDefinition{
		{Kind: schema.KindObject, Name: "Query", Fields: []schema.Field{
			{Name: "ghost", Type: schema.NonNull(schema.Named(schema.KindObject, "Missing"))},
			{Name: "broken", Type: schema.List(nil)},
		}},
	}, nil)
	require.NoError(t, err)

	doc := schemadoc.Render(s)
	assert.Contains(t, doc, "**Return Type:** `Missing!`")
	assert.Contains(t, doc, "**Return Type:** `[null]`")
	assert.Equal(t, 2, strings.Count(doc, "fields not available in introspection"))
}

func TestRender_Fixture(t *testing.T) {
	payload, err := os.ReadFile(filepath.Join("..", "..", "testdata", "telecom.json"))
	require.NoError(t, err)

	doc, err := schemadoc.Generate(payload)
	require.NoError(t, err)

	assert.Contains(t, doc, "# Queries")
	assert.Contains(t, doc, "## Query: packages")
	assert.Contains(t, doc, "## Mutation: savePackage")
	assert.Contains(t, doc, "**Return Type:** `[Package!]!`")
	assert.Contains(t, doc, "Enum Values:")
	assert.Contains(t, doc, "Possible Types:")
	assert.Contains(t, doc, "- `Provider`")
	assert.Contains(t, doc, "A broadband offer sold in a market")
	assert.Contains(t, doc, "|")
}
