package diagnostic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestRenderSnippet(t *testing.T) {
	result := RenderSnippet("query { market }", 3, 9, 6, "unknown field")

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "3")
	assert.Contains(t, lines[0], "query { market }")
	assert.Contains(t, lines[1], "^^^^^^")
	assert.Contains(t, lines[1], "unknown field")
}

func TestRenderSnippet_ClampsColumnAndLength(t *testing.T) {
	result := stripAnsi(RenderSnippet("test", 1, 0, 0, ""))
	assert.Equal(t, "1 | test\n  | ^", result)
}

func TestRenderSnippet_CaretAlignment(t *testing.T) {
	lines := strings.Split(stripAnsi(RenderSnippet("ab cde fgh", 5, 4, 3, "")), "\n")
	assert.Equal(t, "  |    ^^^", lines[1])
}

func TestRenderSnippet_WideGutter(t *testing.T) {
	lines := strings.Split(stripAnsi(RenderSnippet("code", 1234, 1, 4, "")), "\n")
	assert.Equal(t, "1234 | code", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "     | "), "underline gutter should match line number width")
}

func TestRenderLocation(t *testing.T) {
	assert.Contains(t, RenderLocation("batch.graphql", 3, 9), "batch.graphql:3:9")
	assert.Contains(t, RenderLocation("stdin", 1, 23), "-->")
}

func TestRenderFailure(t *testing.T) {
	result := stripAnsi(RenderFailure("query_2", "http-error", 502, "bad gateway\n<html>...</html>"))
	assert.Equal(t, "✗ query_2 [http-error 502] bad gateway …", result)

	result = stripAnsi(RenderFailure("slow", "timeout", 0, "the query execution timed out after 30s"))
	assert.Equal(t, "✗ slow [timeout] the query execution timed out after 30s", result)
}

func TestRenderGraphQLErrors(t *testing.T) {
	result := stripAnsi(RenderGraphQLErrors("custom1", gqlerror.List{
		{Message: "Cannot query field \"foo\""},
		{Message: "not authorized", Path: ast.Path{ast.PathName("market"), ast.PathName("zipCodes")}},
	}))

	lines := strings.Split(result, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "custom1 returned 2 GraphQL error(s)")
	assert.Contains(t, lines[1], "Cannot query field")
	assert.Contains(t, lines[2], "not authorized at market.zipCodes")
}

// stripAnsi removes ANSI escape codes for testing
func stripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
