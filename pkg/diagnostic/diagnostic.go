// Package diagnostic renders terminal diagnostics: source snippets with an
// underline for query validation errors, and one-line summaries of failed
// or partially failed query outcomes.
package diagnostic

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

var (
	gutterStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	caretStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	idStyle      = lipgloss.NewStyle().Bold(true)
	kindStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

// RenderSnippet renders a source line with line number, gutter, and underline caret.
// Returns something like:
//
//	3 | query { market }
//	  |         ^^^^^^ error message here
func RenderSnippet(source string, lineNum int, column int, length int, message string) string {
	if length < 1 {
		length = 1
	}
	if column < 1 {
		column = 1
	}

	numStr := strconv.Itoa(lineNum)
	emptyGutter := strings.Repeat(" ", len(numStr))
	pipe := gutterStyle.Render("|")

	codeLine := gutterStyle.Render(numStr) + " " + pipe + " " + source

	msg := ""
	if message != "" {
		msg = " " + messageStyle.Render(message)
	}
	underLine := emptyGutter + " " + pipe + " " + strings.Repeat(" ", column-1) +
		caretStyle.Render(strings.Repeat("^", length)) + msg

	return codeLine + "\n" + underLine
}

// RenderLocation renders a location header like "--> batch.graphql:3:9"
func RenderLocation(filename string, line int, column int) string {
	loc := filename + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)
	return gutterStyle.Render("-->") + " " + loc
}

// RenderFailure renders one failed query, e.g.
//
//	✗ query_2 [http-error 502] bad gateway
func RenderFailure(queryID, kind string, statusCode int, details string) string {
	label := kind
	if statusCode > 0 {
		label = fmt.Sprintf("%s %d", kind, statusCode)
	}
	return messageStyle.Render("✗") + " " + idStyle.Render(queryID) + " " +
		kindStyle.Render("["+label+"]") + " " + firstLine(details)
}

// RenderGraphQLErrors lists the errors a backend returned next to data,
// one per line, with their path when present.
func RenderGraphQLErrors(queryID string, errs gqlerror.List) string {
	lines := make([]string, 0, len(errs)+1)
	lines = append(lines, kindStyle.Render("!")+" "+idStyle.Render(queryID)+" "+
		fmt.Sprintf("returned %d GraphQL error(s)", len(errs)))
	for _, e := range errs {
		line := "  " + gutterStyle.Render("-") + " " + e.Message
		if len(e.Path) > 0 {
			line += " " + gutterStyle.Render("at "+e.Path.String())
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " …"
	}
	return s
}
