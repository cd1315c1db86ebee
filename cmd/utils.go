package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/introspection"
	"github.com/telogical/gqlx/pkg/schema"
)

var tableStyle = lipgloss.NewStyle().PaddingRight(1)

func makeTable() *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return tableStyle
		})
}

// makeMarkdownTable renders GitHub-flavoured tables for -f markdown.
func makeMarkdownTable() *table.Table {
	return table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

const maxSuggestionDistance = 5

func findClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}

// validateTypeExists checks if a type exists in the schema and returns a helpful
// error with a "did you mean" suggestion if it doesn't.
// The label parameter is used to customize the error message (e.g., "type", "enum").
func validateTypeExists(s *schema.Schema, typeName, label string) (*schema.TypeDefinition, error) {
	if def, ok := s.Type(typeName); ok {
		return def, nil
	}
	if suggestion := findClosest(typeName, s.TypeNames()); suggestion != "" {
		return nil, fmt.Errorf("%s '%s' does not exist in schema, did you mean '%s'?", label, typeName, suggestion)
	}
	return nil, fmt.Errorf("%s '%s' does not exist in schema", label, typeName)
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

func pluck[T any](items []T, key func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, key(item))
	}
	return out
}

func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

// loadSchema reads the -s introspection file when given, otherwise runs the
// full_schema introspection query against the configured endpoint.
func (c *connectionFlags) loadSchema(ctx context.Context) (*schema.Schema, error) {
	if schemaFilePath == "" {
		s, err := introspection.FetchSchema(ctx, c.newDispatcher())
		if err != nil {
			return nil, fmt.Errorf("fetching schema: %w", err)
		}
		return s, nil
	}

	payload, err := os.ReadFile(schemaFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("schema file does not exist: %s", schemaFilePath)
		}
		return nil, err
	}
	s, err := schema.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", schemaFilePath, err)
	}
	return s, nil
}

// completeTypeNames offers schema type names matching the prefix typed so far.
// Completion only works offline, with -s.
func (c *connectionFlags) completeTypeNames(keep func(*schema.TypeDefinition) bool) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 || schemaFilePath == "" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		s, err := c.loadSchema(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		names := []string{}
		for i := range s.Types {
			t := &s.Types[i]
			if t.Introspection() || (keep != nil && !keep(t)) {
				continue
			}
			if strings.Contains(strings.ToLower(t.Name), strings.ToLower(toComplete)) {
				names = append(names, t.Name)
			}
		}
		sort.Strings(names)
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
