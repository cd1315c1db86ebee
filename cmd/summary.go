/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/render"
	"github.com/telogical/gqlx/pkg/schema"
)

func summaryCategories(sum schema.Summary) [][2]string {
	return [][2]string{
		{"objects", strings.Join(sum.ObjectTypes, ", ")},
		{"inputs", strings.Join(sum.InputTypes, ", ")},
		{"enums", strings.Join(sum.EnumTypes, ", ")},
		{"interfaces", strings.Join(sum.InterfaceTypes, ", ")},
		{"unions", strings.Join(sum.UnionTypes, ", ")},
		{"scalars", strings.Join(sum.ScalarTypes, ", ")},
		{"directives", strings.Join(sum.Directives, ", ")},
	}
}

func summaryRoots(sum schema.Summary) string {
	roots := []string{"query: " + sum.QueryRoot}
	if sum.MutationRoot != "" {
		roots = append(roots, "mutation: "+sum.MutationRoot)
	}
	if sum.SubscriptionRoot != "" {
		roots = append(roots, "subscription: "+sum.SubscriptionRoot)
	}
	return strings.Join(roots, ", ")
}

func summaryCounts(sum schema.Summary) string {
	kinds := make([]string, 0, len(sum.TypeCounts))
	for k := range sum.TypeCounts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	counts := make([]string, len(kinds))
	for i, k := range kinds {
		counts[i] = fmt.Sprintf("%s=%d", k, sum.TypeCounts[k])
	}
	return strings.Join(counts, " ")
}

func formatSummaryText(sum schema.Summary) string {
	lines := []string{"roots: " + summaryRoots(sum), "counts: " + summaryCounts(sum)}
	for _, c := range summaryCategories(sum) {
		if c[1] != "" {
			lines = append(lines, c[0]+": "+c[1])
		}
	}
	return strings.Join(lines, "\n")
}

func formatSummaryPretty(sums []schema.Summary) string {
	t := makeTable()
	for _, sum := range sums {
		t.Row("roots", summaryRoots(sum))
		t.Row("counts", summaryCounts(sum))
		for _, c := range summaryCategories(sum) {
			t.Row(c[0], c[1])
		}
	}
	t.Headers("category", "types")
	return t.String()
}

func formatSummaryMarkdown(sums []schema.Summary) string {
	t := makeMarkdownTable()
	for _, sum := range sums {
		t.Row("roots", summaryRoots(sum))
		t.Row("counts", summaryCounts(sum))
		for _, c := range summaryCategories(sum) {
			t.Row(c[0], c[1])
		}
	}
	t.Headers("Category", "Types")
	return t.String()
}

func NewSummaryCmd(conn *connectionFlags) *cobra.Command {
	var sdl bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarizes the schema's types and roots",
		Long: `Counts the schema's types by kind and lists their names by category,
along with the root operation types and directives.

With --sdl the schema is printed in GraphQL SDL instead. Introspection
types and built-in scalars are left out and argument defaults are not
carried over.`,
		Example: `  gqlx summary
  gqlx summary -s schema.json -f json
  gqlx summary --sdl > schema.graphql`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := conn.loadSchema(cmd.Context())
			if err != nil {
				return err
			}

			if sdl {
				out, err := s.SDL()
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}

			renderer := render.Renderer[schema.Summary]{
				Data:           []schema.Summary{schema.Summarize(s)},
				TextFormat:     formatSummaryText,
				PrettyFormat:   formatSummaryPretty,
				MarkdownFormat: formatSummaryMarkdown,
			}
			output, err := renderer.Render(outputFormat)
			if err != nil {
				return fmt.Errorf("error rendering output: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().BoolVar(&sdl, "sdl", false, "Print the schema as GraphQL SDL")

	return cmd
}
