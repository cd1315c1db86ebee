/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/diagnostic"
	"github.com/telogical/gqlx/pkg/dispatch"
	"github.com/telogical/gqlx/pkg/render"
)

// ErrQueriesFailed is returned after the results are printed when at least
// one query of the batch failed, so the process exits non-zero.
var ErrQueriesFailed = errors.New("one or more queries failed")

type queryOptions struct {
	file    string
	metrics bool
}

func outcomeDetail(o dispatch.Outcome) string {
	switch {
	case !o.Succeeded():
		kind := string(o.ErrorKind)
		if o.StatusCode > 0 {
			kind = fmt.Sprintf("%s %d", kind, o.StatusCode)
		}
		return kind + ": " + oneLine(o.Details)
	case len(o.GraphQLErrors) > 0:
		return fmt.Sprintf("%d GraphQL error(s): %s", len(o.GraphQLErrors), o.GraphQLErrors[0].Message)
	default:
		return string(o.Data)
	}
}

func outcomeRows(results dispatch.Results) []OutcomeRow {
	rows := make([]OutcomeRow, 0, len(results))
	for _, id := range results.IDs() {
		o := results[id]
		rows = append(rows, OutcomeRow{QueryID: id, Status: string(o.Status), Detail: outcomeDetail(o)})
	}
	return rows
}

func formatOutcomeText(r OutcomeRow) string {
	return fmt.Sprintf("%s\t%s\t%s", r.QueryID, r.Status, r.Detail)
}

func formatOutcomesPretty(rows []OutcomeRow) string {
	t := makeTable()
	for _, r := range rows {
		t.Row(r.QueryID, r.Status, r.Detail)
	}
	t.Headers("query", "status", "result")
	return t.String()
}

func formatOutcomesMarkdown(rows []OutcomeRow) string {
	t := makeMarkdownTable()
	for _, r := range rows {
		t.Row("`"+r.QueryID+"`", r.Status, strings.ReplaceAll(r.Detail, "|", `\|`))
	}
	t.Headers("Query", "Status", "Result")
	return t.String()
}

// readBatch decodes a JSON array whose elements are query strings or
// {"query", "queryId", "variables"} records. "-" reads stdin.
func readBatch(cmd *cobra.Command, path string) ([]dispatch.Input, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read batch file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var inputs []dispatch.Input
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, fmt.Errorf("batch must be a JSON array of strings or query records: %w", err)
	}
	return inputs, nil
}

func NewQueryCmd(conn *connectionFlags) *cobra.Command {
	opts := &queryOptions{}

	cmd := &cobra.Command{
		Use:   "query [QUERY...]",
		Short: "Runs a batch of GraphQL queries concurrently",
		Long: `Runs every query of a batch at the same time against the configured endpoint
and prints one outcome per query, keyed by its id.

Queries given as arguments get the ids query_1, query_2, ... by position.
With --file, the batch is a JSON array mixing query strings and records:

  ["{ __typename }", {"query": "{ market(dmaCode: \"501\") { name } }", "queryId": "nyc"}]

A record without queryId gets the positional id. When two records share an
id, the later one wins. A malformed batch is rejected before anything is sent.

Each query has its own timeout. A timeout, HTTP error or connection failure
is reported on that query only; GraphQL errors returned next to data are
reported on a successful outcome.

Output formats:
  text      "query_1	success	{...}" (default when piping)
  json      {"query_1": {"queryId": "query_1", "status": "success", "data": {...}}, ...}
  pretty    Formatted table with columns (default in terminal)
  markdown  Markdown table`,
		Example: `  # Two queries in parallel
  gqlx query '{ __typename }' '{ providerCount }'

  # A batch file, with metrics printed to stderr
  gqlx query --file batch.json --metrics -f json

  # From stdin
  echo '["{ providerCount }"]' | gqlx query --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, conn, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "JSON batch file, - for stdin")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print dispatcher metrics to stderr in Prometheus text format")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, conn *connectionFlags, opts *queryOptions) error {
	var inputs []dispatch.Input
	switch {
	case opts.file != "" && len(args) > 0:
		return fmt.Errorf("pass queries as arguments or with --file, not both")
	case opts.file != "":
		var err error
		inputs, err = readBatch(cmd, opts.file)
		if err != nil {
			return err
		}
	default:
		inputs = dispatch.Texts(args...)
	}

	var dispatchOpts []dispatch.Option
	reg := prometheus.NewRegistry()
	if opts.metrics {
		m := dispatch.NewMetrics()
		if err := m.Register(reg); err != nil {
			return err
		}
		dispatchOpts = append(dispatchOpts, dispatch.WithMetrics(m))
	}

	results, err := conn.newDispatcher(dispatchOpts...).Execute(cmd.Context(), inputs)
	if err != nil {
		return err
	}

	if err := printResults(cmd, results); err != nil {
		return err
	}

	if opts.metrics {
		if err := writeMetrics(cmd.ErrOrStderr(), reg); err != nil {
			return err
		}
	}

	if results.Failed() > 0 {
		return ErrQueriesFailed
	}
	return nil
}

func printResults(cmd *cobra.Command, results dispatch.Results) error {
	if outputFormat == render.FormatJSON {
		output, err := render.JSON(results)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	}

	renderer := render.Renderer[OutcomeRow]{
		Data:           outcomeRows(results),
		TextFormat:     formatOutcomeText,
		PrettyFormat:   formatOutcomesPretty,
		MarkdownFormat: formatOutcomesMarkdown,
	}
	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)

	if outputFormat == render.FormatPretty {
		for _, id := range results.IDs() {
			o := results[id]
			switch {
			case !o.Succeeded():
				fmt.Fprintln(cmd.ErrOrStderr(), diagnostic.RenderFailure(id, string(o.ErrorKind), o.StatusCode, o.Details))
			case len(o.GraphQLErrors) > 0:
				fmt.Fprintln(cmd.ErrOrStderr(), diagnostic.RenderGraphQLErrors(id, o.GraphQLErrors))
			}
		}
	}
	return nil
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
