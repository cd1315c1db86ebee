/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/diagnostic"
	"github.com/telogical/gqlx/pkg/introspection"
	"github.com/telogical/gqlx/pkg/render"
)

type introspectOptions struct {
	typeName  string
	printOnly bool
}

func NewIntrospectCmd(conn *connectionFlags) *cobra.Command {
	opts := &introspectOptions{}

	modes := make([]string, len(introspection.Modes))
	for i, m := range introspection.Modes {
		modes[i] = string(m)
	}

	cmd := &cobra.Command{
		Use:   "introspect <mode>",
		Short: "Runs one of the built-in introspection queries",
		Long: `Runs a fixed introspection query against the endpoint.

Modes:
  full_schema     every type, field, argument and directive
  types_only      type names, kinds and descriptions
  queries_only    the query root's fields and all input fields
  mutations_only  the mutation root's fields
  type_details    one type in full, requires --type

With -f json the whole outcome is printed, including errors. Otherwise only
the response data is printed and failures go to stderr.`,
		Example: `  # Save the full schema for offline use with -s
  gqlx introspect full_schema -f json > schema.json

  # One type
  gqlx introspect type_details --type Package

  # Print the query text without sending it
  gqlx introspect queries_only --print`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: modes,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIntrospect(cmd, args, conn, opts)
		},
	}

	cmd.Flags().StringVar(&opts.typeName, "type", "", "Type name for the type_details mode")
	cmd.Flags().BoolVar(&opts.printOnly, "print", false, "Print the query document instead of running it")

	return cmd
}

func runIntrospect(cmd *cobra.Command, args []string, conn *connectionFlags, opts *introspectOptions) error {
	mode, err := introspection.ParseMode(args[0])
	if err != nil {
		return err
	}

	if opts.printOnly {
		doc, err := introspection.QueryText(mode, opts.typeName)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	}

	res, err := introspection.Run(cmd.Context(), conn.newDispatcher(), mode, opts.typeName)
	if err != nil {
		return err
	}

	if outputFormat == render.FormatJSON {
		output, err := render.JSON(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else if res.Succeeded() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, res.Data, "", "  "); err != nil {
			return fmt.Errorf("error rendering output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		if len(res.GraphQLErrors) > 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), diagnostic.RenderGraphQLErrors(res.QueryID, res.GraphQLErrors))
		}
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), diagnostic.RenderFailure(res.QueryID, string(res.ErrorKind), res.StatusCode, res.Details))
	}

	if !res.Succeeded() {
		return ErrQueriesFailed
	}
	return nil
}
