/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/schemadoc"
)

func NewDocsCmd(conn *connectionFlags) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generates a markdown reference of every query and mutation",
		Long: `Generates a markdown document with one section per query and mutation
field: its arguments, return type, return fields, and every type reachable
from it with their fields, input fields, enum values and union members.

The document is always markdown; -f is ignored.`,
		Example: `  # From the live endpoint
  gqlx docs > SCHEMA.md

  # From a saved introspection result
  gqlx docs -s schema.json -o SCHEMA.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := conn.loadSchema(cmd.Context())
			if err != nil {
				return err
			}
			doc := schemadoc.Render(s)

			if outputPath == "" {
				fmt.Fprint(cmd.OutOrStdout(), doc)
				return nil
			}
			if err := os.WriteFile(outputPath, []byte(doc), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}
			logger.Info("schema document written", "path", outputPath, "bytes", len(doc))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to a file instead of stdout")

	return cmd
}
