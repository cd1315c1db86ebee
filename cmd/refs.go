/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/render"
	"github.com/telogical/gqlx/pkg/schema"
)

var validGroups = []string{"inputs", "objects", "interfaces", "enums", "unions"}

type refsOptions struct {
	group []string
}

func formatReachableText(r ReachableType) string {
	if r.Description != "" {
		return fmt.Sprintf("%s %s # %s", r.Group, r.Name, oneLine(r.Description))
	}
	return fmt.Sprintf("%s %s", r.Group, r.Name)
}

func formatReachablePretty(types []ReachableType) string {
	t := makeTable()
	for _, r := range types {
		t.Row(r.Group, r.Name, kindToString(r.Kind), oneLine(r.Description))
	}
	t.Headers("group", "name", "kind", "description")
	return t.String()
}

func formatReachableMarkdown(types []ReachableType) string {
	t := makeMarkdownTable()
	for _, r := range types {
		t.Row(r.Group, "`"+r.Name+"`", kindToString(r.Kind), strings.ReplaceAll(oneLine(r.Description), "|", `\|`))
	}
	t.Headers("Group", "Name", "Kind", "Description")
	return t.String()
}

// splitFieldPath turns "Query.packages" into its parts. A bare field name
// is looked up on the query root.
func splitFieldPath(s *schema.Schema, path string) (typeName, fieldName string) {
	if t, f, ok := strings.Cut(path, "."); ok {
		return t, f
	}
	return s.QueryTypeName, path
}

func NewRefsCmd(conn *connectionFlags) *cobra.Command {
	opts := &refsOptions{}

	cmd := &cobra.Command{
		Use:   "refs <Type.field>",
		Short: "Lists every type reachable from a field",
		Long: `Walks the schema from a field's return type and argument types and lists
every type reachable from it, grouped as inputs, objects, interfaces, enums
and unions. Objects and interfaces are followed through their fields, inputs
through their input fields and unions through their members. Each type is
listed once, even when the schema is recursive.

A bare field name is looked up on the query root.

Output formats:
  text      "objects Package", "inputs PackageFilter" (default when piping)
  json      [{"group": "objects", "name": "Package", "kind": "OBJECT"}, ...]
  pretty    Formatted table with columns (default in terminal)
  markdown  Markdown table`,
		Example: `  # Types pulled in by Query.packages
  gqlx refs Query.packages -s schema.json

  # Only the input types needed to call a mutation
  gqlx refs Mutation.savePackage --group inputs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefs(cmd, args, conn, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.group, "group", nil, "Only show the given groups: inputs, objects, interfaces, enums, unions (OR logic)")

	return cmd
}

func runRefs(cmd *cobra.Command, args []string, conn *connectionFlags, opts *refsOptions) error {
	for _, g := range opts.group {
		if !slices.Contains(validGroups, strings.ToLower(g)) {
			return fmt.Errorf("--group must be one of %v, got '%s'", validGroups, g)
		}
	}

	s, err := conn.loadSchema(cmd.Context())
	if err != nil {
		return err
	}

	typeName, fieldName := splitFieldPath(s, args[0])
	def, err := validateTypeExists(s, typeName, "type")
	if err != nil {
		return err
	}
	field, ok := def.Field(fieldName)
	if !ok {
		names := pluck(def.Fields, func(f schema.Field) string { return f.Name })
		if suggestion := findClosest(fieldName, names); suggestion != "" {
			return fmt.Errorf("field '%s.%s' does not exist in schema, did you mean '%s.%s'?", typeName, fieldName, typeName, suggestion)
		}
		return fmt.Errorf("field '%s.%s' does not exist in schema", typeName, fieldName)
	}

	wanted := make(map[string]bool, len(opts.group))
	for _, g := range opts.group {
		wanted[strings.ToLower(g)] = true
	}

	var types []ReachableType
	for _, g := range s.CollectReferencedTypes(field).Groups() {
		label := strings.ToLower(g.Label)
		if len(wanted) > 0 && !wanted[label] {
			continue
		}
		for _, t := range g.Types {
			types = append(types, ReachableType{Group: label, Name: t.Name, Kind: t.Kind, Description: t.Description})
		}
	}

	if len(types) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No referenced types found.")
	}

	renderer := render.Renderer[ReachableType]{
		Data:           types,
		TextFormat:     formatReachableText,
		PrettyFormat:   formatReachablePretty,
		MarkdownFormat: formatReachableMarkdown,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
