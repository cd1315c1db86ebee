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

var validRelations = []string{"field", "input-field", "argument", "implemented-by", "implements", "member", "member-of"}

type relatedOptions struct {
	relation string
	inType   string
}

func formatRelationText(r RelationInfo) string {
	if r.Type == "" {
		return fmt.Sprintf("%s %s", r.Relation, r.Location)
	}
	return fmt.Sprintf("%s %s: %s", r.Relation, r.Location, r.Type)
}

func formatRelationsPretty(rels []RelationInfo) string {
	t := makeTable()

	for _, r := range rels {
		t.Row(r.Relation, r.Location, r.Type)
	}
	t.Headers("relation", "location", "type")

	return t.String()
}

func formatRelationsMarkdown(rels []RelationInfo) string {
	t := makeMarkdownTable()

	for _, r := range rels {
		typ := ""
		if r.Type != "" {
			typ = "`" + r.Type + "`"
		}
		t.Row(r.Relation, "`"+r.Location+"`", typ)
	}
	t.Headers("Relation", "Location", "Type")

	return t.String()
}

// relationRows flattens Relationships into one row per edge.
func relationRows(rel schema.Relationships) []RelationInfo {
	var rows []RelationInfo
	uses := func(relation string, list []schema.FieldUse) {
		for _, u := range list {
			rows = append(rows, RelationInfo{Relation: relation, Location: u.TypeName + "." + u.FieldName, Type: u.Type})
		}
	}
	names := func(relation string, list []string) {
		for _, n := range list {
			rows = append(rows, RelationInfo{Relation: relation, Location: n})
		}
	}

	uses("field", rel.FieldsUsingType)
	uses("input-field", rel.InputFieldsUsingType)
	uses("argument", rel.ArgumentsUsingType)
	names("implemented-by", rel.ImplementingTypes)
	names("implements", rel.ImplementedInterfaces)
	names("member", rel.UnionMembers)
	names("member-of", rel.MemberOfUnions)
	return rows
}

func NewRelatedCmd(conn *connectionFlags) *cobra.Command {
	opts := &relatedOptions{}

	cmd := &cobra.Command{
		Use:   "related <type>",
		Short: "Shows how a type is connected to the rest of the schema",
		Long: `Shows where a type is used and how it relates to other types:
fields returning it, input fields and arguments of that type, the
interfaces it implements or the types implementing it, and union links.

This is useful for understanding the impact of changes to a type, finding
all entry points to a type, or exploring the schema structure.

Relations:
  field           Type.field returns the type
  input-field     Input.field has the type
  argument        Type.field.arg has the type
  implemented-by  (interfaces) an object implementing it
  implements      (objects) an interface it implements
  member          (unions) a possible type
  member-of       a union containing the type

Output formats:
  text      "field Query.packages: [Package!]!" (default when piping)
  json      [{"relation": "field", "location": "Query.packages", "type": "[Package!]!"}, ...]
  pretty    Formatted table with columns (default in terminal)
  markdown  Markdown table`,
		Example: `  # Everything connected to Package
  gqlx related Package -s schema.json

  # Only arguments of type PackageFilter
  gqlx related PackageFilter --relation argument

  # Only references from the Query type
  gqlx related Package --in Query`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: conn.completeTypeNames(nil),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRelated(cmd, args, conn, opts)
		},
	}

	cmd.Flags().StringVar(&opts.relation, "relation", "", "Filter by relation: field, input-field, argument, implemented-by, implements, member, member-of")
	cmd.Flags().StringVar(&opts.inType, "in", "", "Only show field, input-field and argument relations from the specified type")

	return cmd
}

func runRelated(cmd *cobra.Command, args []string, conn *connectionFlags, opts *relatedOptions) error {
	if opts.relation != "" && !slices.Contains(validRelations, opts.relation) {
		return fmt.Errorf("--relation must be one of %v, got '%s'", validRelations, opts.relation)
	}

	s, err := conn.loadSchema(cmd.Context())
	if err != nil {
		return err
	}

	if _, err := validateTypeExists(s, args[0], "type"); err != nil {
		return err
	}
	if opts.inType != "" {
		if _, err := validateTypeExists(s, opts.inType, "type"); err != nil {
			return err
		}
	}

	rel, err := schema.FindRelationships(s, args[0])
	if err != nil {
		return err
	}

	rows := filterSlice(relationRows(rel), func(r RelationInfo) bool {
		if opts.relation != "" && r.Relation != opts.relation {
			return false
		}
		if opts.inType != "" {
			return r.Type != "" && hasTypePrefix(r.Location, opts.inType)
		}
		return true
	})

	if len(rows) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No relations found.")
	}

	renderer := render.Renderer[RelationInfo]{
		Data:           rows,
		TextFormat:     formatRelationText,
		PrettyFormat:   formatRelationsPretty,
		MarkdownFormat: formatRelationsMarkdown,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func hasTypePrefix(location, typeName string) bool {
	return strings.HasPrefix(location, typeName+".")
}
