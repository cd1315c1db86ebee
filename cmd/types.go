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

func kindToString(kind string) string {
	switch kind {
	case schema.KindScalar:
		return "scalar"
	case schema.KindObject:
		return "type"
	case schema.KindInterface:
		return "interface"
	case schema.KindUnion:
		return "union"
	case schema.KindEnum:
		return "enum"
	case schema.KindInputObject:
		return "input"
	default:
		return strings.ToLower(kind)
	}
}

var validKinds = map[string]string{
	"scalar":    schema.KindScalar,
	"type":      schema.KindObject,
	"object":    schema.KindObject,
	"interface": schema.KindInterface,
	"union":     schema.KindUnion,
	"enum":      schema.KindEnum,
	"input":     schema.KindInputObject,
}

func formatTypeText(t TypeInfo) string {
	kind := kindToString(t.Kind)
	if t.Description != "" {
		return fmt.Sprintf("%s %s # %s", kind, t.Name, oneLine(t.Description))
	}
	return fmt.Sprintf("%s %s", kind, t.Name)
}

func formatTypesPretty(types []TypeInfo) string {
	tbl := makeTable()

	for _, t := range types {
		tbl.Row(kindToString(t.Kind), t.Name, oneLine(t.Description))
	}
	tbl.Headers("kind", "name", "description")

	return tbl.String()
}

func formatTypesMarkdown(types []TypeInfo) string {
	tbl := makeMarkdownTable()

	for _, t := range types {
		tbl.Row(kindToString(t.Kind), "`"+t.Name+"`", strings.ReplaceAll(oneLine(t.Description), "|", `\|`))
	}
	tbl.Headers("Kind", "Name", "Description")

	return tbl.String()
}

type typesOptions struct {
	implements    string
	hasField      []string
	kind          []string
	usedBy        []string
	introspection bool
}

// typesUsedBy returns the base types of a type's fields, arguments and
// input fields.
func typesUsedBy(t *schema.TypeDefinition) map[string]bool {
	used := make(map[string]bool)
	for _, f := range t.Fields {
		used[schema.BaseTypeName(f.Type)] = true
		for _, a := range f.Args {
			used[schema.BaseTypeName(a.Type)] = true
		}
	}
	for _, f := range t.InputFields {
		used[schema.BaseTypeName(f.Type)] = true
	}
	return used
}

func (o *typesOptions) matches(t *schema.TypeDefinition, usedBy []map[string]bool) bool {
	if t.Introspection() && !o.introspection {
		return false
	}
	if len(o.kind) > 0 && !slices.ContainsFunc(o.kind, func(k string) bool { return validKinds[strings.ToLower(k)] == t.Kind }) {
		return false
	}
	if o.implements != "" && !slices.Contains(refNames(t.Interfaces), o.implements) {
		return false
	}
	for _, name := range o.hasField {
		if _, ok := t.Field(name); !ok {
			return false
		}
	}
	for _, used := range usedBy {
		if !used[t.Name] {
			return false
		}
	}
	return true
}

func refNames(refs []schema.TypeRef) []string {
	return pluck(refs, func(r schema.TypeRef) string { return schema.BaseTypeName(&r) })
}

func NewTypesCmd(conn *connectionFlags) *cobra.Command {
	opts := &typesOptions{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Lists all types in the schema",
		Long: `Lists all types in the schema with optional filtering.

Shows the type's kind (enum, type, input, etc.) and the type name.
Introspection types (__Type, __Field, ...) are hidden unless --introspection is set.

Output formats:
  text      "type Package", "enum SpeedTier", etc. (default when piping)
  json      [{"name": "Package", "kind": "OBJECT", "description": "..."}, ...]
  pretty    Formatted table with columns (default in terminal)
  markdown  Markdown table

Multiple filters can be combined and are applied with AND logic.`,
		Example: `  # Find all types that could be returned by the API
  gqlx types --kind type --kind interface

  # Find input types used by Query
  gqlx types --kind input --used-by Query

  # Find all types implementing Node
  gqlx types --implements Node

  # Pipe to other tools
  gqlx types --kind type -f json | jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, conn, opts)
		},
	}

	cmd.Flags().StringVar(&opts.implements, "implements", "", "Filter to types that implement the given interface")
	cmd.Flags().StringArrayVar(&opts.hasField, "has-field", nil, "Filter to types that have the given field (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&opts.kind, "kind", nil, "Filter to types of the given kind: scalar, type, interface, union, enum, input (if specified multiple times, applied using OR logic)")
	cmd.Flags().StringArrayVar(&opts.usedBy, "used-by", nil, "Filter to types used by the given type (AND logic when specified multiple times)")
	cmd.Flags().BoolVar(&opts.introspection, "introspection", false, "Include introspection types")

	return cmd
}

func runTypes(cmd *cobra.Command, conn *connectionFlags, opts *typesOptions) error {
	for _, k := range opts.kind {
		if _, ok := validKinds[strings.ToLower(k)]; !ok {
			return fmt.Errorf("unknown kind '%s'", k)
		}
	}

	s, err := conn.loadSchema(cmd.Context())
	if err != nil {
		return err
	}

	if opts.implements != "" {
		iface, err := validateTypeExists(s, opts.implements, "interface")
		if err != nil {
			return err
		}
		if iface.Kind != schema.KindInterface {
			return fmt.Errorf("'%s' is not an interface (it's a %s)", opts.implements, kindToString(iface.Kind))
		}
	}

	var usedBy []map[string]bool
	for _, name := range opts.usedBy {
		def, err := validateTypeExists(s, name, "type")
		if err != nil {
			return err
		}
		usedBy = append(usedBy, typesUsedBy(def))
	}

	var types []TypeInfo
	for i := range s.Types {
		t := &s.Types[i]
		if !opts.matches(t, usedBy) {
			continue
		}
		types = append(types, TypeInfo{Name: t.Name, Kind: t.Kind, Description: t.Description})
	}

	renderer := render.Renderer[TypeInfo]{
		Data:           types,
		TextFormat:     formatTypeText,
		PrettyFormat:   formatTypesPretty,
		MarkdownFormat: formatTypesMarkdown,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
