// Package schemadoc renders a markdown reference for the query and mutation
// roots of an introspected schema. Each root field gets its arguments,
// return type and every type reachable from it.
package schemadoc

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/telogical/gqlx/pkg/schema"
)

const (
	noArguments        = "**Arguments:** None"
	fieldsNotAvailable = "- (fields not available in introspection)"
)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Generate parses an introspection payload and renders it. Payloads without
// a schema or a type list are rejected rather than rendered partially.
func Generate(payload []byte) (string, error) {
	s, err := schema.Parse(payload)
	if err != nil {
		return "", fmt.Errorf("generating schema document: %w", err)
	}
	return Render(s), nil
}

// Render writes the document for an already parsed schema.
func Render(s *schema.Schema) string {
	var b strings.Builder
	b.WriteString("# GraphQL Schema Documentation\n\n")
	b.WriteString("## Table of Contents\n\n")
	b.WriteString("- [Queries](#queries)\n")
	b.WriteString("- [Mutations](#mutations)\n\n")

	query, ok := s.QueryType()
	writeRoot(&b, s, "Queries", "Query", query, ok, "No queries found.")

	mutation, ok := s.MutationType()
	writeRoot(&b, s, "Mutations", "Mutation", mutation, ok, "No mutations available.")

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeRoot(b *strings.Builder, s *schema.Schema, title, label string, root *schema.TypeDefinition, ok bool, empty string) {
	fmt.Fprintf(b, "# %s\n\n", title)
	if !ok || len(root.Fields) == 0 {
		fmt.Fprintf(b, "%s\n\n", empty)
		return
	}
	for i := range root.Fields {
		writeField(b, s, label, &root.Fields[i])
	}
}

func writeField(b *strings.Builder, s *schema.Schema, label string, f *schema.Field) {
	fmt.Fprintf(b, "## %s: %s\n\n", label, f.Name)
	if f.Description != "" {
		fmt.Fprintf(b, "%s\n\n", f.Description)
	}

	if len(f.Args) == 0 {
		fmt.Fprintf(b, "%s\n\n", noArguments)
	} else {
		b.WriteString("### Arguments\n\n")
		rows := make([][]string, 0, len(f.Args))
		for _, a := range f.Args {
			rows = append(rows, []string{code(a.Name), code(schema.ResolveTypeRef(a.Type)), cell(a.Description)})
		}
		writeTable(b, []string{"Name", "Type", "Description"}, rows)
	}

	fmt.Fprintf(b, "**Return Type:** %s\n\n", code(schema.ResolveTypeRef(f.Type)))

	b.WriteString("**Return Fields:**\n\n")
	ret, ok := s.Type(schema.BaseTypeName(f.Type))
	if ok && len(ret.Fields) > 0 {
		for _, rf := range ret.Fields {
			fmt.Fprintf(b, "- %s\n", code(rf.Name))
		}
	} else {
		b.WriteString(fieldsNotAvailable + "\n")
	}
	b.WriteString("\n")

	b.WriteString("### Related Types\n\n")
	refs := s.CollectReferencedTypes(f)
	if refs.Len() == 0 {
		b.WriteString("None\n\n")
	}
	for _, g := range refs.Groups() {
		if len(g.Types) == 0 {
			continue
		}
		fmt.Fprintf(b, "#### %s\n\n", g.Label)
		for _, t := range g.Types {
			writeType(b, t)
		}
	}

	b.WriteString("---\n\n")
}

func writeType(b *strings.Builder, t *schema.TypeDefinition) {
	fmt.Fprintf(b, "##### %s\n\n", t.Name)
	if t.Description != "" {
		fmt.Fprintf(b, "%s\n\n", t.Description)
	}

	switch t.Kind {
	case schema.KindObject, schema.KindInterface:
		if len(t.Fields) == 0 {
			return
		}
		b.WriteString("Fields:\n\n")
		rows := make([][]string, 0, len(t.Fields))
		for _, f := range t.Fields {
			rows = append(rows, []string{code(f.Name), code(schema.ResolveTypeRef(f.Type)), cell(f.Description)})
		}
		writeTable(b, []string{"Name", "Type", "Description"}, rows)
	case schema.KindInputObject:
		if len(t.InputFields) == 0 {
			return
		}
		b.WriteString("Input Fields:\n\n")
		rows := make([][]string, 0, len(t.InputFields))
		for _, f := range t.InputFields {
			rows = append(rows, []string{code(f.Name), code(schema.ResolveTypeRef(f.Type)), cell(f.Description)})
		}
		writeTable(b, []string{"Name", "Type", "Description"}, rows)
	case schema.KindEnum:
		if len(t.EnumValues) == 0 {
			return
		}
		b.WriteString("Enum Values:\n\n")
		rows := make([][]string, 0, len(t.EnumValues))
		for _, v := range t.EnumValues {
			rows = append(rows, []string{code(v.Name), cell(v.Description)})
		}
		writeTable(b, []string{"Name", "Description"}, rows)
	case schema.KindUnion:
		if len(t.PossibleTypes) == 0 {
			return
		}
		b.WriteString("Possible Types:\n\n")
		for _, pt := range t.PossibleTypes {
			fmt.Fprintf(b, "- %s\n", code(pt.Name))
		}
		b.WriteString("\n")
	}
}

func writeTable(b *strings.Builder, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.MarkdownBorder()).
		BorderTop(false).
		BorderBottom(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.Render())
	b.WriteString("\n\n")
}

func code(s string) string {
	return "`" + s + "`"
}

// cell flattens a description so it fits in one markdown table cell.
func cell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
