/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/render"
	"github.com/telogical/gqlx/pkg/schema"
)

type fieldsOptions struct {
	deprecated     bool
	hasArg         []string
	returns        string
	required       bool
	nullable       bool
	name           string
	nameRegex      string
	hasDescription bool
}

func fieldToInfo(f *schema.Field) FieldInfo {
	var args []ArgumentInfo
	for _, a := range f.Args {
		info := ArgumentInfo{Name: a.Name, Type: schema.ResolveTypeRef(a.Type)}
		if a.DefaultValue != nil {
			info.DefaultValue = *a.DefaultValue
		}
		args = append(args, info)
	}

	return FieldInfo{
		Name:              f.Name,
		Arguments:         args,
		Type:              schema.ResolveTypeRef(f.Type),
		Description:       f.Description,
		DeprecationReason: f.DeprecationReason,
	}
}

func formatFieldName(field FieldInfo, format render.Format) string {
	name := field.Name
	if field.TypeName != "" {
		name = field.TypeName + "." + field.Name
	}

	if len(field.Arguments) == 0 {
		return name
	}

	var args []string
	for _, arg := range field.Arguments {
		a := fmt.Sprintf("%s: %s", arg.Name, arg.Type)
		if arg.DefaultValue != "" {
			a += " = " + arg.DefaultValue
		}
		args = append(args, a)
	}

	if format == render.FormatPretty {
		return fmt.Sprintf("%s(\n\t\t%s\n\t)", name, strings.Join(args, ",\n\t\t"))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func formatFieldText(field FieldInfo) string {
	desc := ""
	if field.Description != "" {
		desc = " # " + oneLine(field.Description)
	}
	return fmt.Sprintf("%s: %s%s", formatFieldName(field, render.FormatText), field.Type, desc)
}

func formatFieldsPretty(fields []FieldInfo) string {
	t := makeTable()

	for _, field := range fields {
		t.Row(formatFieldName(field, render.FormatPretty), field.Type, oneLine(field.Description))
	}
	t.Headers("field", "type", "description")

	return t.String()
}

func formatFieldsMarkdown(fields []FieldInfo) string {
	t := makeMarkdownTable()

	for _, field := range fields {
		t.Row("`"+formatFieldName(field, render.FormatMarkdown)+"`", "`"+field.Type+"`", strings.ReplaceAll(oneLine(field.Description), "|", `\|`))
	}
	t.Headers("Field", "Type", "Description")

	return t.String()
}

func (o *fieldsOptions) matches(f *schema.Field, nameRegex *regexp.Regexp) bool {
	if o.deprecated && !f.IsDeprecated {
		return false
	}
	for _, argName := range o.hasArg {
		found := false
		for _, a := range f.Args {
			if a.Name == argName {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if o.returns != "" && schema.BaseTypeName(f.Type) != o.returns {
		return false
	}
	nonNull := f.Type != nil && f.Type.Kind == schema.KindNonNull
	if o.required && !nonNull {
		return false
	}
	if o.nullable && nonNull {
		return false
	}
	if o.hasDescription && f.Description == "" {
		return false
	}
	if o.name != "" {
		if matched, _ := filepath.Match(o.name, f.Name); !matched {
			return false
		}
	}
	if nameRegex != nil && !nameRegex.MatchString(f.Name) {
		return false
	}
	return true
}

func NewFieldsCmd(conn *connectionFlags) *cobra.Command {
	opts := &fieldsOptions{}

	cmd := &cobra.Command{
		Use:               "fields [type]",
		Short:             "Lists fields on a type or across all types",
		ValidArgsFunction: conn.completeTypeNames(func(t *schema.TypeDefinition) bool { return len(t.Fields) > 0 }),
		Args:              cobra.MaximumNArgs(1),
		Long: `Lists fields on a type or across all types with optional filtering.

If a type is specified, shows fields for that type only.
If no type is specified, shows all fields prefixed with their type (Package.id, Market.name, etc).
Arguments are shown with their defaults.

Output formats:
  text      "name: String! # Description", "id: ID!", etc. (default when piping)
  json      [{"name": "id", "type": "ID!", "description": "..."}, ...]
  pretty    Formatted table with columns (default in terminal)
  markdown  Markdown table

Multiple filters can be combined and are applied with AND logic.`,
		Example: `  # See all fields on a type
  gqlx fields Package

  # Find deprecated fields
  gqlx fields --deprecated

  # Find root fields that take a filter and return Package
  gqlx fields Query --has-arg filter --returns Package

  # Find fields ending in "Code"
  gqlx fields --name "*Code"

  # Find fields matching a regex pattern
  gqlx fields --name-regex "^(fetch|search)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd, args, conn, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated fields")
	cmd.Flags().StringArrayVar(&opts.hasArg, "has-arg", nil, "Filter to fields that have the given argument (can be specified multiple times)")
	cmd.Flags().StringVar(&opts.returns, "returns", "", "Filter to fields that return the given type")
	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required (non-null) fields")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show nullable fields")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter fields by name using a glob pattern (e.g., *Id, fetch*)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter fields by name using a regex pattern")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show fields that have a description")

	return cmd
}

func runFields(cmd *cobra.Command, args []string, conn *connectionFlags, opts *fieldsOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}

	var nameRegex *regexp.Regexp
	if opts.nameRegex != "" {
		var err error
		nameRegex, err = regexp.Compile(opts.nameRegex)
		if err != nil {
			return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
	}

	s, err := conn.loadSchema(cmd.Context())
	if err != nil {
		return err
	}

	var fields []FieldInfo
	collect := func(t *schema.TypeDefinition, qualify bool) {
		for i := range t.Fields {
			f := &t.Fields[i]
			if !opts.matches(f, nameRegex) {
				continue
			}
			info := fieldToInfo(f)
			if qualify {
				info.TypeName = t.Name
			}
			fields = append(fields, info)
		}
	}

	if len(args) == 0 {
		for i := range s.Types {
			if !s.Types[i].Introspection() {
				collect(&s.Types[i], true)
			}
		}
	} else {
		def, err := validateTypeExists(s, args[0], "type")
		if err != nil {
			return err
		}
		collect(def, false)
	}

	if len(fields) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No fields found that match the filters.")
	}

	renderer := render.Renderer[FieldInfo]{
		Data:           fields,
		TextFormat:     formatFieldText,
		PrettyFormat:   formatFieldsPretty,
		MarkdownFormat: formatFieldsMarkdown,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
