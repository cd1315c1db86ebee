/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telogical/gqlx/pkg/render"
	"github.com/telogical/gqlx/pkg/schema"
)

type valuesOptions struct {
	deprecated     bool
	hasDescription bool
}

func formatValueName(v ValueInfo) string {
	if v.EnumName != "" {
		return v.EnumName + "." + v.Name
	}
	return v.Name
}

func formatValueText(v ValueInfo) string {
	name := formatValueName(v)
	if v.Description != "" {
		return fmt.Sprintf("%s # %s", name, oneLine(v.Description))
	}
	return name
}

func formatValuesPretty(values []ValueInfo) string {
	t := makeTable()

	for _, v := range values {
		t.Row(formatValueName(v), oneLine(v.Description))
	}
	t.Headers("value", "description")

	return t.String()
}

func formatValuesMarkdown(values []ValueInfo) string {
	t := makeMarkdownTable()

	for _, v := range values {
		t.Row("`"+formatValueName(v)+"`", strings.ReplaceAll(oneLine(v.Description), "|", `\|`))
	}
	t.Headers("Value", "Description")

	return t.String()
}

func isEnum(t *schema.TypeDefinition) bool {
	return t.Kind == schema.KindEnum
}

func NewValuesCmd(conn *connectionFlags) *cobra.Command {
	opts := &valuesOptions{}

	cmd := &cobra.Command{
		Use:               "values [enum]",
		Short:             "Lists values of an enum type.",
		ValidArgsFunction: conn.completeTypeNames(isEnum),
		Args:              cobra.MaximumNArgs(1),
		Long: `Lists values of an enum type in the schema.

If an enum is specified, only values for that enum are shown.
If no enum is specified, all enum values for all enums are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(cmd, args, conn, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated values")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show values that have a description")

	return cmd
}

func runValues(cmd *cobra.Command, args []string, conn *connectionFlags, opts *valuesOptions) error {
	s, err := conn.loadSchema(cmd.Context())
	if err != nil {
		return err
	}

	var values []ValueInfo
	collect := func(t *schema.TypeDefinition, qualify bool) {
		for _, v := range t.EnumValues {
			if opts.deprecated && !v.IsDeprecated {
				continue
			}
			if opts.hasDescription && v.Description == "" {
				continue
			}
			info := ValueInfo{Name: v.Name, Description: v.Description, Deprecated: v.IsDeprecated}
			if qualify {
				info.EnumName = t.Name
			}
			values = append(values, info)
		}
	}

	if len(args) == 0 {
		for i := range s.Types {
			if isEnum(&s.Types[i]) && !s.Types[i].Introspection() {
				collect(&s.Types[i], true)
			}
		}
	} else {
		enumName := args[0]
		def, ok := s.Type(enumName)
		if !ok {
			var enumNames []string
			for i := range s.Types {
				if isEnum(&s.Types[i]) {
					enumNames = append(enumNames, s.Types[i].Name)
				}
			}
			if suggestion := findClosest(enumName, enumNames); suggestion != "" {
				return fmt.Errorf("enum '%s' does not exist in schema, did you mean '%s'?", enumName, suggestion)
			}
			return fmt.Errorf("enum '%s' does not exist in schema", enumName)
		}
		if !isEnum(def) {
			return fmt.Errorf("'%s' is not an enum (it's a %s)", enumName, kindToString(def.Kind))
		}
		collect(def, false)
	}

	if len(values) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No values found that match the filters.")
	}

	renderer := render.Renderer[ValueInfo]{
		Data:           values,
		TextFormat:     formatValueText,
		PrettyFormat:   formatValuesPretty,
		MarkdownFormat: formatValuesMarkdown,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
