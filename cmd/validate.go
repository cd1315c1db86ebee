/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/telogical/gqlx/pkg/diagnostic"
	"github.com/telogical/gqlx/pkg/render"
)

// ErrValidationFailed is returned when a query fails validation.
// This is a sentinel error that indicates the query is invalid,
// not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

func convertGQLErrors(errs gqlerror.List) []ValidationError {
	result := make([]ValidationError, 0, len(errs))
	for _, err := range errs {
		valErr := ValidationError{Message: err.Message, Rule: err.Rule}
		for _, loc := range err.Locations {
			valErr.Locations = append(valErr.Locations, Location{Line: loc.Line, Column: loc.Column})
		}
		result = append(result, valErr)
	}
	return result
}

// validateQuery parses and validates a document against the introspected
// schema. Parse errors are reported the same way as validation errors.
func validateQuery(queryContent string, target *ast.Schema) *ValidationResult {
	if _, errs := gqlparser.LoadQuery(target, queryContent); len(errs) > 0 {
		return &ValidationResult{Valid: false, Errors: convertGQLErrors(errs)}
	}
	return &ValidationResult{Valid: true}
}

// gqlparser locations carry a start position only. For rules whose message
// names the offending token we underline the whole token; anything else gets
// a single caret.

// Example: Cannot query field "zip" on type "Market".
var fieldsOnCorrectTypeRegex = regexp.MustCompile(`Cannot query field "([^"]+)" on type "([^"]+)"`)

func parseFieldsOnCorrectTypeError(message string) (fieldName, typeName string) {
	matches := fieldsOnCorrectTypeRegex.FindStringSubmatch(message)
	if len(matches) == 3 {
		return matches[1], matches[2]
	}
	return "", ""
}

func errorSpanLength(err ValidationError) int {
	if err.Rule == "FieldsOnCorrectType" {
		if fieldName, _ := parseFieldsOnCorrectTypeError(err.Message); fieldName != "" {
			return len(fieldName)
		}
	}
	return 1
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(err ValidationError, sourceContent string, sourceName string) string {
	if sourceName != "stdin" || !strings.Contains(sourceContent, `\!`) || len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := lines[loc.Line-1]
	col := loc.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gqlx validate\n" +
			"       query { ... }\n" +
			"       EOF"
	}
	return ""
}

// errorSuggestion returns a "did you mean" suggestion for the error, if applicable.
func errorSuggestion(err ValidationError, target *ast.Schema) string {
	if err.Rule != "FieldsOnCorrectType" {
		return ""
	}
	fieldName, typeName := parseFieldsOnCorrectTypeError(err.Message)
	def := target.Types[typeName]
	if fieldName == "" || def == nil {
		return ""
	}
	names := pluck(def.Fields, func(f *ast.FieldDefinition) string { return f.Name })
	if closest := findClosest(fieldName, names); closest != "" {
		return fmt.Sprintf("did you mean `%s`?", closest)
	}
	return ""
}

func formatValidationResultText(result *ValidationResult, sourceName string, sourceContent string, target *ast.Schema) string {
	if result.Valid {
		return "✓ Query is valid\n"
	}

	lines := strings.Split(sourceContent, "\n")

	var b strings.Builder
	if len(result.Errors) == 1 {
		b.WriteString("✗ Query has 1 error:\n")
	} else {
		fmt.Fprintf(&b, "✗ Query has %d errors:\n", len(result.Errors))
	}

	for _, err := range result.Errors {
		if len(err.Locations) == 0 {
			fmt.Fprintf(&b, "  %s\n", err.Message)
			continue
		}

		loc := err.Locations[0]
		b.WriteString(diagnostic.RenderLocation(sourceName, loc.Line, loc.Column) + "\n")
		if loc.Line > 0 && loc.Line <= len(lines) {
			b.WriteString(diagnostic.RenderSnippet(lines[loc.Line-1], loc.Line, loc.Column, errorSpanLength(err), err.Message) + "\n")
		}

		if help := detectZshEscapeIssue(err, sourceContent, sourceName); help != "" {
			b.WriteString("  = help: " + help + "\n")
		} else if help := errorSuggestion(err, target); help != "" {
			b.WriteString("  = help: " + help + "\n")
		}
	}

	return b.String()
}

func NewValidateCmd(conn *connectionFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Type-check a GraphQL query against the endpoint's schema",
		Long: `Validates a GraphQL query or mutation against the introspected schema
before it is sent, so mistakes show up with a source snippet instead of a
GraphQL error from the backend.

The query can be provided as a file path argument or piped via stdin.
The schema is fetched from the endpoint unless -s is given.

Exit codes:
  0 - Query is valid
  1 - Query has validation or parse errors

Output formats:
  text    Human-readable error messages with locations
  json    {"valid": bool, "errors": [...]}`,
		Example: `  # Validate from a file
  gqlx validate market.graphql

  # Validate from stdin against a saved schema
  echo '{ market(dmaCode: "501") { name } }' | gqlx validate -s schema.json

  # JSON output for CI integration
  gqlx validate market.graphql -f json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, conn)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, conn *connectionFlags) error {
	s, err := conn.loadSchema(cmd.Context())
	if err != nil {
		return err
	}
	target, err := s.AST()
	if err != nil {
		return fmt.Errorf("converting schema: %w", err)
	}

	querySource := "stdin"
	var content []byte
	if len(args) == 1 {
		querySource = args[0]
		content, err = os.ReadFile(querySource)
		if err != nil {
			return fmt.Errorf("failed to read query file: %w", err)
		}
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read from stdin: %w", err)
		}
	}

	result := validateQuery(string(content), target)

	if outputFormat == render.FormatJSON {
		output, err := render.JSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), formatValidationResultText(result, querySource, string(content), target))
	}

	if !result.Valid {
		return ErrValidationFailed
	}
	return nil
}
