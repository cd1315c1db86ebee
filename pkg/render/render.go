// Package render prints command results in the formats selectable with -f.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatPretty   Format = "pretty"
	FormatMarkdown Format = "markdown"
)

var ValidFormats = []Format{FormatJSON, FormatText, FormatPretty, FormatMarkdown}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	case "pretty":
		return FormatPretty, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("invalid format: %s (valid: json, text, pretty, markdown)", s)
	}
}

// Renderer formats a list of items. JSON needs no callback; the other formats
// fail when their callback is nil.
type Renderer[T any] struct {
	Data           []T
	TextFormat     func(T) string
	PrettyFormat   func([]T) string
	MarkdownFormat func([]T) string
}

func (r Renderer[T]) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		return r.renderJSON()
	case FormatPretty:
		return r.renderAll(r.PrettyFormat, format)
	case FormatMarkdown:
		return r.renderAll(r.MarkdownFormat, format)
	case FormatText:
		return r.renderText()
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (r Renderer[T]) renderAll(fn func([]T) string, format Format) (string, error) {
	if fn == nil {
		return "", fmt.Errorf("%s format not defined for this type", format)
	}
	return fn(r.Data), nil
}

func (r Renderer[T]) renderJSON() (string, error) {
	bytes, err := json.MarshalIndent(r.Data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (r Renderer[T]) renderText() (string, error) {
	if r.TextFormat == nil {
		return "", fmt.Errorf("text format not defined for this type")
	}

	var lines []string
	for _, item := range r.Data {
		lines = append(lines, r.TextFormat(item))
	}
	return strings.Join(lines, "\n"), nil
}

// JSON indents a single value the way Renderer prints lists.
func JSON(v any) (string, error) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
