// Package schema models a GraphQL introspection result and answers
// structural questions about it: how a wrapped type reference reads, which
// types a field pulls in, and how types relate to each other.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Type kinds as reported by introspection.
const (
	KindScalar      = "SCALAR"
	KindObject      = "OBJECT"
	KindInterface   = "INTERFACE"
	KindUnion       = "UNION"
	KindEnum        = "ENUM"
	KindInputObject = "INPUT_OBJECT"
	KindList        = "LIST"
	KindNonNull     = "NON_NULL"
)

var (
	ErrMissingSchema  = errors.New("introspection payload has no __schema")
	ErrMissingTypes   = errors.New("introspection __schema has no types")
	ErrDuplicateType  = errors.New("duplicate type name in introspection payload")
	ErrInvalidPayload = errors.New("introspection payload is not valid JSON")
)

// TypeRef is a possibly wrapped reference to a named type. Name is set only
// on the named leaf; NON_NULL and LIST wrappers point at OfType.
type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   string   `json:"name,omitempty"`
	OfType *TypeRef `json:"ofType,omitempty"`
}

type InputValue struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue,omitempty"`
}

type Field struct {
	Name              string       `json:"name"`
	Description       string       `json:"description,omitempty"`
	Args              []InputValue `json:"args,omitempty"`
	Type              *TypeRef     `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated,omitempty"`
	DeprecationReason string       `json:"deprecationReason,omitempty"`
}

type EnumValue struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	IsDeprecated      bool   `json:"isDeprecated,omitempty"`
	DeprecationReason string `json:"deprecationReason,omitempty"`
}

type TypeDefinition struct {
	Kind          string       `json:"kind"`
	Name          string       `json:"name"`
	Description   string       `json:"description,omitempty"`
	Fields        []Field      `json:"fields,omitempty"`
	InputFields   []InputValue `json:"inputFields,omitempty"`
	Interfaces    []TypeRef    `json:"interfaces,omitempty"`
	EnumValues    []EnumValue  `json:"enumValues,omitempty"`
	PossibleTypes []TypeRef    `json:"possibleTypes,omitempty"`
}

// Introspection reports whether the type belongs to the meta-schema (__Type, ...).
func (t *TypeDefinition) Introspection() bool {
	return strings.HasPrefix(t.Name, "__")
}

// Field returns the named field of an object or interface.
func (t *TypeDefinition) Field(name string) (*Field, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}
	return nil, false
}

type Directive struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Locations   []string     `json:"locations,omitempty"`
	Args        []InputValue `json:"args,omitempty"`
}

// Schema is a read-only view of one introspection fetch.
type Schema struct {
	QueryTypeName        string
	MutationTypeName     string
	SubscriptionTypeName string
	Types                []TypeDefinition
	Directives           []Directive

	byName map[string]int
}

type namedRef struct {
	Name string `json:"name"`
}

type rawSchema struct {
	QueryType        *namedRef         `json:"queryType"`
	MutationType     *namedRef         `json:"mutationType"`
	SubscriptionType *namedRef         `json:"subscriptionType"`
	Types            *[]TypeDefinition `json:"types"`
	Directives       []Directive       `json:"directives"`
}

// Parse decodes an introspection result. It accepts a full GraphQL response
// ({"data": {"__schema": ...}}) or just its data object ({"__schema": ...}),
// and fails rather than returning a partial schema.
func Parse(payload []byte) (*Schema, error) {
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Schema json.RawMessage `json:"__schema"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	raw := envelope.Schema
	if isAbsent(raw) && !isAbsent(envelope.Data) {
		var data struct {
			Schema json.RawMessage `json:"__schema"`
		}
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		raw = data.Schema
	}
	if isAbsent(raw) {
		return nil, ErrMissingSchema
	}

	var rs rawSchema
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if rs.Types == nil {
		return nil, ErrMissingTypes
	}

	return New(rootName(rs.QueryType), rootName(rs.MutationType), rootName(rs.SubscriptionType), *rs.Types, rs.Directives)
}

// New builds a Schema from already decoded parts. Type names must be unique.
func New(queryType, mutationType, subscriptionType string, types []TypeDefinition, directives []Directive) (*Schema, error) {
	s := &Schema{
		QueryTypeName:        queryType,
		MutationTypeName:     mutationType,
		SubscriptionTypeName: subscriptionType,
		Types:                types,
		Directives:           directives,
		byName:               make(map[string]int, len(types)),
	}
	for i, t := range types {
		if _, dup := s.byName[t.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
		}
		s.byName[t.Name] = i
	}
	return s, nil
}

func rootName(ref *namedRef) string {
	if ref == nil {
		return ""
	}
	return ref.Name
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// Type looks up a type definition by name.
func (s *Schema) Type(name string) (*TypeDefinition, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return &s.Types[i], true
}

func (s *Schema) QueryType() (*TypeDefinition, bool) {
	if s.QueryTypeName == "" {
		return nil, false
	}
	return s.Type(s.QueryTypeName)
}

func (s *Schema) MutationType() (*TypeDefinition, bool) {
	if s.MutationTypeName == "" {
		return nil, false
	}
	return s.Type(s.MutationTypeName)
}

// TypeNames returns every type name in schema order.
func (s *Schema) TypeNames() []string {
	names := make([]string, len(s.Types))
	for i, t := range s.Types {
		names[i] = t.Name
	}
	return names
}
