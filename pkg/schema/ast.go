package schema

import (
	"bytes"
	"fmt"

	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// builtinScalars are provided by the gqlparser prelude and must not be redeclared.
var builtinScalars = map[string]bool{
	"String":  true,
	"Int":     true,
	"Float":   true,
	"Boolean": true,
	"ID":      true,
}

// Document converts the schema into an SDL document, leaving out
// introspection types and built-in scalars. Default values are not carried
// over.
func (s *Schema) Document() (*ast.SchemaDocument, error) {
	doc := &ast.SchemaDocument{}

	for i := range s.Types {
		t := &s.Types[i]
		if t.Introspection() || (t.Kind == KindScalar && builtinScalars[t.Name]) {
			continue
		}

		def := &ast.Definition{
			Kind:        ast.DefinitionKind(t.Kind),
			Name:        t.Name,
			Description: t.Description,
		}

		switch t.Kind {
		case KindObject, KindInterface:
			for _, f := range t.Fields {
				fd, err := toFieldDefinition(t.Name, f.Name, f.Description, f.Type)
				if err != nil {
					return nil, err
				}
				for _, a := range f.Args {
					at, err := toASTType(a.Type)
					if err != nil {
						return nil, fmt.Errorf("%s.%s(%s): %w", t.Name, f.Name, a.Name, err)
					}
					fd.Arguments = append(fd.Arguments, &ast.ArgumentDefinition{
						Name:        a.Name,
						Description: a.Description,
						Type:        at,
					})
				}
				if f.IsDeprecated {
					fd.Directives = append(fd.Directives, deprecated(f.DeprecationReason))
				}
				def.Fields = append(def.Fields, fd)
			}
			def.Interfaces = refNames(t.Interfaces)
		case KindInputObject:
			for _, f := range t.InputFields {
				fd, err := toFieldDefinition(t.Name, f.Name, f.Description, f.Type)
				if err != nil {
					return nil, err
				}
				def.Fields = append(def.Fields, fd)
			}
		case KindEnum:
			for _, v := range t.EnumValues {
				ev := &ast.EnumValueDefinition{Name: v.Name, Description: v.Description}
				if v.IsDeprecated {
					ev.Directives = append(ev.Directives, deprecated(v.DeprecationReason))
				}
				def.EnumValues = append(def.EnumValues, ev)
			}
		case KindUnion:
			def.Types = refNames(t.PossibleTypes)
		}

		doc.Definitions = append(doc.Definitions, def)
	}

	if ops := s.operationTypes(); len(ops) > 0 {
		doc.Schema = append(doc.Schema, &ast.SchemaDefinition{OperationTypes: ops})
	}
	return doc, nil
}

// SDL prints the schema in GraphQL schema definition language.
func (s *Schema) SDL() (string, error) {
	doc, err := s.Document()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return buf.String(), nil
}

// AST loads the schema into gqlparser so queries can be validated against it.
func (s *Schema) AST() (*ast.Schema, error) {
	sdl, err := s.SDL()
	if err != nil {
		return nil, err
	}
	return gqlparser.LoadSchema(&ast.Source{Name: "introspection.graphql", Input: sdl})
}

// operationTypes is empty when every root uses its conventional name,
// which gqlparser picks up on its own.
func (s *Schema) operationTypes() ast.OperationTypeDefinitionList {
	if s.QueryTypeName == "Query" &&
		(s.MutationTypeName == "" || s.MutationTypeName == "Mutation") &&
		(s.SubscriptionTypeName == "" || s.SubscriptionTypeName == "Subscription") {
		return nil
	}

	var ops ast.OperationTypeDefinitionList
	if s.QueryTypeName != "" {
		ops = append(ops, &ast.OperationTypeDefinition{Operation: ast.Query, Type: s.QueryTypeName})
	}
	if s.MutationTypeName != "" {
		ops = append(ops, &ast.OperationTypeDefinition{Operation: ast.Mutation, Type: s.MutationTypeName})
	}
	if s.SubscriptionTypeName != "" {
		ops = append(ops, &ast.OperationTypeDefinition{Operation: ast.Subscription, Type: s.SubscriptionTypeName})
	}
	return ops
}

func toFieldDefinition(typeName, name, description string, ref *TypeRef) (*ast.FieldDefinition, error) {
	t, err := toASTType(ref)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", typeName, name, err)
	}
	return &ast.FieldDefinition{Name: name, Description: description, Type: t}, nil
}

func toASTType(ref *TypeRef) (*ast.Type, error) {
	if ref == nil {
		return nil, fmt.Errorf("malformed type reference")
	}
	switch ref.Kind {
	case KindNonNull:
		inner, err := toASTType(ref.OfType)
		if err != nil {
			return nil, err
		}
		inner.NonNull = true
		return inner, nil
	case KindList:
		elem, err := toASTType(ref.OfType)
		if err != nil {
			return nil, err
		}
		return &ast.Type{Elem: elem}, nil
	}
	if ref.Name == "" {
		return nil, fmt.Errorf("malformed type reference")
	}
	return &ast.Type{NamedType: ref.Name}, nil
}

func deprecated(reason string) *ast.Directive {
	d := &ast.Directive{Name: "deprecated"}
	if reason != "" {
		d.Arguments = ast.ArgumentList{{
			Name:  "reason",
			Value: &ast.Value{Kind: ast.StringValue, Raw: reason},
		}}
	}
	return d
}
