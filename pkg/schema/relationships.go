package schema

import "fmt"

// FieldUse locates a field or input field on a type.
type FieldUse struct {
	TypeName  string `json:"typeName"`
	FieldName string `json:"fieldName"`
	Type      string `json:"type"`
}

// Relationships describes how one type is connected to the rest of a schema.
type Relationships struct {
	TypeName              string     `json:"typeName"`
	Kind                  string     `json:"kind"`
	FieldsUsingType       []FieldUse `json:"fieldsUsingType"`
	InputFieldsUsingType  []FieldUse `json:"inputFieldsUsingType"`
	ArgumentsUsingType    []FieldUse `json:"argumentsUsingType"`
	ImplementingTypes     []string   `json:"implementingTypes,omitempty"`
	ImplementedInterfaces []string   `json:"implementedInterfaces,omitempty"`
	UnionMembers          []string   `json:"unionMembers,omitempty"`
	MemberOfUnions        []string   `json:"memberOfUnions,omitempty"`
}

// FindRelationships collects every place typeName is used, plus its own
// interface and union links. Introspection types are ignored.
func FindRelationships(s *Schema, typeName string) (Relationships, error) {
	target, ok := s.Type(typeName)
	if !ok {
		return Relationships{}, fmt.Errorf("type '%s' not found in schema", typeName)
	}

	rel := Relationships{TypeName: target.Name, Kind: target.Kind}

	switch target.Kind {
	case KindInterface:
		rel.ImplementingTypes = refNames(target.PossibleTypes)
	case KindObject:
		rel.ImplementedInterfaces = refNames(target.Interfaces)
	case KindUnion:
		rel.UnionMembers = refNames(target.PossibleTypes)
	}

	for i := range s.Types {
		t := &s.Types[i]
		if t.Introspection() {
			continue
		}

		for _, f := range t.Fields {
			if t.Name != typeName && BaseTypeName(f.Type) == typeName {
				rel.FieldsUsingType = append(rel.FieldsUsingType, FieldUse{TypeName: t.Name, FieldName: f.Name, Type: ResolveTypeRef(f.Type)})
			}
			for _, a := range f.Args {
				if BaseTypeName(a.Type) == typeName {
					rel.ArgumentsUsingType = append(rel.ArgumentsUsingType, FieldUse{TypeName: t.Name, FieldName: f.Name + "." + a.Name, Type: ResolveTypeRef(a.Type)})
				}
			}
		}

		for _, f := range t.InputFields {
			if t.Name != typeName && BaseTypeName(f.Type) == typeName {
				rel.InputFieldsUsingType = append(rel.InputFieldsUsingType, FieldUse{TypeName: t.Name, FieldName: f.Name, Type: ResolveTypeRef(f.Type)})
			}
		}

		if t.Kind == KindUnion {
			for _, pt := range t.PossibleTypes {
				if pt.Name == typeName {
					rel.MemberOfUnions = append(rel.MemberOfUnions, t.Name)
				}
			}
		}
	}

	return rel, nil
}

func refNames(refs []TypeRef) []string {
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		if n := BaseTypeName(&r); n != "" {
			names = append(names, n)
		}
	}
	return names
}
