package schema

// ReferencedTypes groups the types a field reaches, each bucket in
// first-discovered order and free of duplicates.
type ReferencedTypes struct {
	Inputs     []*TypeDefinition `json:"inputs"`
	Objects    []*TypeDefinition `json:"objects"`
	Interfaces []*TypeDefinition `json:"interfaces"`
	Enums      []*TypeDefinition `json:"enums"`
	Unions     []*TypeDefinition `json:"unions"`
}

// Group is one named bucket of ReferencedTypes.
type Group struct {
	Label string
	Types []*TypeDefinition
}

// Groups returns the buckets in rendering order: inputs, objects,
// interfaces, enums, unions.
func (r ReferencedTypes) Groups() []Group {
	return []Group{
		{Label: "Inputs", Types: r.Inputs},
		{Label: "Objects", Types: r.Objects},
		{Label: "Interfaces", Types: r.Interfaces},
		{Label: "Enums", Types: r.Enums},
		{Label: "Unions", Types: r.Unions},
	}
}

// Len counts every collected type.
func (r ReferencedTypes) Len() int {
	n := 0
	for _, g := range r.Groups() {
		n += len(g.Types)
	}
	return n
}

// CollectReferencedTypes walks everything reachable from a field's return
// type and argument types. Objects and interfaces expand through their
// fields, input objects through their input fields and unions through their
// possible types; enums and scalars end the walk. Each type name is expanded
// at most once, which keeps self-referencing and mutually recursive types
// finite. Names missing from the schema are skipped.
func (s *Schema) CollectReferencedTypes(field *Field) ReferencedTypes {
	var out ReferencedTypes
	if field == nil {
		return out
	}

	roots := make([]*TypeRef, 0, len(field.Args)+1)
	roots = append(roots, field.Type)
	for i := range field.Args {
		roots = append(roots, field.Args[i].Type)
	}

	visited := make(map[string]bool)
	stack := make([]*TypeRef, 0, len(roots))
	push := func(refs []*TypeRef) {
		// reversed so the first reference is expanded first
		for i := len(refs) - 1; i >= 0; i-- {
			stack = append(stack, refs[i])
		}
	}
	push(roots)

	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		name := BaseTypeName(ref)
		if name == "" || visited[name] {
			continue
		}
		visited[name] = true

		def, ok := s.Type(name)
		if !ok {
			continue
		}

		switch def.Kind {
		case KindInputObject:
			out.Inputs = append(out.Inputs, def)
			push(inputRefs(def.InputFields))
		case KindObject:
			out.Objects = append(out.Objects, def)
			push(fieldRefs(def.Fields))
		case KindInterface:
			out.Interfaces = append(out.Interfaces, def)
			push(fieldRefs(def.Fields))
		case KindUnion:
			out.Unions = append(out.Unions, def)
			refs := make([]*TypeRef, len(def.PossibleTypes))
			for i := range def.PossibleTypes {
				refs[i] = &def.PossibleTypes[i]
			}
			push(refs)
		case KindEnum:
			out.Enums = append(out.Enums, def)
		}
	}

	return out
}

func fieldRefs(fields []Field) []*TypeRef {
	refs := make([]*TypeRef, len(fields))
	for i := range fields {
		refs[i] = fields[i].Type
	}
	return refs
}

func inputRefs(values []InputValue) []*TypeRef {
	refs := make([]*TypeRef, len(values))
	for i := range values {
		refs[i] = values[i].Type
	}
	return refs
}
