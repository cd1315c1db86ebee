package schema

// String renders the reference in SDL form, e.g. [Package!]!.
func (r *TypeRef) String() string {
	return ResolveTypeRef(r)
}

// ResolveTypeRef renders a reference in SDL form. NON_NULL becomes a trailing
// "!", LIST wraps in brackets, and a chain that ends without a named leaf
// renders "null" at the point where it breaks.
func ResolveTypeRef(ref *TypeRef) string {
	if ref == nil {
		return "null"
	}
	switch ref.Kind {
	case KindNonNull:
		return ResolveTypeRef(ref.OfType) + "!"
	case KindList:
		return "[" + ResolveTypeRef(ref.OfType) + "]"
	}
	if ref.Name == "" {
		return "null"
	}
	return ref.Name
}

// BaseTypeName unwraps NON_NULL and LIST down to the named leaf.
// For example, [Package!]! returns "Package". A malformed chain returns "".
func BaseTypeName(ref *TypeRef) string {
	for ref != nil {
		if ref.Kind != KindNonNull && ref.Kind != KindList {
			return ref.Name
		}
		ref = ref.OfType
	}
	return ""
}

// Named, NonNull and List build references; they are mostly useful in tests
// and when assembling schemas by hand.
func Named(kind, name string) *TypeRef {
	return &TypeRef{Kind: kind, Name: name}
}

func NonNull(of *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindNonNull, OfType: of}
}

func List(of *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindList, OfType: of}
}
