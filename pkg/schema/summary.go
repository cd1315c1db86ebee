package schema

// Summary is an overview of a schema: how many types of each kind it has,
// their names by category and its root operation types.
type Summary struct {
	TypeCounts       map[string]int `json:"typeCounts"`
	ObjectTypes      []string       `json:"objectTypes"`
	InputTypes       []string       `json:"inputTypes"`
	EnumTypes        []string       `json:"enumTypes"`
	ScalarTypes      []string       `json:"scalarTypes"`
	InterfaceTypes   []string       `json:"interfaceTypes"`
	UnionTypes       []string       `json:"unionTypes"`
	QueryRoot        string         `json:"queryRoot,omitempty"`
	MutationRoot     string         `json:"mutationRoot,omitempty"`
	SubscriptionRoot string         `json:"subscriptionRoot,omitempty"`
	Directives       []string       `json:"directives,omitempty"`
}

// Summarize counts every type, introspection types included, but leaves
// __-prefixed objects out of ObjectTypes.
func Summarize(s *Schema) Summary {
	sum := Summary{
		TypeCounts:       make(map[string]int),
		QueryRoot:        s.QueryTypeName,
		MutationRoot:     s.MutationTypeName,
		SubscriptionRoot: s.SubscriptionTypeName,
	}

	for i := range s.Types {
		t := &s.Types[i]
		sum.TypeCounts[t.Kind]++

		switch t.Kind {
		case KindObject:
			if !t.Introspection() {
				sum.ObjectTypes = append(sum.ObjectTypes, t.Name)
			}
		case KindInputObject:
			sum.InputTypes = append(sum.InputTypes, t.Name)
		case KindEnum:
			sum.EnumTypes = append(sum.EnumTypes, t.Name)
		case KindScalar:
			sum.ScalarTypes = append(sum.ScalarTypes, t.Name)
		case KindInterface:
			sum.InterfaceTypes = append(sum.InterfaceTypes, t.Name)
		case KindUnion:
			sum.UnionTypes = append(sum.UnionTypes, t.Name)
		}
	}

	for _, d := range s.Directives {
		sum.Directives = append(sum.Directives, d.Name)
	}
	return sum
}
