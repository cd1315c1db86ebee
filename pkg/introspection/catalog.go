// Package introspection holds the fixed introspection documents the tool can
// send and runs them through a dispatcher.
package introspection

import (
	"errors"
	"fmt"
	"strings"
)

type Mode string

const (
	ModeFullSchema    Mode = "full_schema"
	ModeTypesOnly     Mode = "types_only"
	ModeQueriesOnly   Mode = "queries_only"
	ModeMutationsOnly Mode = "mutations_only"
	ModeTypeDetails   Mode = "type_details"
)

// Modes lists every mode in catalog order.
var Modes = []Mode{ModeFullSchema, ModeTypesOnly, ModeQueriesOnly, ModeMutationsOnly, ModeTypeDetails}

var (
	ErrUnknownMode     = errors.New("unknown introspection mode")
	ErrMissingTypeName = errors.New("the 'type_details' mode requires a typeName parameter")
)

// ParseMode accepts mode names case-insensitively, with dashes or underscores.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	if _, ok := catalog[m]; ok {
		return m, nil
	}
	names := make([]string, len(Modes))
	for i, mode := range Modes {
		names[i] = string(mode)
	}
	return "", fmt.Errorf("%w: %q (valid: %s)", ErrUnknownMode, s, strings.Join(names, ", "))
}

// QueryText returns the document for a mode. typeName is required for
// ModeTypeDetails, where it is sent as a variable rather than interpolated.
func QueryText(mode Mode, typeName string) (string, error) {
	doc, ok := catalog[mode]
	if !ok {
		_, err := ParseMode(string(mode))
		return "", err
	}
	if mode == ModeTypeDetails && strings.TrimSpace(typeName) == "" {
		return "", ErrMissingTypeName
	}
	return doc, nil
}

// Variables returns the variables that accompany a mode's document.
func Variables(mode Mode, typeName string) map[string]any {
	if mode != ModeTypeDetails {
		return nil
	}
	return map[string]any{"typeName": typeName}
}

const typeRefFragment = `
fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}
`

const fullSchemaQuery = `
query IntrospectionQuery {
  __schema {
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
      description
      locations
      args {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  description
  fields(includeDeprecated: true) {
    name
    description
    args {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    description
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  description
  type { ...TypeRef }
  defaultValue
}
` + typeRefFragment

const typesOnlyQuery = `
query TypesQuery {
  __schema {
    types {
      name
      kind
      description
    }
  }
}
`

const queriesOnlyQuery = `
query QueryFields {
  __schema {
    queryType {
      name
      fields {
        name
        description
        type { ...TypeRef }
        args {
          name
          description
          type { ...TypeRef }
          defaultValue
        }
      }
    }
    types {
      name
      kind
      description
      inputFields {
        name
        description
        type { ...TypeRef }
        defaultValue
      }
    }
  }
}
` + typeRefFragment

const mutationsOnlyQuery = `
query MutationFields {
  __schema {
    mutationType {
      name
      fields {
        name
        description
        args {
          name
          description
          type { ...TypeRef }
          defaultValue
        }
        type { ...TypeRef }
      }
    }
  }
}
` + typeRefFragment

const typeDetailsQuery = `
query TypeDetails($typeName: String!) {
  __type(name: $typeName) {
    name
    kind
    description
    fields(includeDeprecated: true) {
      name
      description
      args {
        name
        description
        type { ...TypeRef }
        defaultValue
      }
      type { ...TypeRef }
      isDeprecated
      deprecationReason
    }
    inputFields {
      name
      description
      type { ...TypeRef }
      defaultValue
    }
    interfaces {
      name
    }
    enumValues(includeDeprecated: true) {
      name
      description
      isDeprecated
      deprecationReason
    }
    possibleTypes {
      name
    }
  }
}
` + typeRefFragment

var catalog = map[Mode]string{
	ModeFullSchema:    fullSchemaQuery,
	ModeTypesOnly:     typesOnlyQuery,
	ModeQueriesOnly:   queriesOnlyQuery,
	ModeMutationsOnly: mutationsOnlyQuery,
	ModeTypeDetails:   typeDetailsQuery,
}
