package cmd

type ArgumentInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

type FieldInfo struct {
	TypeName          string         `json:"typeName,omitempty"`
	Name              string         `json:"name"`
	Arguments         []ArgumentInfo `json:"arguments,omitempty"`
	Type              string         `json:"type"`
	Description       string         `json:"description,omitempty"`
	DeprecationReason string         `json:"deprecationReason,omitempty"`
}

type TypeInfo struct {
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

type ValueInfo struct {
	EnumName    string `json:"enumName,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

// RelationInfo is one edge reported by the related command.
type RelationInfo struct {
	Relation string `json:"relation"`
	Location string `json:"location"`
	Type     string `json:"type,omitempty"`
}

// ReachableType is one type found by the refs command.
type ReachableType struct {
	Group       string `json:"group"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Description string `json:"description,omitempty"`
}

// OutcomeRow flattens a dispatch outcome for text, pretty and markdown output.
type OutcomeRow struct {
	QueryID string `json:"queryId"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type ValidationError struct {
	Message   string     `json:"message"`
	Rule      string     `json:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}
