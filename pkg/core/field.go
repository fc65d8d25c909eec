package core

// FieldKind selects the form control used to edit a configuration field.
type FieldKind int

const (
	// FieldText is a single-line free text input.
	FieldText FieldKind = iota
	// FieldSelect picks one of Field.Options.
	FieldSelect
	// FieldMultiline is a free text area.
	FieldMultiline
)

// String returns the string representation of FieldKind.
func (k FieldKind) String() string {
	switch k {
	case FieldText:
		return "text"
	case FieldSelect:
		return "select"
	case FieldMultiline:
		return "multiline"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so JSON and YAML output use the name.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Field describes one configuration field of a block kind.
type Field struct {
	Name    string    `json:"name" yaml:"name"`
	Label   string    `json:"label" yaml:"label"`
	Kind    FieldKind `json:"kind" yaml:"kind"`
	Default string    `json:"default" yaml:"default"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Values maps a field name to its current value.
type Values map[string]string

// Get returns the value for name, or fallback when it is missing or empty.
func (v Values) Get(name, fallback string) string {
	if s := v[name]; s != "" {
		return s
	}
	return fallback
}

// Clone returns a copy of v. A nil map stays nil.
func (v Values) Clone() Values {
	if v == nil {
		return nil
	}
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
