package core

// RuleKind tags the variant held by a Rule.
type RuleKind int

const (
	// RuleConst emits the same text for every instance of a kind.
	RuleConst RuleKind = iota
	// RuleTemplate maps a block's configuration to text.
	RuleTemplate
)

// String returns the string representation of RuleKind.
func (k RuleKind) String() string {
	switch k {
	case RuleConst:
		return "const"
	case RuleTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// TemplateFunc renders configuration values to text. It must tolerate
// missing or empty values.
type TemplateFunc func(Values) string

// Rule is the per-dialect code production rule of a block kind.
// The zero Rule is a constant rule producing the empty string.
type Rule struct {
	kind   RuleKind
	text   string
	render TemplateFunc
}

// Const returns a constant-text rule.
func Const(text string) Rule {
	return Rule{kind: RuleConst, text: text}
}

// Template returns a configuration-to-text rule.
func Template(fn TemplateFunc) Rule {
	return Rule{kind: RuleTemplate, render: fn}
}

// Kind returns the variant tag.
func (r Rule) Kind() RuleKind {
	return r.kind
}

// Text returns the constant text of a RuleConst rule.
func (r Rule) Text() string {
	return r.text
}

// Apply produces the text for the given configuration.
// Constant rules ignore values; template rules receive a non-nil map.
func (r Rule) Apply(values Values) string {
	switch r.kind {
	case RuleTemplate:
		if r.render == nil {
			return ""
		}
		if values == nil {
			values = Values{}
		}
		return r.render(values)
	default:
		return r.text
	}
}
