package catalog

import "github.com/leapstack-labs/leapblocks/pkg/core"

// Loop styles offered by the loop kind.
const (
	LoopFor   = "for"
	LoopWhile = "while"
)

// Variable types offered by the variable kind.
const (
	TypeNumber = "number"
	TypeString = "string"
)

func loopKind() *Kind {
	return &Kind{
		Tag:   core.KindLoop,
		Label: "LOOP",
		Color: "#8e44ad",
		Fields: []core.Field{
			{Name: "type", Label: "Loop Type", Kind: core.FieldSelect, Default: LoopFor, Options: []string{LoopFor, LoopWhile}},
			text("condition", "Condition/Range", "i=0;i<10;i++"),
		},
		Rules: map[string]core.Rule{
			// Counter-style header.
			js: core.Template(func(v core.Values) string {
				if v["type"] == LoopWhile {
					return lines("while ("+v.Get("condition", "i<10")+") {", "  // Loop body", "}")
				}
				return lines("for ("+v.Get("condition", "i=0;i<10;i++")+") {", "  // Loop body", "}")
			}),
			// Range-style header.
			py: core.Template(func(v core.Values) string {
				if v["type"] == LoopWhile {
					return lines("while "+v.Get("condition", "i<10")+":", "  # Loop body")
				}
				return lines("for i in "+v.Get("condition", "range(10)")+":", "  # Loop body")
			}),
			pseudo: core.Template(func(v core.Values) string {
				return lines(
					"LOOP "+upper(v.Get("type", LoopFor))+" ("+v.Get("condition", "condition")+"):",
					"  loop body",
					"END LOOP",
				)
			}),
		},
	}
}

// literal renders a variable's initial value: quoted for strings, bare otherwise.
func literal(v core.Values) string {
	if v["type"] == TypeString {
		return quote(v["value"])
	}
	return v.Get("value", "0")
}

func variableKind() *Kind {
	return &Kind{
		Tag:   core.KindVariable,
		Label: "VARIABLE",
		Color: "#2ecc71",
		Fields: []core.Field{
			text("name", "Var Name", "myVar"),
			text("value", "Initial Value", "0"),
			{Name: "type", Label: "Type", Kind: core.FieldSelect, Default: TypeNumber, Options: []string{TypeNumber, TypeString}},
		},
		Rules: map[string]core.Rule{
			js: core.Template(func(v core.Values) string {
				return "let " + v.Get("name", "myVar") + " = " + literal(v) + ";"
			}),
			py: core.Template(func(v core.Values) string {
				return v.Get("name", "my_var") + " = " + literal(v)
			}),
			pseudo: core.Template(func(v core.Values) string {
				return "DECLARE " + v.Get("name", "myVar") + " AS " + upper(v.Get("type", TypeNumber)) + " = " + v.Get("value", "0")
			}),
			ts: core.Template(func(v core.Values) string {
				typ := TypeNumber
				if v["type"] == TypeString {
					typ = TypeString
				}
				return "let " + v.Get("name", "myVar") + ": " + typ + " = " + literal(v) + ";"
			}),
		},
	}
}

func functionKind() *Kind {
	return &Kind{
		Tag:   core.KindFunction,
		Label: "FUNCTION",
		Color: "#34495e",
		Fields: []core.Field{
			text("name", "Func Name", "myFunction"),
			text("parameters", "Parameters", "param1, param2"),
			{Name: "body", Label: "Body", Kind: core.FieldMultiline, Default: "return param1 + param2;"},
		},
		Rules: map[string]core.Rule{
			js: core.Template(func(v core.Values) string {
				return lines(
					"function "+v.Get("name", "myFunction")+"("+v["parameters"]+") {",
					"  "+v["body"],
					"}",
				)
			}),
			py: core.Template(func(v core.Values) string {
				return lines(
					"def "+v.Get("name", "my_function")+"("+v["parameters"]+"):",
					"  "+v["body"],
				)
			}),
			pseudo: core.Template(func(v core.Values) string {
				return lines(
					"FUNCTION "+v.Get("name", "myFunction")+" ("+v["parameters"]+"):",
					"  "+v["body"],
					"END FUNCTION",
				)
			}),
		},
	}
}
