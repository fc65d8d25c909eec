package catalog

import "github.com/leapstack-labs/leapblocks/pkg/core"

func startKind() *Kind {
	return &Kind{
		Tag:   core.KindStart,
		Label: "START",
		Color: "#27ae60",
		Rules: map[string]core.Rule{
			js:     core.Const("// Program Start"),
			py:     core.Const("# Program Start"),
			pseudo: core.Const("BEGIN PROGRAM"),
		},
	}
}

func endKind() *Kind {
	return &Kind{
		Tag:   core.KindEnd,
		Label: "END",
		Color: "#e74c3c",
		Rules: map[string]core.Rule{
			js:     core.Const("// Program End"),
			py:     core.Const("# Program End"),
			pseudo: core.Const("END PROGRAM"),
		},
	}
}

func processKind() *Kind {
	return &Kind{
		Tag:    core.KindProcess,
		Label:  "PROCESS",
		Color:  "#3498db",
		Fields: []core.Field{text("operation", "Operation", "processStep()")},
		Rules: map[string]core.Rule{
			js: core.Template(func(v core.Values) string {
				return v.Get("operation", "processStep();")
			}),
			py: core.Template(func(v core.Values) string {
				return v.Get("operation", "process_step()")
			}),
			pseudo: core.Template(func(v core.Values) string {
				return "PROCESS: " + v.Get("operation", "Execute operation")
			}),
		},
	}
}

func conditionKind() *Kind {
	return &Kind{
		Tag:    core.KindCondition,
		Label:  "IF/ELSE",
		Color:  "#f39c12",
		Fields: []core.Field{text("condition", "Condition", "condition")},
		Rules: map[string]core.Rule{
			js: core.Template(func(v core.Values) string {
				return lines(
					"if ("+v.Get("condition", "condition")+") {",
					"  // True path",
					"} else {",
					"  // False path",
					"}",
				)
			}),
			py: core.Template(func(v core.Values) string {
				return lines(
					"if "+v.Get("condition", "condition")+":",
					"  # True path",
					"else:",
					"  # False path",
				)
			}),
			pseudo: core.Template(func(v core.Values) string {
				return lines(
					"IF "+v.Get("condition", "condition")+" THEN",
					"  true path",
					"ELSE",
					"  false path",
					"ENDIF",
				)
			}),
		},
	}
}
