package catalog

import "github.com/leapstack-labs/leapblocks/pkg/core"

func inputKind() *Kind {
	return &Kind{
		Tag:   core.KindInput,
		Label: "INPUT",
		Color: "#9b59b6",
		Fields: []core.Field{
			text("prompt", "Prompt", "Enter value:"),
			text("variable", "Variable", "input"),
		},
		Rules: map[string]core.Rule{
			js: core.Template(func(v core.Values) string {
				return "const " + v.Get("variable", "input") +
					" = prompt(" + quote(v.Get("prompt", "Enter value:")) + ");"
			}),
			py: core.Template(func(v core.Values) string {
				return v.Get("variable", "input_value") +
					" = input(" + quote(v.Get("prompt", "Enter value:")) + ")"
			}),
			pseudo: core.Template(func(v core.Values) string {
				return "INPUT: " + v.Get("prompt", "Get user input") + " → " + v.Get("variable", "input")
			}),
			ts: core.Template(func(v core.Values) string {
				return "const " + v.Get("variable", "input") +
					": string = prompt(" + quote(v.Get("prompt", "Enter value:")) + `) ?? "";`
			}),
		},
	}
}

func outputKind() *Kind {
	return &Kind{
		Tag:    core.KindOutput,
		Label:  "OUTPUT",
		Color:  "#1abc9c",
		Fields: []core.Field{text("message", "Message", "result")},
		Rules: map[string]core.Rule{
			js: core.Template(func(v core.Values) string {
				return "console.log(" + quote(v.Get("message", "Output:")) + ", " + v.Get("message", "result") + ");"
			}),
			py: core.Template(func(v core.Values) string {
				return "print(" + quote(v.Get("message", "Output:")) + ", " + v.Get("message", "result") + ")"
			}),
			pseudo: core.Template(func(v core.Values) string {
				return "OUTPUT: Display " + v.Get("message", "result")
			}),
		},
	}
}
