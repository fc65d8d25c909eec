package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leapblocks/pkg/core"
)

func render(t *testing.T, tag core.KindTag, dialect string, values core.Values) string {
	t.Helper()
	k, err := Default().Lookup(tag)
	require.NoError(t, err)
	return k.Render(dialect, values)
}

func TestRules_Constant(t *testing.T) {
	tests := []struct {
		tag     core.KindTag
		dialect string
		want    string
	}{
		{core.KindStart, "js", "// Program Start"},
		{core.KindStart, "py", "# Program Start"},
		{core.KindStart, "pseudo", "BEGIN PROGRAM"},
		{core.KindEnd, "js", "// Program End"},
		{core.KindEnd, "py", "# Program End"},
		{core.KindEnd, "pseudo", "END PROGRAM"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag)+"/"+tt.dialect, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.tag, tt.dialect, nil))
		})
	}
}

func TestRules_EmptyValues(t *testing.T) {
	tests := []struct {
		tag     core.KindTag
		dialect string
		want    string
	}{
		{core.KindProcess, "js", "processStep();"},
		{core.KindProcess, "py", "process_step()"},
		{core.KindProcess, "pseudo", "PROCESS: Execute operation"},
		{core.KindCondition, "js", "if (condition) {\n  // True path\n} else {\n  // False path\n}"},
		{core.KindCondition, "py", "if condition:\n  # True path\nelse:\n  # False path"},
		{core.KindCondition, "pseudo", "IF condition THEN\n  true path\nELSE\n  false path\nENDIF"},
		{core.KindInput, "js", `const input = prompt("Enter value:");`},
		{core.KindInput, "py", `input_value = input("Enter value:")`},
		{core.KindInput, "pseudo", "INPUT: Get user input → input"},
		{core.KindOutput, "js", `console.log("Output:", result);`},
		{core.KindOutput, "py", `print("Output:", result)`},
		{core.KindOutput, "pseudo", "OUTPUT: Display result"},
		{core.KindLoop, "js", "for (i=0;i<10;i++) {\n  // Loop body\n}"},
		{core.KindLoop, "py", "for i in range(10):\n  # Loop body"},
		{core.KindLoop, "pseudo", "LOOP FOR (condition):\n  loop body\nEND LOOP"},
		{core.KindVariable, "js", "let myVar = 0;"},
		{core.KindVariable, "py", "my_var = 0"},
		{core.KindVariable, "pseudo", "DECLARE myVar AS NUMBER = 0"},
		{core.KindFunction, "js", "function myFunction() {\n  \n}"},
		{core.KindFunction, "py", "def my_function():\n  "},
		{core.KindFunction, "pseudo", "FUNCTION myFunction ():\n  \nEND FUNCTION"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag)+"/"+tt.dialect, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.tag, tt.dialect, core.Values{}))
			assert.Equal(t, tt.want, render(t, tt.tag, tt.dialect, nil), "nil values")
		})
	}
}

func TestRules_Defaults(t *testing.T) {
	tests := []struct {
		tag     core.KindTag
		dialect string
		want    string
	}{
		{core.KindProcess, "js", "processStep()"},
		{core.KindInput, "js", `const input = prompt("Enter value:");`},
		{core.KindInput, "py", `input = input("Enter value:")`},
		{core.KindOutput, "js", `console.log("result", result);`},
		{core.KindLoop, "py", "for i in i=0;i<10;i++:\n  # Loop body"},
		{core.KindLoop, "pseudo", "LOOP FOR (i=0;i<10;i++):\n  loop body\nEND LOOP"},
		{core.KindVariable, "js", "let myVar = 0;"},
		{core.KindVariable, "py", "myVar = 0"},
		{core.KindVariable, "pseudo", "DECLARE myVar AS NUMBER = 0"},
		{core.KindVariable, "ts", "let myVar: number = 0;"},
		{core.KindFunction, "js", "function myFunction(param1, param2) {\n  return param1 + param2;\n}"},
		{core.KindFunction, "py", "def myFunction(param1, param2):\n  return param1 + param2;"},
	}
	for _, tt := range tests {
		t.Run(string(tt.tag)+"/"+tt.dialect, func(t *testing.T) {
			k, err := Default().Lookup(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.Render(tt.dialect, k.Defaults()))
		})
	}
}

func TestRules_Configured(t *testing.T) {
	tests := []struct {
		name    string
		tag     core.KindTag
		dialect string
		values  core.Values
		want    string
	}{
		{"while js", core.KindLoop, "js", core.Values{"type": "while", "condition": "x > 0"}, "while (x > 0) {\n  // Loop body\n}"},
		{"while js empty", core.KindLoop, "js", core.Values{"type": "while"}, "while (i<10) {\n  // Loop body\n}"},
		{"while py", core.KindLoop, "py", core.Values{"type": "while", "condition": "x > 0"}, "while x > 0:\n  # Loop body"},
		{"while pseudo", core.KindLoop, "pseudo", core.Values{"type": "while", "condition": "x > 0"}, "LOOP WHILE (x > 0):\n  loop body\nEND LOOP"},
		{"range py", core.KindLoop, "py", core.Values{"type": "for", "condition": "items"}, "for i in items:\n  # Loop body"},
		{"string js", core.KindVariable, "js", core.Values{"name": "s", "value": "hi", "type": "string"}, `let s = "hi";`},
		{"string empty js", core.KindVariable, "js", core.Values{"name": "s", "type": "string"}, `let s = "";`},
		{"string py", core.KindVariable, "py", core.Values{"name": "s", "value": "hi", "type": "string"}, `s = "hi"`},
		{"string pseudo", core.KindVariable, "pseudo", core.Values{"name": "s", "value": "hi", "type": "string"}, "DECLARE s AS STRING = hi"},
		{"string ts", core.KindVariable, "ts", core.Values{"name": "s", "value": "hi", "type": "string"}, `let s: string = "hi";`},
		{"input ts", core.KindInput, "ts", core.Values{"prompt": "Age?", "variable": "age"}, `const age: string = prompt("Age?") ?? "";`},
		{"condition py", core.KindCondition, "py", core.Values{"condition": "x > 1"}, "if x > 1:\n  # True path\nelse:\n  # False path"},
		{"output pseudo", core.KindOutput, "pseudo", core.Values{"message": "total"}, "OUTPUT: Display total"},
		{"multiline body", core.KindFunction, "js", core.Values{"name": "f", "body": "a();\nb();"}, "function f() {\n  a();\nb();\n}"},
		{"unknown field ignored", core.KindProcess, "py", core.Values{"operation": "go()", "extra": "x"}, "go()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.tag, tt.dialect, tt.values))
		})
	}
}
