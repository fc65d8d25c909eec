package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/leapblocks/pkg/core"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/javascript"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/pseudocode"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/python"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/typescript"
)

// Dialect names used as rule keys by the builtin kinds.
const (
	js     = javascript.Name
	py     = python.Name
	pseudo = pseudocode.Name
	ts     = typescript.Name
)

// builtin is the toolbar catalog.
var builtin = MustNew(
	startKind(),
	processKind(),
	conditionKind(),
	endKind(),
	inputKind(),
	outputKind(),
	loopKind(),
	variableKind(),
	functionKind(),
)

// Default returns the process-wide builtin catalog.
func Default() *Catalog {
	return builtin
}

// upper upper-cases s. A Caser is stateful, so one is created per call.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// quote wraps s in double quotes without escaping, as the templates are unchecked.
func quote(s string) string {
	return `"` + s + `"`
}

// lines joins template lines with a newline.
func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

// text returns a single-line text field.
func text(name, label, def string) core.Field {
	return core.Field{Name: name, Label: label, Kind: core.FieldText, Default: def}
}
