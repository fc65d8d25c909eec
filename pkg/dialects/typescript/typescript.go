// Package typescript provides a typed variant of the C-like dialect.
// Only declarations differ from JavaScript; every other kind renders with
// the JavaScript rule.
package typescript

import (
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/javascript"
)

// Name is the registry name of the dialect.
const Name = "ts"

// TypeScript is the typed C-like dialect.
var TypeScript = dialect.NewDialect(Name).
	Label("TypeScript").
	Extension(".ts").
	Aliases("typescript").
	FallsBackTo(javascript.Name).
	Build()

func init() {
	dialect.Register(TypeScript)
}
