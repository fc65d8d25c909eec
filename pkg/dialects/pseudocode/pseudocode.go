// Package pseudocode provides the structured-English output dialect.
package pseudocode

import (
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/javascript"
)

// Name is the registry name of the dialect.
const Name = "pseudo"

// Pseudocode is the pseudocode dialect.
var Pseudocode = dialect.NewDialect(Name).
	Label("Pseudocode").
	Extension(".txt").
	Aliases("pseudocode").
	FallsBackTo(javascript.Name).
	Build()

func init() {
	dialect.Register(Pseudocode)
}
