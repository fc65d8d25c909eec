// Package python provides the Python-like output dialect.
package python

import (
	"github.com/leapstack-labs/leapblocks/pkg/dialect"
	"github.com/leapstack-labs/leapblocks/pkg/dialects/javascript"
)

// Name is the registry name of the dialect.
const Name = "py"

// Python is the Python-like dialect.
var Python = dialect.NewDialect(Name).
	Label("Python").
	Extension(".py").
	Aliases("python").
	FallsBackTo(javascript.Name).
	Build()

func init() {
	dialect.Register(Python)
}
