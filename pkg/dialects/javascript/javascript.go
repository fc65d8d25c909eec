// Package javascript provides the C-like JavaScript output dialect.
// It is the fallback for every kind another dialect has no rule for.
package javascript

import "github.com/leapstack-labs/leapblocks/pkg/dialect"

// Name is the registry name of the dialect.
const Name = "js"

// JavaScript is the C-like dialect.
var JavaScript = dialect.NewDialect(Name).
	Label("JavaScript").
	Extension(".js").
	Aliases("javascript", "c-like").
	Build()

func init() {
	dialect.Register(JavaScript)
	dialect.SetDefault(JavaScript)
}
