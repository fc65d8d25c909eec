// Package output renders CLI results for terminals, agents and scripts.
//
// In auto mode a terminal gets styled text and anything else gets markdown,
// which reads well in logs and is easy for tools to consume.
package output

import "fmt"

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists the accepted mode names.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON), string(ModeYAML)}
}

// ParseMode validates a mode name. The empty string means auto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, ModeYAML:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown output mode %q (want one of %v)", s, Modes())
	}
}
