package common

import (
	"strconv"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/leapstack-labs/leapblocks/internal/session"
)

// Px formats a workspace coordinate as a CSS length.
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Num formats a coordinate for SVG attributes.
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SendApp patches the whole editor with the current state of s.
func SendApp(sse *datastar.ServerSentEventGenerator, s *session.Session) error {
	view, err := s.View()
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(App(view))
}
