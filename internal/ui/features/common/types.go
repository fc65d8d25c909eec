// Package common provides shared types and utilities for UI features.
package common

// CookieName is the name of the cookie binding a browser to its editor session.
const CookieName = "leapblocks"

// sessionKey is the cookie value holding the editor session id.
const sessionKey = "editor"

// Page titles.
const (
	TitleCanvas = "Canvas"
)
