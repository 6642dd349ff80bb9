package ui

import "tableflip.dev/sessio/pkg/tui/theme"

// Component is the contract shared by the quadrant panels. The root model
// fans out focus, theme, and size changes through it.
type Component interface {
	View() string
	SetSize(width, height int)
	SetFocused(focused bool)
	SetTheme(th theme.Theme)
	Focused() bool
}
