package core

// Color is a foreground color for a screen cell. The terminal front end
// maps each value to an ANSI 256-color code.
type Color uint8

// Palette available to scenes.
const (
	ColorDefault Color = iota
	ColorYellow
	ColorWhite
	ColorGray
	ColorBrightYellow
	ColorBrightCyan
	ColorBrightWhite
)
