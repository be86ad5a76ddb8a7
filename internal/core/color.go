package core

// Color is a foreground color of a screen cell. The platform layer maps
// these to concrete terminal colors.
type Color uint8

// The standard 16-color terminal palette. Bright variants identify
// players, the base variants draw the field.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)
