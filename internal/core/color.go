package core

// Color is the palette index of a screen cell. The terminal host maps it to
// an ANSI code; the browser host receives it as a plain number.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorMagenta
	ColorGray
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
)
