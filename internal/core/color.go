package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI colors in the platform renderer.
type Color uint8

// Predefined colors for game elements.
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
	ColorOrange
	ColorGray
)

// Palette is the set of "hue" colors used by matching games (color switch,
// memory pairs). Order is stable so seeded games stay deterministic.
var Palette = []Color{ColorRed, ColorYellow, ColorBlue, ColorGreen, ColorMagenta, ColorCyan, ColorOrange, ColorBrightWhite}
