package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform layer.
type Color uint8

// Colors used by ringpong. The source palette was black, white (ball),
// red (paddle 1) and green (paddle 2).
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorGray
)

// String returns a lowercase color name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorCyan:
		return "cyan"
	case ColorWhite:
		return "white"
	case ColorBrightWhite:
		return "bright-white"
	case ColorGray:
		return "gray"
	default:
		return "unknown"
	}
}
