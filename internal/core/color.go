package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for board elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ActorColor returns the display color for the actor with the given 1-based order.
func ActorColor(order int) Color {
	switch order {
	case 1:
		return ColorRed
	case 2:
		return ColorBlue
	case 3:
		return ColorGreen
	case 4:
		return ColorYellow
	default:
		return ColorMagenta
	}
}
