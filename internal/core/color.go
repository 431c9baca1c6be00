package core

// Color is a foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Gauge thresholds, as a fraction of the maximum.
const (
	GaugeWarn     = 0.5
	GaugeCritical = 0.25
)

// GaugeColor picks the color of a resource gauge filled to ratio.
func GaugeColor(ratio float64) Color {
	switch {
	case ratio < GaugeCritical:
		return ColorRed
	case ratio < GaugeWarn:
		return ColorYellow
	default:
		return ColorGreen
	}
}
