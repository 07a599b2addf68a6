package richtext

import "fmt"

// Color is an entry in the 16-colour ANSI table. ColorDefault means no colour
// was set.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite

	colorCount
)

// RGB is a 24-bit colour value.
type RGB struct {
	R, G, B uint8
}

// Hex returns the colour as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CGA palette. Bright variants are literal table entries, not derived.
var palette = [colorCount]RGB{
	ColorBlack:         {0, 0, 0},
	ColorRed:           {170, 0, 0},
	ColorGreen:         {0, 170, 0},
	ColorYellow:        {170, 85, 0},
	ColorBlue:          {0, 0, 170},
	ColorMagenta:       {170, 0, 170},
	ColorCyan:          {0, 170, 170},
	ColorWhite:         {170, 170, 170},
	ColorBrightBlack:   {85, 85, 85},
	ColorBrightRed:     {255, 85, 85},
	ColorBrightGreen:   {85, 255, 85},
	ColorBrightYellow:  {255, 255, 85},
	ColorBrightBlue:    {85, 85, 255},
	ColorBrightMagenta: {255, 85, 255},
	ColorBrightCyan:    {85, 255, 255},
	ColorBrightWhite:   {255, 255, 255},
}

var colorNames = [colorCount]string{
	ColorDefault:       "default",
	ColorBlack:         "black",
	ColorRed:           "red",
	ColorGreen:         "green",
	ColorYellow:        "yellow",
	ColorBlue:          "blue",
	ColorMagenta:       "magenta",
	ColorCyan:          "cyan",
	ColorWhite:         "white",
	ColorBrightBlack:   "bright-black",
	ColorBrightRed:     "bright-red",
	ColorBrightGreen:   "bright-green",
	ColorBrightYellow:  "bright-yellow",
	ColorBrightBlue:    "bright-blue",
	ColorBrightMagenta: "bright-magenta",
	ColorBrightCyan:    "bright-cyan",
	ColorBrightWhite:   "bright-white",
}

// RGB returns the palette value. ok is false for ColorDefault and unknown values.
func (c Color) RGB() (RGB, bool) {
	if c == ColorDefault || c >= colorCount {
		return RGB{}, false
	}
	return palette[c], true
}

// Bright returns the bright variant of a normal colour; other colours are returned unchanged.
func (c Color) Bright() Color {
	if c >= ColorBlack && c <= ColorWhite {
		return c + (ColorBrightBlack - ColorBlack)
	}
	return c
}

func (c Color) String() string {
	if c >= colorCount {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Attributes is the formatting applied to a run of characters.
type Attributes struct {
	Foreground Color
	Bold       bool
}

// IsDefault reports whether a carries no formatting.
func (a Attributes) IsDefault() bool {
	return a == Attributes{}
}

// Resolved returns the colour to draw with; bold selects the bright entry.
func (a Attributes) Resolved() Color {
	if a.Bold {
		return a.Foreground.Bright()
	}
	return a.Foreground
}

// RGB returns the resolved foreground colour value.
func (a Attributes) RGB() (RGB, bool) {
	return a.Resolved().RGB()
}
