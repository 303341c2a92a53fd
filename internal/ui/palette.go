package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the court colours
type Palette struct {
	SkyTop    colorful.Color
	SkyMid    colorful.Color
	SkyBottom colorful.Color
	Sand      colorful.Color
	Net       colorful.Color
	NetPole   colorful.Color
	Player    [2]colorful.Color // Paddle gradient, left to right
	AI        [2]colorful.Color
	Heart     colorful.Color
	Label     colorful.Color
	Overlay   colorful.Color
	Text      colorful.Color
}

// DefaultPalette is the pink beach court
var DefaultPalette = Palette{
	SkyTop:    mustHex("#fff0f5"),
	SkyMid:    mustHex("#ffe8ef"),
	SkyBottom: mustHex("#f5d5c8"),
	Sand:      mustHex("#e8c8b0"),
	Net:       mustHex("#b4648c"),
	NetPole:   mustHex("#c87090"),
	Player:    [2]colorful.Color{mustHex("#d06090"), mustHex("#b05080")},
	AI:        [2]colorful.Color{mustHex("#a060b0"), mustHex("#8050a0")},
	Heart:     mustHex("#d06090"),
	Label:     mustHex("#b4648c"),
	Overlay:   mustHex("#fff8fc"),
	Text:      mustHex("#6a3050"),
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Color converts to a true-colour tcell colour
func Color(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Sky returns the background for a row at fraction t (0 top, 1 bottom)
func (p Palette) Sky(t float64) colorful.Color {
	if t < 0.6 {
		return p.SkyTop.BlendLab(p.SkyMid, t/0.6)
	}
	return p.SkyMid.BlendLab(p.SkyBottom, (t-0.6)/0.4)
}

// PaddleShade returns the paddle colour at fraction t across its width
func (p Palette) PaddleShade(grad [2]colorful.Color, t float64) colorful.Color {
	return grad[0].BlendLab(grad[1], t)
}
