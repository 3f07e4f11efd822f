package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Align positions a label relative to its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Label is a positioned text string.
type Label struct {
	X, Y  float64 // Anchor point in screen space
	Text  string
	Color color.Color
	Align Align
	Scale float64 // Text scale factor; 0 means 1
}

// NewLabel creates a left-aligned label.
func NewLabel(x, y float64, s string, clr color.Color) *Label {
	return &Label{X: x, Y: y, Text: s, Color: clr, Scale: 1}
}

// face is the bitmap font all widgets render with.
var face font.Face = basicfont.Face7x13

// TextWidth measures a string at scale 1.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(face, s).Round())
}

// Draw renders the label.
func (l *Label) Draw(screen *ebiten.Image) {
	scale := l.Scale
	if scale <= 0 {
		scale = 1
	}

	x := l.X
	w := TextWidth(l.Text) * scale
	switch l.Align {
	case AlignCenter:
		x -= w / 2
	case AlignRight:
		x -= w
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, l.Y)
	op.ColorScale.ScaleWithColor(l.Color)
	text.DrawWithOptions(screen, l.Text, face, op)
}
