package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button is a clickable rectangle with a centered label.
type Button struct {
	X, Y, W, H float64
	Label      string

	// OnClick fires when a press and release both land on the button.
	OnClick func()

	Idle    color.Color
	Hover   color.Color
	Pressed color.Color
	Border  color.Color
	Text    color.Color

	hovered bool
	pressed bool
}

// NewButton creates a button with the default palette.
func NewButton(x, y, w, h float64, label string, onClick func()) *Button {
	return &Button{
		X: x, Y: y, W: w, H: h,
		Label:   label,
		OnClick: onClick,
		Idle:    ColorBronzeDark,
		Hover:   ColorBronze,
		Pressed: ColorRust,
		Border:  ColorBrass,
		Text:    ColorTextGold,
	}
}

// Contains reports whether a screen point lies on the button.
func (b *Button) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.W && y >= b.Y && y <= b.Y+b.H
}

// OnMouseMove updates hover state.
func (b *Button) OnMouseMove(x, y float64) {
	b.hovered = b.Contains(x, y)
	if !b.hovered {
		b.pressed = false
	}
}

// OnMouseDown starts a press. Returns true if the press landed on the
// button.
func (b *Button) OnMouseDown(x, y float64) bool {
	b.pressed = b.Contains(x, y)
	return b.pressed
}

// OnMouseUp completes a click; fires OnClick when the release also lands
// on the button.
func (b *Button) OnMouseUp(x, y float64) {
	if b.pressed && b.Contains(x, y) && b.OnClick != nil {
		b.OnClick()
	}
	b.pressed = false
}

// Draw renders the button.
func (b *Button) Draw(screen *ebiten.Image) {
	fill := b.Idle
	switch {
	case b.pressed:
		fill = b.Pressed
	case b.hovered:
		fill = b.Hover
	}

	vector.DrawFilledRect(screen,
		float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, false)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, b.Border, false)

	label := &Label{
		X:     b.X + b.W/2,
		Y:     b.Y + b.H/2 + 5, // baseline below midpoint for Face7x13
		Text:  b.Label,
		Color: b.Text,
		Align: AlignCenter,
	}
	label.Draw(screen)
}
