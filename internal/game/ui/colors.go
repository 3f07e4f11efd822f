// Package ui provides the immediate-mode widgets the game screens draw
// with: buttons and text labels.
package ui

import "image/color"

// Steampunk palette shared by the screens.
var (
	ColorBronze      = color.RGBA{R: 205, G: 127, B: 50, A: 255}
	ColorBrass       = color.RGBA{R: 225, G: 193, B: 110, A: 255}
	ColorIron        = color.RGBA{R: 71, G: 71, B: 71, A: 255}
	ColorDarkSteel   = color.RGBA{R: 34, G: 38, B: 49, A: 255}
	ColorRust        = color.RGBA{R: 183, G: 65, B: 14, A: 255}
	ColorVerdigris   = color.RGBA{R: 67, G: 121, B: 107, A: 255}
	ColorSteamWhite  = color.RGBA{R: 248, G: 248, B: 255, A: 255}
	ColorTextGold    = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	ColorBronzeDark  = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	ColorBronzeLight = color.RGBA{R: 244, G: 164, B: 96, A: 255}
)
