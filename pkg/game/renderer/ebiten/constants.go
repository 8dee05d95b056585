package ebiten

import (
	"image/color"

	"mapgen/pkg/game/renderer"
)

// Color palette for the viewer
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorWall          = color.RGBA{60, 60, 80, 255}    // Dark wall blocks
	colorFloor         = color.RGBA{160, 160, 180, 255} // Light gray room floor
	colorCorridor      = color.RGBA{100, 100, 120, 255} // Medium gray corridors
	colorDoor          = color.RGBA{0, 220, 0, 255}     // Bright green
	colorSecret        = color.RGBA{255, 255, 0, 255}   // Bright yellow
	colorUpStairs      = color.RGBA{0, 220, 255, 255}   // Cyan
	colorDownStairs    = color.RGBA{255, 100, 100, 255} // Bright red
	colorCamera        = color.RGBA{220, 170, 255, 255} // Bright purple outline
	colorPanel         = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
)

// Tile sizes in pixels
const (
	defaultTileSize = 8
	minTileSize     = 4
	maxTileSize     = 24
	tileSizeStep    = 2
	hudHeight       = 20
	messageHeight   = 16 * 3
)

// Key repeat timings in milliseconds
const (
	keyRepeatInitialDelay = 250
	keyRepeatInterval     = 50
)

// tileColor returns the fill colour for a classified cell, or nil for void
func tileColor(style renderer.TextStyle) color.Color {
	switch style {
	case renderer.StyleWall:
		return colorWall
	case renderer.StyleFloor:
		return colorFloor
	case renderer.StyleCorridor:
		return colorCorridor
	case renderer.StyleDoor:
		return colorDoor
	case renderer.StyleSecret:
		return colorSecret
	case renderer.StyleUpStairs:
		return colorUpStairs
	case renderer.StyleDownStairs:
		return colorDownStairs
	default:
		return nil
	}
}
