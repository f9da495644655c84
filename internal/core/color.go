package core

// Color tags a screen cell with what was drawn there.
// The platform layer decides the actual terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorTerrain
	ColorMoving
	ColorWall
	ColorSand
	ColorWater
	ColorField
	ColorMagnet
	ColorPortal
	ColorLaser
	ColorSaw
	ColorBall
	ColorTrail
	ColorFlag
	ColorText
)
