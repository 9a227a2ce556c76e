package types

import "fmt"

// Point is a cell on the grid. X grows to the right, Y grows downward.
type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Step returns the neighbouring cell in direction d.
func (p Point) Step(d Direction) Point {
	return p.Add(d.ToPoint())
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside [0,Width) x [0,Height).
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Color is an RGB triple shared by the renderers.
type Color struct {
	R, G, B uint8
}

// Lerp interpolates between c and to, t in [0,1].
func (c Color) Lerp(to Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{R: mix(c.R, to.R), G: mix(c.G, to.G), B: mix(c.B, to.B)}
}

// Game palette
var (
	WallColor      = Color{R: 44, G: 39, B: 49}
	FloorColor     = Color{R: 73, G: 67, B: 81}
	FloorAltColor  = Color{R: 68, G: 62, B: 76}
	SnakeHeadColor = Color{R: 79, G: 124, B: 246}
	SnakeTailColor = Color{R: 51, G: 96, B: 203}
	FoodColor      = Color{R: 231, G: 71, B: 29}
	NextFoodColor  = Color{R: 120, G: 60, B: 50}
)

// Game constants
const (
	StartLength      = 3
	DefaultWidth     = 20
	DefaultHeight    = 20
	DefaultCellSize  = 20
	DefaultFPS       = 30
	DefaultTickEvery = 5 // frames between simulation ticks
)

// BodyColor is the gradient color of segment i in a body of n segments,
// head first.
func BodyColor(i, n int) Color {
	if n <= 1 {
		return SnakeHeadColor
	}
	return SnakeHeadColor.Lerp(SnakeTailColor, float64(i)/float64(n))
}
