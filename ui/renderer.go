package ui

import (
	"fmt"
	"image/color"

	"rsnake/game"
	"rsnake/game/manager"
	"rsnake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
)

// Style selects how the body is drawn.
type Style int

const (
	StyleLine Style = iota // inset segments joined by bridges
	StyleBlock             // full cells
)

func ParseStyle(s string) (Style, error) {
	switch s {
	case "line", "":
		return StyleLine, nil
	case "block":
		return StyleBlock, nil
	}
	return StyleLine, errors.Errorf("unknown style %q (want line or block)", s)
}

const hudHeight = 60

type Renderer struct {
	cellSize     int32
	style        Style
	screenWidth  int32
	screenHeight int32
	offsetX      int32
	offsetY      int32
}

func NewRenderer(cellSize int32, style Style) *Renderer {
	r := &Renderer{cellSize: cellSize, style: style}
	r.offsetX = cellSize
	r.offsetY = cellSize
	return r
}

// WindowSize is the window needed for grid plus wall border and HUD.
func WindowSize(grid types.Grid, cellSize int32) (int32, int32) {
	w := (int32(grid.Width) + 2) * cellSize
	h := (int32(grid.Height)+2)*cellSize + hudHeight
	return w, h
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())
}

// Draw renders one frame. progress in [0,1] is how far the current tick has
// elapsed, used to slide the tail out of its vacated cell in line style.
func (r *Renderer) Draw(snap game.Snapshot, summary manager.Summary, progress float32) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	defer rl.EndDrawing()

	rl.ClearBackground(rl.White)

	r.drawWalls(snap.Grid)
	r.drawFloor(snap.Grid)

	if snap.HasFood {
		r.drawFood(snap.NextFood, rgba(types.NextFoodColor, 255), r.cellSize/3)
		r.drawFood(snap.Food, rgba(types.FoodColor, 255), 0)
	}
	r.drawSnake(snap, progress)
	r.drawHUD(snap, summary)

	switch snap.State {
	case game.StateDead:
		r.drawOverlay(snap.Grid, "Snake died :(", "Press Enter to restart")
	case game.StateWon:
		r.drawOverlay(snap.Grid, "Board cleared!", "Press Enter to play again")
	case game.StateIdle:
		rl.DrawText("Press an arrow key to start", r.offsetX+r.cellSize, r.offsetY+r.cellSize, 20, rl.White)
	}
}

func (r *Renderer) drawWalls(grid types.Grid) {
	wall := rgba(types.WallColor, 255)
	w, h := int32(grid.Width)+2, int32(grid.Height)+2
	for x := int32(0); x < w; x++ {
		rl.DrawRectangle(x*r.cellSize, 0, r.cellSize, r.cellSize, wall)
		rl.DrawRectangle(x*r.cellSize, (h-1)*r.cellSize, r.cellSize, r.cellSize, wall)
	}
	for y := int32(1); y < h-1; y++ {
		rl.DrawRectangle(0, y*r.cellSize, r.cellSize, r.cellSize, wall)
		rl.DrawRectangle((w-1)*r.cellSize, y*r.cellSize, r.cellSize, r.cellSize, wall)
	}
}

func (r *Renderer) drawFloor(grid types.Grid) {
	for x := 0; x < grid.Width; x++ {
		for y := 0; y < grid.Height; y++ {
			c := types.FloorColor
			if (x+y)%2 != 0 {
				c = types.FloorAltColor
			}
			r.fillCell(types.Point{X: x, Y: y}, 0, rgba(c, 255))
		}
	}
}

func (r *Renderer) drawFood(p types.Point, c color.RGBA, inset int32) {
	r.fillCell(p, inset, c)
}

func (r *Renderer) drawSnake(snap game.Snapshot, progress float32) {
	body := snap.Body
	n := len(body)
	if n == 0 {
		return
	}

	if r.style == StyleBlock {
		for i, p := range body {
			r.fillCell(p, 0, rgba(types.BodyColor(i, n), 255))
		}
		return
	}

	inset := r.cellSize / 5
	for i, p := range body {
		c := rgba(types.BodyColor(i, n), 255)
		r.fillCell(p, inset, c)
		if i > 0 {
			r.bridge(body[i-1], p, inset, c)
		}
	}

	// The vacated tail cell shrinks away over the tick.
	if snap.State == game.StateRunning && snap.Ticks > 0 && snap.Growth == 0 && progress < 1 {
		tail := body[n-1]
		c := rgba(types.BodyColor(n, n), uint8(255*(1-progress)))
		r.bridge(tail, snap.LastTail, inset, c)
	}
}

// bridge fills the gap between two adjacent inset cells.
func (r *Renderer) bridge(a, b types.Point, inset int32, c color.RGBA) {
	if abs(a.X-b.X)+abs(a.Y-b.Y) != 1 {
		return
	}
	minX, minY := min(a.X, b.X), min(a.Y, b.Y)
	x := r.offsetX + int32(minX)*r.cellSize
	y := r.offsetY + int32(minY)*r.cellSize
	if a.Y == b.Y {
		rl.DrawRectangle(x+r.cellSize-inset, y+inset, 2*inset, r.cellSize-2*inset, c)
	} else {
		rl.DrawRectangle(x+inset, y+r.cellSize-inset, r.cellSize-2*inset, 2*inset, c)
	}
}

func (r *Renderer) fillCell(p types.Point, inset int32, c color.RGBA) {
	rl.DrawRectangle(
		r.offsetX+int32(p.X)*r.cellSize+inset,
		r.offsetY+int32(p.Y)*r.cellSize+inset,
		r.cellSize-2*inset, r.cellSize-2*inset, c)
}

func (r *Renderer) drawHUD(snap game.Snapshot, summary manager.Summary) {
	y := r.screenHeight - hudHeight + 8
	rl.DrawText(fmt.Sprintf("Length: %d", snap.Length()), 10, y, 20, rl.Black)
	rl.DrawText(fmt.Sprintf("Best: %d  Games: %d  Avg: %.1f",
		summary.BestLength, summary.GamesPlayed, summary.AverageLength), 10, y+26, 16, rl.DarkGray)
}

func (r *Renderer) drawOverlay(grid types.Grid, title, hint string) {
	w, h := WindowSize(grid, r.cellSize)
	rl.DrawRectangle(0, 0, w, h-hudHeight, rl.NewColor(0, 0, 0, 100))
	rl.DrawText(title, 2*r.cellSize, 2*r.cellSize, 20, rl.White)
	rl.DrawText(hint, 2*r.cellSize, 3*r.cellSize, 20, rl.White)
}

func rgba(c types.Color, a uint8) color.RGBA {
	return rl.NewColor(c.R, c.G, c.B, a)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
