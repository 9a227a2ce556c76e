// Package tui draws the game into a terminal through tcell. Every grid cell is
// two columns wide so the board keeps a square-ish aspect.
package tui

import (
	"fmt"

	"rsnake/game"
	"rsnake/game/manager"
	"rsnake/game/types"

	"github.com/gdamore/tcell/v2"
)

const CellColumns = 2

type View struct {
	screen tcell.Screen
}

func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// Size is the terminal area the board, its wall and the two HUD rows need.
func Size(grid types.Grid) (int, int) {
	return (grid.Width + 2) * CellColumns, grid.Height + 4
}

// CellOrigin returns the screen column and row of the left half of cell p.
func CellOrigin(p types.Point) (int, int) {
	return (p.X + 1) * CellColumns, p.Y + 1
}

func (v *View) Draw(snap game.Snapshot, summary manager.Summary) {
	v.screen.Clear()

	v.drawWalls(snap.Grid)
	for x := 0; x < snap.Grid.Width; x++ {
		for y := 0; y < snap.Grid.Height; y++ {
			c := types.FloorColor
			if (x+y)%2 != 0 {
				c = types.FloorAltColor
			}
			v.fill(types.Point{X: x, Y: y}, ' ', background(c))
		}
	}

	if snap.HasFood {
		v.fill(snap.NextFood, '·', background(types.FloorColor).Foreground(rgb(types.NextFoodColor)))
		v.fill(snap.Food, ' ', background(types.FoodColor))
	}

	n := len(snap.Body)
	for i := n - 1; i >= 0; i-- {
		v.fill(snap.Body[i], ' ', background(types.BodyColor(i, n)))
	}

	_, hudRow := Size(snap.Grid)
	hudRow -= 2
	v.text(0, hudRow, tcell.StyleDefault.Bold(true), fmt.Sprintf("Length: %d", snap.Length()))
	v.text(0, hudRow+1, tcell.StyleDefault.Dim(true), fmt.Sprintf("Best: %d  Games: %d  Avg: %.1f  (q to quit)",
		summary.BestLength, summary.GamesPlayed, summary.AverageLength))

	overlay := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(rgb(types.WallColor)).Bold(true)
	switch snap.State {
	case game.StateIdle:
		v.text(CellColumns*2, 2, overlay, "Press an arrow key to start")
	case game.StateDead:
		v.text(CellColumns*2, 2, overlay, "Snake died :(")
		v.text(CellColumns*2, 3, overlay, "Press Enter to restart")
	case game.StateWon:
		v.text(CellColumns*2, 2, overlay, "Board cleared!")
		v.text(CellColumns*2, 3, overlay, "Press Enter to play again")
	}

	v.screen.Show()
}

func (v *View) drawWalls(grid types.Grid) {
	style := background(types.WallColor)
	w, h := grid.Width+2, grid.Height+2
	for x := 0; x < w*CellColumns; x++ {
		v.screen.SetContent(x, 0, ' ', nil, style)
		v.screen.SetContent(x, h-1, ' ', nil, style)
	}
	for y := 1; y < h-1; y++ {
		for c := 0; c < CellColumns; c++ {
			v.screen.SetContent(c, y, ' ', nil, style)
			v.screen.SetContent((w-1)*CellColumns+c, y, ' ', nil, style)
		}
	}
}

func (v *View) fill(p types.Point, r rune, style tcell.Style) {
	col, row := CellOrigin(p)
	for c := 0; c < CellColumns; c++ {
		v.screen.SetContent(col+c, row, r, nil, style)
	}
}

func (v *View) text(col, row int, style tcell.Style, s string) {
	for _, r := range s {
		v.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func rgb(c types.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func background(c types.Color) tcell.Style {
	return tcell.StyleDefault.Background(rgb(c))
}
