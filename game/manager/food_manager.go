package manager

import (
	"rsnake/game/types"

	"golang.org/x/exp/rand"
)

type FoodManager struct {
	grid types.Grid
	rng  *rand.Rand
	free []types.Point // scratch, reused between calls
}

func NewFoodManager(grid types.Grid, seed uint64) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rand.New(rand.NewSource(seed)),
		free: make([]types.Point, 0, grid.Cells()),
	}
}

// Place picks a cell uniformly from every cell not occupied. Cells listed in
// avoid are skipped as long as another free cell exists. Returns
// types.ErrBoardFull when nothing is free.
func (fm *FoodManager) Place(occupied func(types.Point) bool, avoid ...types.Point) (types.Point, error) {
	fm.free = fm.free[:0]

	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if occupied(p) {
				continue
			}
			if contains(avoid, p) {
				continue
			}
			fm.free = append(fm.free, p)
		}
	}

	if len(fm.free) == 0 {
		for _, p := range avoid {
			if fm.grid.Contains(p) && !occupied(p) {
				return p, nil
			}
		}
		return types.Point{}, types.ErrBoardFull
	}

	return fm.free[fm.rng.Intn(len(fm.free))], nil
}

func contains(points []types.Point, p types.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
