package ai

import (
	"fmt"

	"rsnake/game"
	"rsnake/game/types"
)

// State is what the autopilot senses, relative to the snake's heading.
type State struct {
	DangerAhead bool
	DangerLeft  bool
	DangerRight bool
	FoodAhead   bool
	FoodBehind  bool
	FoodLeft    bool
	FoodRight   bool
}

// Key encodes the state for the Q table.
func (s State) Key() string {
	return fmt.Sprintf("d%d%d%d:f%d%d%d%d",
		b2i(s.DangerAhead), b2i(s.DangerLeft), b2i(s.DangerRight),
		b2i(s.FoodAhead), b2i(s.FoodBehind), b2i(s.FoodLeft), b2i(s.FoodRight))
}

// Observe reads the sensors from a snapshot.
func Observe(snap game.Snapshot) State {
	head := snap.Head()
	dir := snap.Direction

	s := State{
		DangerAhead: isDanger(snap, head.Step(dir)),
		DangerLeft:  isDanger(snap, head.Step(dir.TurnLeft())),
		DangerRight: isDanger(snap, head.Step(dir.TurnRight())),
	}
	if !snap.HasFood {
		return s
	}

	dx, dy := snap.Food.X-head.X, snap.Food.Y-head.Y
	forward := dir.ToPoint()
	left := dir.TurnLeft().ToPoint()
	along := dx*forward.X + dy*forward.Y
	across := dx*left.X + dy*left.Y

	s.FoodAhead = along > 0
	s.FoodBehind = along < 0
	s.FoodLeft = across > 0
	s.FoodRight = across < 0
	return s
}

// isDanger reports whether moving the head onto p ends the run. The tail
// cell is safe unless growth keeps it in place.
func isDanger(snap game.Snapshot, p types.Point) bool {
	if !snap.Grid.Contains(p) {
		return true
	}
	body := snap.Body
	if snap.Growth == 0 && len(body) > 1 {
		body = body[:len(body)-1]
	}
	for _, part := range body {
		if part == p {
			return true
		}
	}
	return false
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
