package entity

import (
	"rsnake/game/types"
)

// Snake is the player's body and heading. It does no locking of its own;
// the owning game.Game serializes access.
type Snake struct {
	body      []types.Point // head first
	lastTail  types.Point
	direction types.Direction
	growth    int
	started   bool
}

func NewSnake() *Snake {
	return &Snake{direction: types.Right}
}

// Reset lays the snake out as StartLength cells in a row ending at tail,
// heading Right, with an empty growth bank.
func (s *Snake) Reset(tail types.Point) {
	s.body = s.body[:0]
	for i := types.StartLength - 1; i >= 0; i-- {
		s.body = append(s.body, types.Point{X: tail.X + i, Y: tail.Y})
	}
	s.lastTail = types.Point{X: tail.X + types.StartLength, Y: tail.Y}
	s.direction = types.Right
	s.growth = 0
	s.started = false
}

func (s *Snake) Start() {
	s.started = true
}

func (s *Snake) Started() bool {
	return s.started
}

// Head returns the front segment. Calling it before Reset is a programming
// error and panics with types.ErrEmptyBody.
func (s *Snake) Head() types.Point {
	if len(s.body) == 0 {
		panic(types.ErrEmptyBody)
	}
	return s.body[0]
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []types.Point {
	body := make([]types.Point, len(s.body))
	copy(body, s.body)
	return body
}

func (s *Snake) Len() int {
	return len(s.body)
}

func (s *Snake) Direction() types.Direction {
	return s.direction
}

func (s *Snake) Growth() int {
	return s.growth
}

// LastTail is the cell vacated by the latest move that did not grow.
func (s *Snake) LastTail() types.Point {
	return s.lastTail
}

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p types.Point) bool {
	for _, part := range s.body {
		if part == p {
			return true
		}
	}
	return false
}

// Turn changes heading unless dir reverses the current one.
func (s *Snake) Turn(dir types.Direction) {
	if dir == s.direction.Opposite() {
		return
	}
	s.direction = dir
}

func (s *Snake) Grow() {
	s.growth++
}

// MoveForward advances the head one cell. With an empty growth bank the tail
// is dropped and remembered in LastTail, otherwise one unit of growth is spent.
// No collision checks happen here.
func (s *Snake) MoveForward() types.Point {
	newHead := s.Head().Step(s.direction)

	s.body = append(s.body, types.Point{})
	copy(s.body[1:], s.body)
	s.body[0] = newHead

	if s.growth == 0 {
		s.lastTail = s.body[len(s.body)-1]
		s.body = s.body[:len(s.body)-1]
	} else {
		s.growth--
	}
	return newHead
}

func (s *Snake) CollidesWithWall(width, height int) bool {
	return !types.Grid{Width: width, Height: height}.Contains(s.Head())
}

func (s *Snake) CollidesWithSelf() bool {
	head := s.Head()
	for _, part := range s.body[1:] {
		if part == head {
			return true
		}
	}
	return false
}
