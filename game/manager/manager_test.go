package manager

import (
	"testing"
	"time"

	"rsnake/game/entity"
	"rsnake/game/types"

	"github.com/pkg/errors"
)

func occupiedBy(points ...types.Point) func(types.Point) bool {
	set := make(map[types.Point]bool, len(points))
	for _, p := range points {
		set[p] = true
	}
	return func(p types.Point) bool { return set[p] }
}

func TestPlaceNeverReturnsOccupiedCell(t *testing.T) {
	grid := types.Grid{Width: 4, Height: 3}
	body := []types.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 1}}
	occupied := occupiedBy(body...)
	fm := NewFoodManager(grid, 7)

	seen := make(map[types.Point]bool)
	for i := 0; i < 500; i++ {
		p, err := fm.Place(occupied)
		if err != nil {
			t.Fatalf("Place: %v", err)
		}
		if occupied(p) {
			t.Fatalf("food placed on body at %v", p)
		}
		if !grid.Contains(p) {
			t.Fatalf("food out of bounds at %v", p)
		}
		seen[p] = true
	}
	if want := grid.Cells() - len(body); len(seen) != want {
		t.Errorf("visited %d distinct cells, want all %d free ones", len(seen), want)
	}
}

func TestPlaceBoardFull(t *testing.T) {
	grid := types.Grid{Width: 2, Height: 2}
	fm := NewFoodManager(grid, 1)
	full := occupiedBy(types.Point{X: 0, Y: 0}, types.Point{X: 1, Y: 0}, types.Point{X: 0, Y: 1}, types.Point{X: 1, Y: 1})

	_, err := fm.Place(full)
	if !errors.Is(err, types.ErrBoardFull) {
		t.Fatalf("err = %v, want ErrBoardFull", err)
	}
}

func TestPlaceAvoidsUnlessNothingElse(t *testing.T) {
	grid := types.Grid{Width: 3, Height: 1}
	fm := NewFoodManager(grid, 3)
	food := types.Point{X: 2, Y: 0}

	for i := 0; i < 50; i++ {
		p, err := fm.Place(occupiedBy(types.Point{X: 0, Y: 0}), food)
		if err != nil {
			t.Fatal(err)
		}
		if p != (types.Point{X: 1, Y: 0}) {
			t.Fatalf("got %v, want the only non-avoided free cell", p)
		}
	}

	p, err := fm.Place(occupiedBy(types.Point{X: 0, Y: 0}, types.Point{X: 1, Y: 0}), food)
	if err != nil {
		t.Fatal(err)
	}
	if p != food {
		t.Errorf("got %v, want fallback to avoided cell %v", p, food)
	}
}

func TestPlaceIsDeterministicPerSeed(t *testing.T) {
	grid := types.Grid{Width: 10, Height: 10}
	a := NewFoodManager(grid, 42)
	b := NewFoodManager(grid, 42)
	none := occupiedBy()
	for i := 0; i < 20; i++ {
		pa, _ := a.Place(none)
		pb, _ := b.Place(none)
		if pa != pb {
			t.Fatalf("step %d: %v != %v", i, pa, pb)
		}
	}
}

func TestCheckCollision(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Width: 5, Height: 5})

	s := entity.NewSnake()
	s.Reset(types.Point{X: 0, Y: 0})
	if got := cm.CheckCollision(s); got != NoCollision {
		t.Errorf("fresh snake: %v", got)
	}

	s.MoveForward()
	s.MoveForward() // head (4,0)
	if got := cm.CheckCollision(s); got != NoCollision {
		t.Errorf("head at edge: %v", got)
	}
	s.MoveForward() // head (5,0)
	if got := cm.CheckCollision(s); got != WallCollision {
		t.Errorf("head off grid: %v", got)
	}

	s.Reset(types.Point{X: 0, Y: 1})
	s.Grow()
	s.Grow()
	s.MoveForward()
	s.MoveForward()
	s.Turn(types.Up)
	s.MoveForward()
	s.Turn(types.Left)
	s.MoveForward()
	s.Turn(types.Down)
	s.MoveForward()
	if got := cm.CheckCollision(s); got != SelfCollision {
		t.Errorf("head on body %v: %v", s.Body(), got)
	}
	if !cm.IsFoodCollision(s, s.Head()) {
		t.Error("IsFoodCollision false for food under head")
	}
}

func TestInputManagerFIFO(t *testing.T) {
	im := NewInputManager(3)

	// Heading right: up then left is a legal pair, applied in order.
	if !im.Push(types.Up, types.Right) {
		t.Fatal("up refused")
	}
	if !im.Push(types.Left, types.Right) {
		t.Fatal("left after up refused")
	}
	if d, _ := im.Pop(); d != types.Up {
		t.Errorf("first pop = %v, want up", d)
	}
	if d, _ := im.Pop(); d != types.Left {
		t.Errorf("second pop = %v, want left", d)
	}
	if _, ok := im.Pop(); ok {
		t.Error("pop on empty queue succeeded")
	}
}

func TestInputManagerDropsRepeatsAndReversals(t *testing.T) {
	im := NewInputManager(3)

	if im.Push(types.Left, types.Right) {
		t.Error("reversal of current heading queued")
	}
	if im.Push(types.Right, types.Right) {
		t.Error("repeat of current heading queued")
	}
	im.Push(types.Down, types.Right)
	if im.Push(types.Up, types.Right) {
		t.Error("reversal of queued heading accepted")
	}
	if im.Push(types.Down, types.Right) {
		t.Error("repeat of queued heading accepted")
	}
	if im.Len() != 1 {
		t.Errorf("len = %d, want 1", im.Len())
	}
}

func TestInputManagerCapacity(t *testing.T) {
	im := NewInputManager(2)
	im.Push(types.Up, types.Right)
	im.Push(types.Left, types.Right)
	if im.Push(types.Down, types.Right) {
		t.Error("push beyond capacity accepted")
	}
	im.Clear()
	if im.Len() != 0 {
		t.Errorf("len after clear = %d", im.Len())
	}
	if NewInputManager(0).capacity != DefaultInputBuffer {
		t.Error("non-positive capacity should fall back to the default")
	}
}

func TestStateManagerSummary(t *testing.T) {
	sm := NewStateManager()
	if s := sm.Summary(); s.GamesPlayed != 0 || s.BestLength != 0 {
		t.Fatalf("empty summary = %+v", s)
	}

	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, length := range []int{3, 9, 5, 7} {
		sm.Record(RunRecord{
			RunID:     string(rune('a' + i)),
			StartTime: start,
			EndTime:   start.Add(time.Duration(length) * time.Second),
			Length:    length,
			Outcome:   Died,
		})
	}

	s := sm.Summary()
	if s.GamesPlayed != 4 {
		t.Errorf("games = %d", s.GamesPlayed)
	}
	if s.BestLength != 9 {
		t.Errorf("best = %d", s.BestLength)
	}
	if s.LastLength != 7 {
		t.Errorf("last = %d", s.LastLength)
	}
	if s.AverageLength != 6 {
		t.Errorf("average = %v", s.AverageLength)
	}
	if s.MedianLength != 6 {
		t.Errorf("median = %v", s.MedianLength)
	}
	if d := sm.History()[1].Duration(); d != 9*time.Second {
		t.Errorf("duration = %v", d)
	}
}

func TestStateManagerBoundsHistory(t *testing.T) {
	sm := NewStateManager()
	for i := 0; i < MaxRunHistory+10; i++ {
		sm.Record(RunRecord{Length: i})
	}
	h := sm.History()
	if len(h) != MaxRunHistory {
		t.Fatalf("history len = %d", len(h))
	}
	if h[0].Length != 10 {
		t.Errorf("oldest kept = %d, want 10", h[0].Length)
	}
	if sm.Summary().GamesPlayed != MaxRunHistory+10 {
		t.Errorf("games played counts evicted runs too")
	}
}
