package ai

import (
	"testing"

	"rsnake/game"
	"rsnake/game/manager"
	"rsnake/game/types"
)

func pt(x, y int) types.Point {
	return types.Point{X: x, Y: y}
}

func TestObserveDangerAndFood(t *testing.T) {
	snap := game.Snapshot{
		Grid:      types.Grid{Width: 5, Height: 5},
		Body:      []types.Point{pt(4, 0), pt(3, 0), pt(2, 0)},
		Direction: types.Right,
		Food:      pt(1, 3),
		HasFood:   true,
	}
	s := Observe(snap)

	if !s.DangerAhead {
		t.Error("wall ahead not sensed")
	}
	if !s.DangerLeft {
		t.Error("wall to the left (up) not sensed")
	}
	if s.DangerRight {
		t.Error("free cell to the right (down) sensed as danger")
	}
	if !s.FoodBehind || s.FoodAhead {
		t.Errorf("food behind: %+v", s)
	}
	if !s.FoodRight || s.FoodLeft {
		t.Errorf("food to the right: %+v", s)
	}
}

func TestObserveTailIsSafeUnlessGrowing(t *testing.T) {
	// Head at (1,1) heading up, tail at (1,0) directly ahead.
	snap := game.Snapshot{
		Grid:      types.Grid{Width: 5, Height: 5},
		Body:      []types.Point{pt(1, 1), pt(2, 1), pt(2, 0), pt(1, 0)},
		Direction: types.Up,
	}
	if Observe(snap).DangerAhead {
		t.Error("tail cell counted as danger")
	}
	snap.Growth = 1
	if !Observe(snap).DangerAhead {
		t.Error("tail cell with pending growth counted as safe")
	}
}

func TestStateKeyDistinguishesStates(t *testing.T) {
	a := State{DangerAhead: true}
	b := State{FoodAhead: true}
	if a.Key() == b.Key() {
		t.Errorf("keys collide: %q", a.Key())
	}
	if (State{}).Key() != "d000:f0000" {
		t.Errorf("empty key = %q", (State{}).Key())
	}
}

func TestAbsoluteNeverReverses(t *testing.T) {
	for _, d := range types.Directions {
		for _, a := range []Action{TurnLeft, Straight, TurnRight} {
			if a.Absolute(d) == d.Opposite() {
				t.Errorf("%v from %v reverses", a, d)
			}
		}
		if Straight.Absolute(d) != d {
			t.Errorf("straight from %v = %v", d, Straight.Absolute(d))
		}
	}
}

func TestLearnRewardsCollision(t *testing.T) {
	cfg := game.Config{Width: 5, Height: 5, Seed: 1}
	g, err := game.NewGame(cfg)
	if err != nil {
		t.Fatal(err)
	}
	g.Start()

	ap := NewAutopilot(1)
	ap.agent.Greedy()
	ap.lastState = "s"
	ap.lastAction = Straight
	ap.pending = true

	reward := ap.Learn(g, game.TickResult{Moved: true, Collision: manager.WallCollision, State: game.StateDead})
	if reward != DeathReward {
		t.Errorf("reward = %v", reward)
	}
	if got := ap.agent.QTable["s"][Straight]; got >= 0 {
		t.Errorf("Q after death = %v, want negative", got)
	}
	if ap.Learn(g, game.TickResult{}) != 0 {
		t.Error("second Learn without Decide scored again")
	}
}

func TestDecideQueuesTurn(t *testing.T) {
	g, err := game.NewGame(game.Config{Width: 10, Height: 10, Origin: pt(2, 5), Seed: 2})
	if err != nil {
		t.Fatal(err)
	}
	g.Start()
	ap := NewAutopilot(3)
	ap.agent.Greedy()
	state := Observe(g.Snapshot()).Key()
	ap.agent.QTable[state] = []float64{0, 0, 5} // prefer turning right

	if a := ap.Decide(g); a != TurnRight {
		t.Fatalf("action = %v", a)
	}
	g.Tick()
	if g.Direction() != types.Down {
		t.Errorf("direction = %v, want down", g.Direction())
	}
}

func TestTrainPlaysEveryEpisode(t *testing.T) {
	ap := NewAutopilot(7)
	summary, err := Train(TrainingConfig{
		Episodes: 30,
		MaxSteps: 200,
		Width:    8,
		Height:   8,
		Seed:     11,
	}, ap)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Episodes != 30 {
		t.Errorf("episodes = %d", summary.Episodes)
	}
	if summary.BestLength < types.StartLength {
		t.Errorf("best length = %d", summary.BestLength)
	}
	if summary.AverageLength < types.StartLength {
		t.Errorf("average length = %v", summary.AverageLength)
	}
	if summary.Steps == 0 || len(ap.agent.QTable) == 0 {
		t.Errorf("nothing learned: steps=%d states=%d", summary.Steps, len(ap.agent.QTable))
	}
	if ap.agent.TrainingEpisode != 30 {
		t.Errorf("agent saw %d episodes", ap.agent.TrainingEpisode)
	}
}

func TestTrainRejectsNoEpisodes(t *testing.T) {
	if _, err := Train(TrainingConfig{Width: 8, Height: 8}, NewAutopilot(1)); err == nil {
		t.Error("expected error for zero episodes")
	}
}

func TestPretrainPlaysGreedily(t *testing.T) {
	ap := NewAutopilot(5)
	summary, err := Pretrain(TrainingConfig{Episodes: 10, MaxSteps: 100, Width: 8, Height: 8, Seed: 3}, ap)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Episodes != 10 {
		t.Errorf("episodes = %d", summary.Episodes)
	}
	if ap.agent.Epsilon != 0 {
		t.Fatalf("epsilon after pretraining = %v, want 0", ap.agent.Epsilon)
	}

	// Playing on keeps the policy greedy across episodes.
	ap.EndEpisode()
	ap.EndEpisode()
	if ap.agent.Epsilon != 0 {
		t.Errorf("epsilon after live episodes = %v", ap.agent.Epsilon)
	}
}

func TestPretrainWithoutEpisodesKeepsExploring(t *testing.T) {
	ap := NewAutopilot(5)
	before := ap.agent.Epsilon
	if _, err := Pretrain(TrainingConfig{Width: 8, Height: 8}, ap); err != nil {
		t.Fatal(err)
	}
	if ap.agent.Epsilon != before || before == 0 {
		t.Errorf("epsilon = %v, want untouched %v", ap.agent.Epsilon, before)
	}
}
