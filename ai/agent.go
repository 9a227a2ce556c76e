package ai

import (
	"rsnake/game"
	"rsnake/game/manager"
	"rsnake/game/types"
	"rsnake/qlearning"
)

// Action is a move relative to the current heading.
type Action int

const (
	TurnLeft Action = iota
	Straight
	TurnRight
)

const NumActions = 3

// Rewards
const (
	FoodReward  = 10.0
	DeathReward = -10.0
	StepReward  = -0.01
)

// Absolute converts a relative action to a heading. It never returns the
// reverse of current.
func (a Action) Absolute(current types.Direction) types.Direction {
	switch a {
	case TurnLeft:
		return current.TurnLeft()
	case TurnRight:
		return current.TurnRight()
	default:
		return current
	}
}

// Autopilot plays the game through the same Turn calls a human would make.
type Autopilot struct {
	agent *qlearning.Agent

	lastState  string
	lastAction Action
	pending    bool
}

func NewAutopilot(seed uint64) *Autopilot {
	return &Autopilot{
		agent: qlearning.NewAgent(0.1, 0.9, seed),
	}
}

func (ap *Autopilot) Agent() *qlearning.Agent {
	return ap.agent
}

// Decide observes g, picks an action and queues the matching turn. Call it
// once before each tick.
func (ap *Autopilot) Decide(g *game.Game) Action {
	snap := g.Snapshot()
	state := Observe(snap).Key()
	action := Action(ap.agent.GetAction(state, NumActions))

	if action != Straight {
		g.Turn(action.Absolute(snap.Direction))
	}
	ap.lastState = state
	ap.lastAction = action
	ap.pending = true
	return action
}

// Learn scores the last decision against the tick it produced.
func (ap *Autopilot) Learn(g *game.Game, result game.TickResult) float64 {
	if !ap.pending {
		return 0
	}
	ap.pending = false

	reward := StepReward
	done := result.State != game.StateRunning
	switch {
	case result.Collision != manager.NoCollision:
		reward = DeathReward
	case result.Ate:
		reward = FoodReward
	}

	nextState := ""
	if !done {
		nextState = Observe(g.Snapshot()).Key()
	}
	ap.agent.Update(ap.lastState, int(ap.lastAction), reward, nextState, NumActions, done)
	return reward
}

// EndEpisode decays exploration and forgets any unscored decision.
func (ap *Autopilot) EndEpisode() {
	ap.pending = false
	ap.agent.IncrementEpisode()
}
