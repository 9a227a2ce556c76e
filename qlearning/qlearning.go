package qlearning

import (
	"math"

	"golang.org/x/exp/rand"
)

// QTable stores the Q values for each state-action pair.
type QTable map[string][]float64

// Agent is a tabular Q-learning agent with epsilon-greedy exploration.
type Agent struct {
	QTable          QTable
	LearningRate    float64
	Discount        float64
	Epsilon         float64
	InitialEpsilon  float64
	MinEpsilon      float64
	EpsilonDecay    float64
	TrainingEpisode int

	rng *rand.Rand
}

// NewAgent creates a Q-learning agent. Exploration starts high and decays
// once per finished episode.
func NewAgent(learningRate, discount float64, seed uint64) *Agent {
	return &Agent{
		QTable:         make(QTable),
		LearningRate:   learningRate,
		Discount:       discount,
		Epsilon:        0.9,
		InitialEpsilon: 0.9,
		MinEpsilon:     0.01,
		EpsilonDecay:   0.995,
		rng:            rand.New(rand.NewSource(seed)),
	}
}

// GetAction picks an action with the epsilon-greedy policy.
func (a *Agent) GetAction(state string, numActions int) int {
	if a.rng.Float64() < a.Epsilon {
		return a.rng.Intn(numActions)
	}
	return a.BestAction(state, numActions)
}

// BestAction returns the action with the highest Q value. Ties go to the
// lowest index.
func (a *Agent) BestAction(state string, numActions int) int {
	values := a.QValues(state, numActions)

	bestAction := 0
	maxQ := math.Inf(-1)
	for action, qValue := range values {
		if qValue > maxQ {
			maxQ = qValue
			bestAction = action
		}
	}
	return bestAction
}

// QValues returns the row for state, creating a zeroed one on first sight.
func (a *Agent) QValues(state string, numActions int) []float64 {
	values, ok := a.QTable[state]
	if !ok {
		values = make([]float64, numActions)
		a.QTable[state] = values
	}
	return values
}

// Update applies Q(s,a) += lr * (r + gamma * max_a' Q(s',a') - Q(s,a)).
// A terminal transition has no future value.
func (a *Agent) Update(state string, action int, reward float64, nextState string, numActions int, done bool) {
	values := a.QValues(state, numActions)

	target := reward
	if !done {
		target += a.Discount * a.maxQValue(nextState, numActions)
	}
	values[action] += a.LearningRate * (target - values[action])
}

func (a *Agent) maxQValue(state string, numActions int) float64 {
	values := a.QValues(state, numActions)
	maxQ := values[0]
	for _, qValue := range values[1:] {
		if qValue > maxQ {
			maxQ = qValue
		}
	}
	return maxQ
}

// IncrementEpisode advances the episode counter and decays epsilon.
func (a *Agent) IncrementEpisode() {
	a.TrainingEpisode++
	a.Epsilon = a.InitialEpsilon * math.Pow(a.EpsilonDecay, float64(a.TrainingEpisode))
	if a.Epsilon < a.MinEpsilon {
		a.Epsilon = a.MinEpsilon
	}
}

// Greedy turns exploration off for good; later episodes keep epsilon at zero.
func (a *Agent) Greedy() {
	a.Epsilon = 0
	a.InitialEpsilon = 0
	a.MinEpsilon = 0
}
