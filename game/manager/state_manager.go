package manager

import (
	"sort"
	"sync"
	"time"
)

// MaxRunHistory bounds how many finished runs are kept.
const MaxRunHistory = 50

// Outcome is how a run ended.
type Outcome int

const (
	Died Outcome = iota
	Won
)

func (o Outcome) String() string {
	if o == Won {
		return "won"
	}
	return "died"
}

// RunRecord is one finished run. Length is the body length at the end.
type RunRecord struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time
	Length    int
	Outcome   Outcome
	Cause     string // collision type for deaths
}

func (r RunRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// Summary aggregates every run recorded since the process started.
type Summary struct {
	GamesPlayed   int
	BestLength    int
	LastLength    int
	AverageLength float64
	MedianLength  float64
}

// StateManager keeps the in-memory run history of a session.
type StateManager struct {
	mutex       sync.RWMutex
	history     []RunRecord
	gamesPlayed int
	bestLength  int
	totalLength int
}

func NewStateManager() *StateManager {
	return &StateManager{
		history: make([]RunRecord, 0, MaxRunHistory),
	}
}

func (sm *StateManager) Record(run RunRecord) {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if len(sm.history) >= MaxRunHistory {
		sm.history = sm.history[1:]
	}
	sm.history = append(sm.history, run)

	sm.gamesPlayed++
	sm.totalLength += run.Length
	if run.Length > sm.bestLength {
		sm.bestLength = run.Length
	}
}

// History returns a copy of the kept runs, oldest first.
func (sm *StateManager) History() []RunRecord {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	out := make([]RunRecord, len(sm.history))
	copy(out, sm.history)
	return out
}

// Summary reports totals over all runs; the median covers the kept history.
func (sm *StateManager) Summary() Summary {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	s := Summary{
		GamesPlayed: sm.gamesPlayed,
		BestLength:  sm.bestLength,
	}
	if sm.gamesPlayed == 0 {
		return s
	}
	s.AverageLength = float64(sm.totalLength) / float64(sm.gamesPlayed)
	s.LastLength = sm.history[len(sm.history)-1].Length

	lengths := make([]float64, len(sm.history))
	for i, run := range sm.history {
		lengths[i] = float64(run.Length)
	}
	sort.Float64s(lengths)
	if n := len(lengths); n%2 == 0 {
		s.MedianLength = (lengths[n/2-1] + lengths[n/2]) / 2
	} else {
		s.MedianLength = lengths[n/2]
	}
	return s
}
