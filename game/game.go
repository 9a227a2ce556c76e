package game

import (
	"io"
	"log"
	"sync"
	"time"

	"rsnake/game/entity"
	"rsnake/game/manager"
	"rsnake/game/types"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// State is the lifecycle stage of the current run.
type State int

const (
	StateIdle    State = iota // prepared, waiting for the first input
	StateRunning              // ticks advance the snake
	StateDead                 // hit a wall or itself
	StateWon                  // no free cell left for food
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDead:
		return "dead"
	case StateWon:
		return "won"
	}
	return "unknown"
}

// Config holds everything fixed for the lifetime of a Game.
type Config struct {
	Width  int
	Height int
	// Origin is the tail cell of the starting snake; the head sits
	// StartLength-1 cells to its right.
	Origin types.Point
	// Seed feeds the food RNG. Zero picks a time based seed.
	Seed        uint64
	InputBuffer int
	Logger      *log.Logger
}

func DefaultConfig() Config {
	return Config{
		Width:       types.DefaultWidth,
		Height:      types.DefaultHeight,
		InputBuffer: manager.DefaultInputBuffer,
	}
}

// CenteredOrigin puts the snake a quarter of the way in, on the middle row.
func CenteredOrigin(width, height int) types.Point {
	return types.Point{X: width / 4, Y: height / 2}
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(types.ErrInvalidConfig, "grid %dx%d", c.Width, c.Height)
	}
	grid := types.Grid{Width: c.Width, Height: c.Height}
	head := types.Point{X: c.Origin.X + types.StartLength - 1, Y: c.Origin.Y}
	if !grid.Contains(c.Origin) || !grid.Contains(head) {
		return errors.Wrapf(types.ErrInvalidConfig, "start %v..%v does not fit a %dx%d grid",
			c.Origin, head, c.Width, c.Height)
	}
	return nil
}

// Snapshot is a consistent copy of the game for rendering.
type Snapshot struct {
	Grid      types.Grid
	Body      []types.Point // head first
	LastTail  types.Point
	Direction types.Direction
	Growth    int
	Food      types.Point
	NextFood  types.Point
	HasFood   bool
	Started   bool
	State     State
	RunID     string
	Ticks     int
}

func (s Snapshot) Head() types.Point {
	if len(s.Body) == 0 {
		panic(types.ErrEmptyBody)
	}
	return s.Body[0]
}

func (s Snapshot) Length() int {
	return len(s.Body)
}

// TickResult reports what a single Tick did.
type TickResult struct {
	Moved     bool
	Ate       bool
	Collision manager.CollisionType
	State     State
}

// Game is the snake engine. All methods are safe for concurrent use; a single
// goroutine is expected to call Tick at the simulation rate.
type Game struct {
	mutex sync.RWMutex

	grid      types.Grid
	origin    types.Point
	snake     *entity.Snake
	food      types.Point
	nextFood  types.Point
	hasFood   bool
	state     State
	runID     string
	startTime time.Time
	ticks     int

	foodMgr      *manager.FoodManager
	collisionMgr *manager.CollisionManager
	inputMgr     *manager.InputManager
	stateMgr     *manager.StateManager

	logger *log.Logger
	now    func() time.Time
}

// NewGame validates cfg and returns a prepared game.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	grid := types.Grid{Width: cfg.Width, Height: cfg.Height}
	g := &Game{
		grid:         grid,
		origin:       cfg.Origin,
		snake:        entity.NewSnake(),
		foodMgr:      manager.NewFoodManager(grid, seed),
		collisionMgr: manager.NewCollisionManager(grid),
		inputMgr:     manager.NewInputManager(cfg.InputBuffer),
		stateMgr:     manager.NewStateManager(),
		logger:       logger,
		now:          time.Now,
	}

	if err := g.Prepare(); err != nil {
		return nil, errors.Wrap(err, "failed to prepare game")
	}
	return g, nil
}

// Prepare resets to the starting shape with a fresh run id. It may be called
// at any time, typically to restart after death.
func (g *Game) Prepare() error {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.snake.Reset(g.origin)
	g.inputMgr.Clear()
	g.state = StateIdle
	g.runID = uuid.NewString()
	g.startTime = g.now()
	g.ticks = 0
	g.hasFood = false

	first := types.Point{X: g.grid.Width / 4 * 3, Y: g.origin.Y}
	if !g.grid.Contains(first) || g.snake.Contains(first) {
		var err error
		if first, err = g.foodMgr.Place(g.snake.Contains); err != nil {
			g.state = StateWon
			return err
		}
	}
	g.food = first
	g.hasFood = true

	next, err := g.foodMgr.Place(g.snake.Contains, g.food)
	if err != nil {
		return err
	}
	g.nextFood = next

	g.logger.Printf("run %s: prepared on %dx%d, food %v, next %v",
		g.runID, g.grid.Width, g.grid.Height, g.food, g.nextFood)
	return nil
}

// Start leaves the idle state. Repeated calls are no-ops.
func (g *Game) Start() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.state != StateIdle {
		return
	}
	g.state = StateRunning
	g.startTime = g.now()
	g.snake.Start()
}

// Turn queues a heading change for an upcoming tick. Queued turns are applied
// one per tick in arrival order.
func (g *Game) Turn(dir types.Direction) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.state != StateIdle && g.state != StateRunning {
		return false
	}
	return g.inputMgr.Push(dir, g.snake.Direction())
}

// Update advances one tick: apply one queued turn, move, and eat if the head
// landed on food. It does not classify the move it just made; a head left on a
// wall or the body is caught by the next Update, which switches to StateDead
// instead of moving. Returns types.ErrBoardFull, and switches to StateWon, when
// the next food cannot be placed.
func (g *Game) Update() (bool, error) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	_, ate, err := g.update()
	return ate, err
}

func (g *Game) update() (moved, ate bool, err error) {
	if g.state != StateRunning || !g.snake.Started() {
		return false, false, nil
	}
	// A head already on a wall or the body never moves again; callers driving
	// Update without Tick still reach StateDead.
	if c := g.collisionMgr.CheckCollision(g.snake); c != manager.NoCollision {
		g.die(c)
		return false, false, nil
	}

	if dir, ok := g.inputMgr.Pop(); ok {
		g.snake.Turn(dir)
	}
	g.snake.MoveForward()
	g.ticks++

	if !g.hasFood || !g.collisionMgr.IsFoodCollision(g.snake, g.food) {
		return true, false, nil
	}

	g.snake.Grow()
	g.logger.Printf("run %s: ate food at %v, length %d", g.runID, g.food, g.snake.Len())

	if err := g.advanceFood(); err != nil {
		g.hasFood = false
		g.state = StateWon
		g.logger.Printf("run %s: board full at length %d", g.runID, g.snake.Len())
		g.recordRun(manager.Won, "")
		return true, true, err
	}
	return true, true, nil
}

// advanceFood promotes the preview to food and draws a new preview. The
// preview is re-drawn if the body has moved over it since it was placed.
func (g *Game) advanceFood() error {
	next := g.nextFood
	if g.snake.Contains(next) {
		var err error
		if next, err = g.foodMgr.Place(g.snake.Contains); err != nil {
			return err
		}
	}
	g.food = next

	preview, err := g.foodMgr.Place(g.snake.Contains, g.food)
	if err != nil {
		return err
	}
	g.nextFood = preview
	return nil
}

// Tick is Update followed by the collision checks. A wall or self hit ends the
// run in StateDead.
func (g *Game) Tick() TickResult {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.state != StateRunning || !g.snake.Started() {
		return TickResult{State: g.state}
	}

	moved, ate, err := g.update()
	result := TickResult{Moved: moved, Ate: ate, State: g.state}
	if err != nil || !moved {
		return result
	}

	result.Collision = g.collisionMgr.CheckCollision(g.snake)
	if result.Collision != manager.NoCollision {
		g.die(result.Collision)
	}
	result.State = g.state
	return result
}

func (g *Game) die(cause manager.CollisionType) {
	g.state = StateDead
	g.logger.Printf("run %s: died (%s) at %v, length %d",
		g.runID, cause, g.snake.Head(), g.snake.Len())
	g.recordRun(manager.Died, cause.String())
}

func (g *Game) recordRun(outcome manager.Outcome, cause string) {
	g.stateMgr.Record(manager.RunRecord{
		RunID:     g.runID,
		StartTime: g.startTime,
		EndTime:   g.now(),
		Length:    g.snake.Len(),
		Outcome:   outcome,
		Cause:     cause,
	})
}

// MoveForward moves the snake directly, bypassing the started gate, the turn
// queue and food handling.
func (g *Game) MoveForward() types.Point {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	return g.snake.MoveForward()
}

// Grow banks one unit of growth.
func (g *Game) Grow() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	g.snake.Grow()
}

func (g *Game) CollidesWithWall(width, height int) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.CollidesWithWall(width, height)
}

func (g *Game) CollidesWithSelf() bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.CollidesWithSelf()
}

func (g *Game) Body() []types.Point {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.Body()
}

func (g *Game) Head() types.Point {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.Head()
}

func (g *Game) Direction() types.Direction {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.Direction()
}

func (g *Game) Growth() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.Growth()
}

func (g *Game) LastTail() types.Point {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.LastTail()
}

func (g *Game) Food() types.Point {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.food
}

func (g *Game) NextFood() types.Point {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.nextFood
}

func (g *Game) Started() bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.snake.Started()
}

func (g *Game) State() State {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.state
}

func (g *Game) RunID() string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return g.runID
}

func (g *Game) Grid() types.Grid {
	return g.grid
}

// Stats returns the run history shared by every run of this game.
func (g *Game) Stats() *manager.StateManager {
	return g.stateMgr
}

func (g *Game) Snapshot() Snapshot {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	return Snapshot{
		Grid:      g.grid,
		Body:      g.snake.Body(),
		LastTail:  g.snake.LastTail(),
		Direction: g.snake.Direction(),
		Growth:    g.snake.Growth(),
		Food:      g.food,
		NextFood:  g.nextFood,
		HasFood:   g.hasFood,
		Started:   g.snake.Started(),
		State:     g.state,
		RunID:     g.runID,
		Ticks:     g.ticks,
	}
}
