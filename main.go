package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"rsnake/ai"
	"rsnake/game"
	"rsnake/game/types"
	"rsnake/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	width := flag.Int("width", types.DefaultWidth, "Grid width in cells")
	height := flag.Int("height", types.DefaultHeight, "Grid height in cells")
	fps := flag.Int("fps", types.DefaultFPS, "Frames per second")
	framesPerTick := flag.Int("frames-per-tick", types.DefaultTickEvery, "Frames between snake moves (lower = faster)")
	styleName := flag.String("style", "line", "Body style: line or block")
	seed := flag.Uint64("seed", 0, "Food RNG seed (0 = time based)")
	autopilot := flag.Bool("autopilot", false, "Let the Q-learning agent play")
	train := flag.Int("train", 0, "Headless training episodes, then the autopilot plays greedily (implies -autopilot)")
	debug := flag.Bool("debug", false, "Log game events to stderr")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if *debug {
		logger = log.New(os.Stderr, "rsnake: ", log.LstdFlags|log.Lmicroseconds)
	}

	style, err := ui.ParseStyle(*styleName)
	if err != nil {
		fatal(err)
	}
	if *framesPerTick <= 0 {
		*framesPerTick = 1
	}

	cfg := game.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Origin = game.CenteredOrigin(*width, *height)
	cfg.Seed = *seed
	cfg.Logger = logger

	g, err := game.NewGame(cfg)
	if err != nil {
		fatal(err)
	}

	// Training only makes sense if the trained agent then plays.
	if *train > 0 {
		*autopilot = true
	}

	var pilot *ai.Autopilot
	if *autopilot {
		pilot = ai.NewAutopilot(*seed)
		summary, err := ai.Pretrain(ai.TrainingConfig{
			Episodes: *train,
			Width:    *width,
			Height:   *height,
			Seed:     *seed,
			Logger:   logger,
			LogEvery: 100,
		}, pilot)
		if err != nil {
			fatal(err)
		}
		if *train > 0 {
			logger.Printf("trained %d episodes: best %d, average %.2f, won %d; playing greedily",
				summary.Episodes, summary.BestLength, summary.AverageLength, summary.Won)
		}
	}

	cellSize := int32(types.DefaultCellSize)
	winW, winH := ui.WindowSize(g.Grid(), cellSize)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(winW, winH, "rsnake")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(*fps))

	renderer := ui.NewRenderer(cellSize, style)
	frame := 0

	for !rl.WindowShouldClose() {
		handleInput(g, pilot != nil)

		frame++
		if frame >= *framesPerTick {
			frame = 0
			step(g, pilot, logger)
		}

		progress := float32(frame) / float32(*framesPerTick)
		renderer.Draw(g.Snapshot(), g.Stats().Summary(), progress)
	}
}

var arrowKeys = []struct {
	key int32
	dir types.Direction
}{
	{rl.KeyUp, types.Up},
	{rl.KeyDown, types.Down},
	{rl.KeyLeft, types.Left},
	{rl.KeyRight, types.Right},
}

func handleInput(g *game.Game, auto bool) {
	switch g.State() {
	case game.StateDead, game.StateWon:
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
			if err := g.Prepare(); err != nil {
				fatal(err)
			}
		}
		return
	}

	if auto {
		if g.State() == game.StateIdle {
			g.Start()
		}
		return
	}

	for _, k := range arrowKeys {
		if rl.IsKeyPressed(k.key) {
			g.Turn(k.dir)
			g.Start()
		}
	}
}

func step(g *game.Game, pilot *ai.Autopilot, logger *log.Logger) {
	if pilot == nil {
		g.Tick()
		return
	}
	if g.State() != game.StateRunning {
		return
	}
	pilot.Decide(g)
	result := g.Tick()
	pilot.Learn(g, result)
	if result.State != game.StateRunning {
		pilot.EndEpisode()
		// The autopilot restarts on its own.
		if err := g.Prepare(); err != nil {
			logger.Printf("autopilot restart: %v", err)
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "rsnake:", err)
	os.Exit(1)
}
