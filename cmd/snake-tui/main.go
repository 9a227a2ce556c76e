package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"rsnake/ai"
	"rsnake/game"
	"rsnake/game/types"
	"rsnake/tui"

	"github.com/gdamore/tcell/v2"
)

const (
	logDir      = "logs"
	logFileName = "rsnake.log"
	maxLogSize  = 10 * 1024 * 1024
)

var rename = os.Rename

// setupLogging points the standard logger at logs/rsnake.log when debug is
// set and discards everything otherwise. The terminal belongs to tcell, so
// nothing may go to stdout or stderr.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	var rotateErr error
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("rsnake-%s.log", time.Now().Format("20060102-150405")))
		rotateErr = rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if rotateErr != nil {
		log.Printf("log rotation failed, appending to %s: %v", logPath, rotateErr)
	}
	return f
}

var keyDirections = map[tcell.Key]types.Direction{
	tcell.KeyUp:    types.Up,
	tcell.KeyDown:  types.Down,
	tcell.KeyLeft:  types.Left,
	tcell.KeyRight: types.Right,
}

var runeDirections = map[rune]types.Direction{
	'w': types.Up,
	's': types.Down,
	'a': types.Left,
	'd': types.Right,
}

func main() {
	width := flag.Int("width", types.DefaultWidth, "Grid width in cells")
	height := flag.Int("height", types.DefaultHeight, "Grid height in cells")
	fps := flag.Int("fps", types.DefaultFPS, "Frames per second")
	framesPerTick := flag.Int("frames-per-tick", types.DefaultTickEvery, "Frames between snake moves (lower = faster)")
	seed := flag.Uint64("seed", 0, "Food RNG seed (0 = time based)")
	autopilot := flag.Bool("autopilot", false, "Let the Q-learning agent play")
	train := flag.Int("train", 0, "Headless training episodes, then the autopilot plays greedily (implies -autopilot)")
	sound := flag.Bool("sound", false, "Play a chime when the snake eats")
	debug := flag.Bool("debug", false, "Log game events to logs/rsnake.log")
	flag.Parse()

	if logFile := setupLogging(*debug); logFile != nil {
		defer logFile.Close()
	}
	if *fps <= 0 {
		*fps = types.DefaultFPS
	}
	if *framesPerTick <= 0 {
		*framesPerTick = 1
	}

	cfg := game.DefaultConfig()
	cfg.Width = *width
	cfg.Height = *height
	cfg.Origin = game.CenteredOrigin(*width, *height)
	cfg.Seed = *seed
	cfg.Logger = log.Default()

	g, err := game.NewGame(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rsnake:", err)
		os.Exit(1)
	}

	var chime *tui.Chime
	if *sound {
		if chime, err = tui.NewChime(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer chime.Close()
	}

	pilot, err := newPilot(*autopilot, *train, *width, *height, *seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "rsnake:", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, "rsnake:", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, "rsnake:", err)
		os.Exit(1)
	}
	defer screen.Fini()

	run(screen, g, pilot, chime, time.Second/time.Duration(*fps), *framesPerTick)
}

func run(screen tcell.Screen, g *game.Game, pilot *ai.Autopilot, chime *tui.Chime, frameEvery time.Duration, framesPerTick int) {
	view := tui.NewView(screen)
	ticker := time.NewTicker(frameEvery)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	frame := 0
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
				continue
			}
			if !handleEvent(g, pilot != nil, ev) {
				return
			}

		case <-ticker.C:
			if pilot != nil && g.State() == game.StateIdle {
				g.Start()
			}
			frame++
			if frame >= framesPerTick {
				frame = 0
				if step(g, pilot) {
					chime.Play()
				}
			}
			view.Draw(g.Snapshot(), g.Stats().Summary())
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// newPilot returns nil unless autopilot is set or training is requested;
// training implies the trained agent plays.
func newPilot(autopilot bool, train, width, height int, seed uint64) (*ai.Autopilot, error) {
	if !autopilot && train <= 0 {
		return nil, nil
	}
	pilot := ai.NewAutopilot(seed)
	summary, err := ai.Pretrain(ai.TrainingConfig{
		Episodes: train,
		Width:    width,
		Height:   height,
		Seed:     seed,
		Logger:   log.Default(),
		LogEvery: 100,
	}, pilot)
	if err != nil {
		return nil, err
	}
	if train > 0 {
		log.Printf("trained %d episodes: best %d, average %.2f, won %d; playing greedily",
			summary.Episodes, summary.BestLength, summary.AverageLength, summary.Won)
	}
	return pilot, nil
}

// handleEvent applies one terminal event and reports whether to keep running.
func handleEvent(g *game.Game, auto bool, ev tcell.Event) bool {
	if ev, ok := ev.(*tcell.EventKey); ok {
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}

		state := g.State()
		if state == game.StateDead || state == game.StateWon {
			if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
				if err := g.Prepare(); err != nil {
					log.Printf("restart: %v", err)
				}
			}
			return true
		}
		if auto {
			return true
		}

		dir, ok := keyDirections[ev.Key()]
		if !ok && ev.Key() == tcell.KeyRune {
			dir, ok = runeDirections[ev.Rune()]
		}
		if ok {
			g.Turn(dir)
			g.Start()
		}
	}
	return true
}

// step advances one tick and reports whether the snake ate.
func step(g *game.Game, pilot *ai.Autopilot) bool {
	if pilot == nil {
		return g.Tick().Ate
	}
	if g.State() != game.StateRunning {
		return false
	}
	pilot.Decide(g)
	result := g.Tick()
	pilot.Learn(g, result)
	if result.State != game.StateRunning {
		pilot.EndEpisode()
		if err := g.Prepare(); err != nil {
			log.Printf("autopilot restart: %v", err)
		}
	}
	return result.Ate
}
