package ai

import (
	"io"
	"log"

	"rsnake/game"

	"github.com/pkg/errors"
)

// TrainingConfig controls a headless training session.
type TrainingConfig struct {
	Episodes int
	MaxSteps int // per episode, guards against endless loops
	Width    int
	Height   int
	Seed     uint64
	Logger   *log.Logger
	// LogEvery prints a progress line every N episodes; zero disables it.
	LogEvery int
}

// TrainingSummary describes a finished training session.
type TrainingSummary struct {
	Episodes      int
	Steps         int
	BestLength    int
	AverageLength float64
	Won           int
}

// Train lets ap play cfg.Episodes games without rendering.
func Train(cfg TrainingConfig, ap *Autopilot) (TrainingSummary, error) {
	if cfg.Episodes <= 0 {
		return TrainingSummary{}, errors.Errorf("episodes must be positive, got %d", cfg.Episodes)
	}
	if cfg.MaxSteps <= 0 {
		cfg.MaxSteps = cfg.Width * cfg.Height * 4
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	g, err := game.NewGame(game.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Origin: game.CenteredOrigin(cfg.Width, cfg.Height),
		Seed:   cfg.Seed,
	})
	if err != nil {
		return TrainingSummary{}, errors.Wrap(err, "failed to create training game")
	}

	summary := TrainingSummary{Episodes: cfg.Episodes}
	totalLength := 0
	for episode := 0; episode < cfg.Episodes; episode++ {
		if err := g.Prepare(); err != nil {
			return summary, errors.Wrapf(err, "episode %d", episode)
		}
		g.Start()

		for step := 0; step < cfg.MaxSteps; step++ {
			ap.Decide(g)
			result := g.Tick()
			ap.Learn(g, result)
			summary.Steps++
			if result.State != game.StateRunning {
				if result.State == game.StateWon {
					summary.Won++
				}
				break
			}
		}
		ap.EndEpisode()

		// Episodes cut short by MaxSteps never reach g.Stats, so count here.
		length := len(g.Body())
		totalLength += length
		if length > summary.BestLength {
			summary.BestLength = length
		}

		if cfg.LogEvery > 0 && (episode+1)%cfg.LogEvery == 0 {
			logger.Printf("episode %d: best %d, average %.2f, epsilon %.3f",
				episode+1, summary.BestLength, float64(totalLength)/float64(episode+1), ap.agent.Epsilon)
		}
	}

	summary.AverageLength = float64(totalLength) / float64(cfg.Episodes)
	return summary, nil
}

// Pretrain runs cfg.Episodes headless episodes, then switches ap to its
// learned policy with exploration off. With no episodes ap is left as is and
// keeps exploring while it plays.
func Pretrain(cfg TrainingConfig, ap *Autopilot) (TrainingSummary, error) {
	if cfg.Episodes <= 0 {
		return TrainingSummary{}, nil
	}
	summary, err := Train(cfg, ap)
	if err != nil {
		return summary, err
	}
	ap.agent.Greedy()
	return summary, nil
}
