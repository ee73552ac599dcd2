// Package automatic plays computer vs computer games, for data collection
// and for exercising the engine end to end.
package automatic

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/kalevala9/linea/ai/bot"
	"github.com/kalevala9/linea/config"
	"github.com/kalevala9/linea/game"
	"github.com/kalevala9/linea/movegen"
	"github.com/kalevala9/linea/stats"
)

// GameRunner plays out full games between two automated players. It is not
// safe for concurrent use; give each worker its own runner.
type GameRunner struct {
	cfg    *config.Config
	game   *game.Game
	gen    *movegen.Generator
	solver *bot.Solver
}

// NewGameRunner creates a runner with the configured search settings.
func NewGameRunner(cfg *config.Config) *GameRunner {
	return &GameRunner{cfg: cfg}
}

// Init sets up a fresh game. seed 0 draws a random one; a nonzero seed
// makes the game replayable.
func (r *GameRunner) Init(seed int64) error {
	g, err := game.NewGame(game.Options{
		Players: []game.PlayerInfo{
			{Nickname: "Bot 1", Type: game.Automated},
			{Nickname: "Bot 2", Type: game.Automated},
		},
		CopiesPerCombo: r.cfg.GetInt(config.CopiesKey),
		DealSize:       r.cfg.GetInt(config.DealSizeKey),
		Seed:           seed,
	})
	if err != nil {
		return err
	}
	g.StartGame()
	r.game = g
	r.gen = movegen.NewGenerator(r.cfg.GetInt(config.MaxCandidatesKey))
	r.solver = &bot.Solver{}
	return r.solver.Init(r.gen, g, r.cfg.GetInt(config.PliesKey))
}

// PlayFull plays the game to completion and returns its result.
func (r *GameRunner) PlayFull(ctx context.Context) (stats.GameResult, error) {
	start := time.Now()
	for r.game.Playing() == game.Playing {
		if _, _, err := r.solver.ChooseAndPlay(ctx); err != nil {
			return stats.GameResult{}, err
		}
	}
	winner, ok := r.game.Winner()
	if !ok {
		winner = -1
	}
	scores := make([]int, r.game.NumPlayers())
	for i := range scores {
		scores[i] = r.game.PointsFor(i)
	}
	res := stats.GameResult{
		Seed:     r.game.Seed(),
		Players:  r.game.NumPlayers(),
		Winner:   winner,
		Scores:   scores,
		Turns:    r.game.Turn(),
		Duration: time.Since(start),
	}
	log.Debug().Int64("seed", res.Seed).Int("winner", res.Winner).
		Ints("scores", res.Scores).Int("turns", res.Turns).Msg("game over")
	return res, nil
}

// StartCompVCompGames plays numGames bot-vs-bot games across the given
// number of worker goroutines. Results go to the store when one is given,
// and are logged either way.
func StartCompVCompGames(ctx context.Context, cfg *config.Config,
	numGames, threads int, store *stats.Store) error {

	if threads < 1 {
		threads = 1
	}
	log.Info().Int("games", numGames).Int("threads", threads).Msg("starting self-play")

	jobs := make(chan int, threads)
	results := make(chan stats.GameResult, threads)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < threads; i++ {
		g.Go(func() error {
			r := NewGameRunner(cfg)
			for range jobs {
				if err := r.Init(0); err != nil {
					return err
				}
				res, err := r.PlayFull(ctx)
				if err != nil {
					return err
				}
				select {
				case results <- res:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	collectDone := make(chan error, 1)
	go func() {
		var firstErr error
		count := 0
		for res := range results {
			count++
			log.Info().Int("game", count).Int("winner", res.Winner).
				Ints("scores", res.Scores).Int("turns", res.Turns).Msg("result")
			if store != nil {
				if _, err := store.AddResult(context.Background(), res); err != nil && firstErr == nil {
					firstErr = fmt.Errorf("storing result: %w", err)
				}
			}
		}
		collectDone <- firstErr
	}()

	err := g.Wait()
	close(results)
	if cerr := <-collectDone; err == nil {
		err = cerr
	}
	return err
}
