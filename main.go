package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"twenty48/config"
	"twenty48/engine"
	"twenty48/game"
	"twenty48/searcher"
	"twenty48/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if cfg.Serve {
		err = serve(ctx, cfg)
	} else {
		err = play(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("exiting")
	}
}

func play(ctx context.Context, cfg *config.Config) error {
	seed, ok, err := cfg.SeedValue()
	if err != nil {
		return err
	}
	if !ok {
		seed = game.RandomSeed()
	}
	var agent engine.Agent
	if cfg.Remote != "" {
		agent = server.NewClient(cfg.Remote, cfg.Depth, cfg.CornerValue())
	} else {
		agent, err = createExpectimax(cfg)
		if err != nil {
			return err
		}
	}
	e := engine.NewLocalEngine(engine.NewSession(cfg.Layout(), seed), agent, cfg.MaxSteps)

	gameMetric, _, err := e.Run(ctx)
	fmt.Printf("Final board (score %d, max tile %d, %d moves):\n%v",
		gameMetric.Score, gameMetric.MaxTile, gameMetric.TotalMoves, e.Session.Board)
	return err
}

func serve(ctx context.Context, cfg *config.Config) error {
	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.New(cfg.Weights(), cfg.Goroutines).Handler(),
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Listen).Msg("serving")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("got quit signal, shutting down")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func createExpectimax(cfg *config.Config) (*searcher.Expectimax, error) {
	options := []searcher.Option{
		searcher.WithDepth(cfg.Depth),
		searcher.WithCorner(cfg.CornerValue()),
		searcher.WithWeights(cfg.Weights()),
	}
	if cfg.DepthBonusEmpty > 0 {
		low, high, err := cfg.Thresholds()
		if err != nil {
			return nil, err
		}
		options = append(options, searcher.WithAdaptiveDepth(cfg.DepthBonusEmpty, low, high))
	}
	if cfg.PruneProb > 0 {
		options = append(options, searcher.WithPruneProb(cfg.PruneProb))
	}
	if cfg.Debug {
		options = append(options, searcher.WithMetrics())
	}

	return searcher.NewExpectimax(cfg.Goroutines, options...), nil
}
