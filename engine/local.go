package engine

import (
	"context"
	"fmt"
	"time"
	"twenty48/metrics"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	Session  *Session
	Agent    Agent
	MaxSteps int
}

func NewLocalEngine(session *Session, agent Agent, maxSteps int) *LocalEngine {
	if session == nil || agent == nil {
		panic("local engine needs a session and an agent")
	}
	if maxSteps <= 0 || maxSteps > MaxMoves {
		maxSteps = MaxMoves
	}
	return &LocalEngine{
		Session:  session,
		Agent:    agent,
		MaxSteps: maxSteps,
	}
}

// Run executes the game loop until no move is left, the step limit is reached
// or ctx is cancelled. Cancellation is only checked between moves.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	s := e.Session
	gameMetric := metrics.GameMetric{
		Seed:      s.Seed,
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Int64("seed", s.Seed).Msgf("starting game\n%v", s.Board)

	var err error
	for step := 1; step <= e.MaxSteps; step++ {
		if err = ctx.Err(); err != nil {
			log.Warn().Int("step", step).Msg("game interrupted")
			break
		}
		if s.GameOver() {
			gameMetric.GameOver = true
			break
		}

		move, value, searchMetric := e.Agent.FindMove(s.Board)
		if fa, ok := e.Agent.(FallibleAgent); ok && fa.Err() != nil {
			err = fmt.Errorf("agent failed at step %d: %w", step, fa.Err())
			break
		}
		scoreDelta, moved := s.Play(move)
		if !moved {
			// The agent only returns a no-op when the board is stuck
			log.Warn().Str("move", move.String()).Int("step", step).Msg("agent chose a no-op move, stopping")
			break
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Move:         move.String(),
			ScoreDelta:   scoreDelta,
			SearchMetric: searchMetric,
		})
		log.Debug().
			Int("step", step).
			Str("move", move.String()).
			Float64("value", value).
			Int("score", s.Score).
			Msg("played move")
	}
	if !gameMetric.GameOver && s.GameOver() {
		gameMetric.GameOver = true
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = s.Moves
	gameMetric.Score = s.Score
	gameMetric.MaxTile = s.Board.MaxTile()

	log.Info().
		Int("score", s.Score).
		Int("moves", s.Moves).
		Int("max_tile", gameMetric.MaxTile).
		Bool("game_over", gameMetric.GameOver).
		Dur("duration", gameMetric.Duration).
		Msgf("game finished\n%v", s.Board)

	return gameMetric, moveMetrics, err
}
