package engine

import (
	"context"
	"twenty48/game"
	"twenty48/metrics"
)

const MaxMoves = 10000

// Agent chooses moves. searcher.Expectimax satisfies it.
type Agent interface {
	FindMove(b game.Board) (game.Direction, float64, metrics.SearchMetric)
}

// FallibleAgent is an Agent whose moves can fail, e.g. a remote one. The
// engine stops the game once Err is non-nil.
type FallibleAgent interface {
	Agent
	Err() error
}

type Engine interface {
	// Run plays until the board is stuck, the step limit is hit or ctx is done
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
