package searcher

import (
	"math"
	"twenty48/game"
	"twenty48/metrics"
	"twenty48/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(e *Expectimax)

// adaptiveDepth adds bonus plies when the board has at least low (and again at
// least high) empty cells.
type adaptiveDepth struct {
	bonus int
	low   int
	high  int
}

// Expectimax is a configured searcher. It keeps no state between calls, so
// FindMove may be called from several goroutines at once.
type Expectimax struct {
	goroutines  int
	depth       int
	heuristic   game.Heuristic
	evaluate    game.Evaluate
	adaptive    *adaptiveDepth
	pruneProb   float64
	withMetrics bool
}

func WithDepth(depth int) Option {
	return func(e *Expectimax) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

func WithCorner(corner game.Corner) Option {
	return func(e *Expectimax) {
		e.heuristic.Corner = corner
	}
}

func WithWeights(weights game.Weights) Option {
	return func(e *Expectimax) {
		e.heuristic.Weights = weights
	}
}

// WithEvaluationFn replaces the heuristic, ignoring WithCorner and WithWeights
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(e *Expectimax) {
		if evaluate != nil {
			e.evaluate = evaluate
		}
	}
}

func WithAdaptiveDepth(bonus, low, high int) Option {
	return func(e *Expectimax) {
		if bonus > 0 {
			e.adaptive = &adaptiveDepth{bonus: bonus, low: low, high: high}
		}
	}
}

func WithPruneProb(p float64) Option {
	return func(e *Expectimax) {
		if p > 0 {
			e.pruneProb = p
		}
	}
}

func WithMetrics() Option {
	return func(e *Expectimax) {
		e.withMetrics = true
	}
}

// NewExpectimax builds a searcher that evaluates root moves on up to
// goroutines goroutines. The chosen move does not depend on goroutines.
func NewExpectimax(goroutines int, options ...Option) *Expectimax {
	if goroutines < 1 {
		panic("Must use at least one goroutine")
	}
	e := &Expectimax{ // Default values
		goroutines: goroutines,
		depth:      DefaultDepth,
		heuristic:  game.NewHeuristic(game.DefaultWeights(), game.DefaultCorner),
	}
	for _, option := range options {
		option(e)
	}
	if e.evaluate == nil {
		e.evaluate = e.heuristic.Evaluate
	}
	return e
}

func (e *Expectimax) Corner() game.Corner {
	return e.heuristic.Corner
}

// DepthFor returns the search depth used for b, including any adaptive bonus.
func (e *Expectimax) DepthFor(b game.Board) int {
	depth := e.depth
	if a := e.adaptive; a != nil {
		empty := b.CountEmpty()
		if empty >= a.low {
			depth += a.bonus
		}
		if empty >= a.high {
			depth += a.bonus
		}
	}
	return utils.Clamp(depth, MinDepth, MaxDepth)
}

// FindMove returns the best move for b, its expected value and the search
// metrics (zero unless WithMetrics was given). b must satisfy CanMove.
func (e *Expectimax) FindMove(b game.Board) (game.Direction, float64, metrics.SearchMetric) {
	collector := metrics.NewDummyCollector()
	if e.withMetrics {
		collector = metrics.NewCollector()
	}
	s := &search{
		evaluate:  e.evaluate,
		pruneProb: e.pruneProb,
		metrics:   collector,
	}

	depth := e.DepthFor(b)
	collector.Start(e.goroutines, depth)
	var move game.Direction
	var value float64
	if e.goroutines > 1 {
		move, value = s.bestMoveParallel(b, depth, e.goroutines)
	} else {
		move, value = s.bestMove(b, depth)
	}
	metric := collector.Complete()

	log.Debug().
		Str("move", move.String()).
		Float64("value", value).
		Int("depth", depth).
		Int64("nodes", metric.Nodes()).
		Msg("expectimax search complete")

	return move, value, metric
}

// bestMoveParallel searches each root move on its own goroutine, then picks
// among the results in the fixed enumeration order like bestMove.
func (s *search) bestMoveParallel(b game.Board, depth, goroutines int) (game.Direction, float64) {
	var values [len(game.Directions)]float64
	var moved [len(game.Directions)]bool

	g := errgroup.Group{}
	g.SetLimit(goroutines)
	for i, d := range game.Directions {
		next, _, ok := b.Move(d)
		if !ok {
			continue
		}
		moved[i] = true
		i := i
		g.Go(func() error {
			values[i] = s.expectedValue(next, depth-1)
			return nil
		})
	}
	_ = g.Wait() // Workers never fail

	best, bestValue := game.Left, math.Inf(-1)
	for i, d := range game.Directions {
		if moved[i] && values[i] > bestValue {
			best, bestValue = d, values[i]
		}
	}
	return best, bestValue
}

// BestMove searches b to the given depth with the default weights for the
// preferred corner. b must satisfy CanMove; on a terminal board it returns
// Left and -Inf.
func BestMove(b game.Board, depth int, corner game.Corner) (game.Direction, float64) {
	s := &search{
		evaluate: game.NewHeuristic(game.DefaultWeights(), corner).Evaluate,
		metrics:  metrics.NewDummyCollector(),
	}
	return s.bestMove(b, depth)
}
