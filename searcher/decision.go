package searcher

import (
	"math"
	"twenty48/game"
	"twenty48/metrics"
)

// search holds what the recursion reads. Nothing in it is written during a
// search except the collector, whose counters are atomic.
type search struct {
	evaluate  game.Evaluate
	pruneProb float64
	metrics   metrics.Collector
}

func (s *search) leaf(b game.Board) float64 {
	s.metrics.AddEvaluation()
	return s.evaluate(b)
}

// bestMove picks the move with the strictly greatest expected value, trying
// moves in Up, Down, Left, Right order so the earliest wins ties. With no
// legal move it returns Left and -Inf; callers must check CanMove first.
func (s *search) bestMove(b game.Board, depth int) (game.Direction, float64) {
	best, bestValue := game.Left, math.Inf(-1)
	for _, d := range game.Directions {
		next, _, moved := b.Move(d)
		if !moved {
			continue
		}
		if v := s.expectedValue(next, depth-1); v > bestValue {
			best, bestValue = d, v
		}
	}
	return best, bestValue
}

// maxValue is the player's node: the best chance value over all moves that
// change the board.
func (s *search) maxValue(b game.Board, depth int) float64 {
	s.metrics.AddMaxNode()

	if depth <= 0 || !b.CanMove() {
		return s.leaf(b)
	}

	value := math.Inf(-1)
	for _, d := range game.Directions {
		next, _, moved := b.Move(d)
		if !moved {
			continue
		}
		value = math.Max(value, s.expectedValue(next, depth-1))
	}
	if math.IsInf(value, -1) { // Every move was a no-op
		return s.leaf(b)
	}
	return value
}
