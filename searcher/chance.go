package searcher

import "twenty48/game"

// expectedValue is nature's node: every empty cell is equally likely, and each
// cell spawns a 2 or a 4 with their spawn odds. Branches whose probability is
// below pruneProb are skipped and the rest renormalized.
func (s *search) expectedValue(b game.Board, depth int) float64 {
	s.metrics.AddChanceNode()

	cells := b.EmptyCells()
	if depth <= 0 || len(cells) == 0 {
		return s.leaf(b)
	}

	pCell := 1 / float64(len(cells))
	total, mass := 0.0, 0.0
	pruned := false
	for _, cell := range cells {
		for _, spawn := range spawns {
			p := pCell * spawn.prob
			if p < s.pruneProb {
				s.metrics.AddPruned()
				pruned = true
				continue
			}
			total += p * s.maxValue(b.Place(cell, spawn.value), depth-1)
			mass += p
		}
	}

	if !pruned {
		return total
	}
	if mass == 0 {
		return s.leaf(b)
	}
	return total / mass
}
