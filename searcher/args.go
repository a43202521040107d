package searcher

import "twenty48/game"

// Hyperparameters for expectimax

const (
	MinDepth     = 1
	MaxDepth     = 8 // Chance nodes branch 2x per empty cell, so cost explodes past this
	DefaultDepth = 3
)

// Spawn outcomes weighted at every chance node
var spawns = [...]struct {
	value int
	prob  float64
}{
	{2, game.Prob2},
	{4, game.Prob4},
}
