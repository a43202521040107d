package game

import (
	"strings"
	"twenty48/utils"
)

const Size = 4

// Spawn odds: a new tile is a 4 with probability Prob4, otherwise a 2
const (
	Prob2 = 0.9
	Prob4 = 1 - Prob2
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions is the fixed enumeration order used for tie-breaking
var Directions = [4]Direction{Up, Down, Left, Right}

var (
	shortNames = []string{"U", "D", "L", "R"}
	longNames  = []string{"UP", "DOWN", "LEFT", "RIGHT"}
)

func (d Direction) String() string {
	if d < Up || d > Right {
		return "?"
	}
	return shortNames[d]
}

// ParseDirection accepts the short names ("U") as well as the long ones ("up"),
// in any case.
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	i := utils.FindIndex(shortNames, s)
	if i < 0 {
		i = utils.FindIndex(longNames, s)
	}
	if i < 0 {
		return Left, false
	}
	return Directions[i], true
}

// Evaluates a board to a heuristic score, higher is better.
type Evaluate func(Board) float64
