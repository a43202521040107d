package game

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

const DefaultCorner = BottomLeft

var cornerNames = map[string]Corner{
	"TL": TopLeft,
	"TR": TopRight,
	"BL": BottomLeft,
	"BR": BottomRight,
}

// ParseCorner maps "TL", "TR", "BL" or "BR" to a corner. Anything else falls
// back to DefaultCorner and reports false.
func ParseCorner(name string) (Corner, bool) {
	c, ok := cornerNames[name]
	if !ok {
		return DefaultCorner, false
	}
	return c, true
}

// CornerNames lists the accepted corner names, sorted
func CornerNames() []string {
	names := lo.Keys(cornerNames)
	sort.Strings(names)
	return names
}

func (c Corner) String() string {
	name, ok := lo.FindKey(cornerNames, c)
	if !ok {
		return "BL"
	}
	return name
}

// Cell is the grid coordinate of the corner
func (c Corner) Cell() Cell {
	switch c {
	case TopLeft:
		return Cell{0, 0}
	case TopRight:
		return Cell{0, Size - 1}
	case BottomRight:
		return Cell{Size - 1, Size - 1}
	default:
		return Cell{Size - 1, 0}
	}
}

// Rank matrices: 15 at the corner, descending away from it along both axes.
var gradients = map[Corner][Size][Size]float64{
	TopLeft:     {{15, 14, 13, 12}, {11, 10, 9, 8}, {7, 6, 5, 4}, {3, 2, 1, 0}},
	TopRight:    {{12, 13, 14, 15}, {8, 9, 10, 11}, {4, 5, 6, 7}, {0, 1, 2, 3}},
	BottomLeft:  {{3, 2, 1, 0}, {7, 6, 5, 4}, {11, 10, 9, 8}, {15, 14, 13, 12}},
	BottomRight: {{0, 1, 2, 3}, {4, 5, 6, 7}, {8, 9, 10, 11}, {12, 13, 14, 15}},
}

// Gradient returns the monotonicity rank matrix for the corner.
func (c Corner) Gradient() [Size][Size]float64 {
	g, ok := gradients[c]
	if !ok {
		return gradients[DefaultCorner]
	}
	return g
}

// Weights of the heuristic terms. Empty and Corner dominate, Monotonicity is
// secondary and Smoothness only breaks ties.
type Weights struct {
	Empty        float64 `json:"empty" yaml:"empty"`
	Monotonicity float64 `json:"monotonicity" yaml:"monotonicity"`
	Smoothness   float64 `json:"smoothness" yaml:"smoothness"`
	Corner       float64 `json:"corner" yaml:"corner"`
}

func DefaultWeights() Weights {
	return Weights{
		Empty:        270,
		Monotonicity: 47,
		Smoothness:   0.3,
		Corner:       1000,
	}
}

// Heuristic scores boards for one preferred corner. It is read-only for the
// duration of a game.
type Heuristic struct {
	Weights Weights
	Corner  Corner
}

func NewHeuristic(weights Weights, corner Corner) Heuristic {
	return Heuristic{Weights: weights, Corner: corner}
}

// Score evaluates b with the default weights.
func Score(b Board, corner Corner) float64 {
	return NewHeuristic(DefaultWeights(), corner).Evaluate(b)
}

// Evaluate sums the weighted empty-cell, monotonicity, smoothness and
// corner-bonus terms. No normalization is applied.
func (h Heuristic) Evaluate(b Board) float64 {
	w := h.Weights
	return w.Empty*float64(b.CountEmpty()) +
		w.Monotonicity*monotonicity(b, h.Corner.Gradient()) +
		w.Smoothness*smoothness(b) +
		cornerBonus(b, h.Corner, w.Corner)
}

func monotonicity(b Board, grad [Size][Size]float64) float64 {
	total := 0.0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if v := b[r][c]; v != 0 {
				total += grad[r][c] * math.Log2(float64(v))
			}
		}
	}
	return total
}

// smoothness is the negated sum of log2 gaps between adjacent non-empty tiles
func smoothness(b Board) float64 {
	total := 0.0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := b[r][c]
			if v == 0 {
				continue
			}
			lv := math.Log2(float64(v))
			if r+1 < Size && b[r+1][c] != 0 {
				total -= math.Abs(lv - math.Log2(float64(b[r+1][c])))
			}
			if c+1 < Size && b[r][c+1] != 0 {
				total -= math.Abs(lv - math.Log2(float64(b[r][c+1])))
			}
		}
	}
	return total
}

// cornerBonus pays out when the corner cell holds the max tile value, even if
// the same value also sits elsewhere.
func cornerBonus(b Board, corner Corner, bonus float64) float64 {
	maxTile := b.MaxTile()
	cell := corner.Cell()
	if maxTile > 0 && b[cell.Row][cell.Col] == maxTile {
		return bonus
	}
	return 0
}
