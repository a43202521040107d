package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Board is a 4x4 grid of tiles. Zero is an empty cell, every other cell holds
// a power of two >= 2. Boards are values: every transition returns a copy.
type Board [Size][Size]int

type Cell struct {
	Row int
	Col int
}

// NewBoardFromLayout builds a board from 16 row-major values. It reports false
// when the layout has the wrong length or holds a value that is not 0 or a
// power of two >= 2.
func NewBoardFromLayout(layout []int) (Board, bool) {
	var b Board
	if len(layout) != Size*Size {
		return b, false
	}
	for i, v := range layout {
		if !validTile(v) {
			return Board{}, false
		}
		b[i/Size][i%Size] = v
	}
	return b, true
}

func validTile(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// Flatten returns the cells in row-major order
func (b Board) Flatten() []int {
	cells := make([]int, 0, Size*Size)
	for r := 0; r < Size; r++ {
		cells = append(cells, b[r][:]...)
	}
	return cells
}

// EmptyCells lists the empty cells in row-major order.
func (b Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, Size*Size)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == 0 {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

func (b Board) CountEmpty() int {
	return lo.Count(b.Flatten(), 0)
}

func (b Board) MaxTile() int {
	return lo.Max(b.Flatten())
}

func (b Board) TileCount() int {
	return Size*Size - b.CountEmpty()
}

// CanMove reports whether any move can change the board: an empty cell or two
// equal orthogonal neighbours.
func (b Board) CanMove() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			v := b[r][c]
			if v == 0 {
				return true
			}
			if r+1 < Size && b[r+1][c] == v {
				return true
			}
			if c+1 < Size && b[r][c+1] == v {
				return true
			}
		}
	}
	return false
}

// Spawn places a new tile on a random empty cell. The first draw picks the cell
// among the empty cells in row-major order, the second picks the value.
// Returns false, leaving the board untouched, when the board is full.
func (b *Board) Spawn(rng *RNG) bool {
	cells := b.EmptyCells()
	if len(cells) == 0 {
		return false
	}
	cell := cells[int(rng.Next()*float64(len(cells)))]
	value := 2
	if rng.Next() < Prob4 {
		value = 4
	}
	b[cell.Row][cell.Col] = value
	return true
}

// Place returns a copy of the board with value set at cell
func (b Board) Place(cell Cell, value int) Board {
	b[cell.Row][cell.Col] = value
	return b
}

func (b Board) String() string {
	width := max(4, len(strconv.Itoa(b.MaxTile())))
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%*d", width, b[r][c])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MarshalJSON encodes the board as 16 row-major values.
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Flatten())
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var layout []int
	if err := json.Unmarshal(data, &layout); err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}
	board, ok := NewBoardFromLayout(layout)
	if !ok {
		return fmt.Errorf("invalid board layout: %v", layout)
	}
	*b = board
	return nil
}
