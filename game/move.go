package game

// Only MoveLeft slides tiles. The other directions are derived from it by
// transposing and reversing rows, so all four share one merge rule.

// compressRowLeft slides the row's tiles to the left edge and merges equal
// pairs scanning from that edge. A merged tile is never merged again in the
// same move.
func compressRowLeft(row [Size]int) (out [Size]int, score int) {
	tiles := make([]int, 0, Size)
	for _, v := range row {
		if v != 0 {
			tiles = append(tiles, v)
		}
	}

	n := 0
	for i := 0; i < len(tiles); i++ {
		if i+1 < len(tiles) && tiles[i] == tiles[i+1] {
			merged := tiles[i] * 2
			out[n] = merged
			score += merged
			i++
		} else {
			out[n] = tiles[i]
		}
		n++
	}
	return out, score
}

// MoveLeft returns the board after a left swipe, the score gained from merges,
// and whether any cell changed.
func MoveLeft(b Board) (Board, int, bool) {
	var next Board
	score := 0
	for r := 0; r < Size; r++ {
		row, gained := compressRowLeft(b[r])
		next[r] = row
		score += gained
	}
	return next, score, next != b
}

func MoveRight(b Board) (Board, int, bool) {
	next, score, moved := MoveLeft(ReverseRows(b))
	return ReverseRows(next), score, moved
}

func MoveUp(b Board) (Board, int, bool) {
	next, score, moved := MoveLeft(Transpose(b))
	return Transpose(next), score, moved
}

func MoveDown(b Board) (Board, int, bool) {
	next, score, moved := MoveRight(Transpose(b))
	return Transpose(next), score, moved
}

// Move applies a swipe in the given direction.
func (b Board) Move(d Direction) (Board, int, bool) {
	switch d {
	case Up:
		return MoveUp(b)
	case Down:
		return MoveDown(b)
	case Right:
		return MoveRight(b)
	default:
		return MoveLeft(b)
	}
}

func ReverseRows(b Board) Board {
	var out Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = b[r][Size-1-c]
		}
	}
	return out
}

func Transpose(b Board) Board {
	var out Board
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out[r][c] = b[c][r]
		}
	}
	return out
}
