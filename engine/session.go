package engine

import (
	"twenty48/game"

	"github.com/rs/zerolog/log"
)

// Session is one game: the board, the running score and the RNG that places
// new tiles. It is owned by the driver; the core functions it calls hold no
// state of their own.
type Session struct {
	Board game.Board
	Score int
	Moves int
	Seed  int64
	rng   *game.RNG
}

// NewSession starts a game from layout, or from an empty board when layout is
// nil or invalid. Tiles are spawned until at least two are on the board.
func NewSession(layout []int, seed int64) *Session {
	s := &Session{
		Seed: seed,
		rng:  game.NewRNG(seed),
	}
	if layout != nil {
		board, ok := game.NewBoardFromLayout(layout)
		if ok {
			s.Board = board
		} else {
			log.Debug().Ints("layout", layout).Msg("ignoring invalid start layout")
		}
	}
	for s.Board.TileCount() < 2 {
		if !s.Board.Spawn(s.rng) {
			break
		}
	}
	return s
}

// Play applies a move. A move that changes nothing is not scored, not counted
// and not followed by a spawn.
func (s *Session) Play(d game.Direction) (scoreDelta int, moved bool) {
	next, scoreDelta, moved := s.Board.Move(d)
	if !moved {
		return 0, false
	}
	s.Board = next
	s.Score += scoreDelta
	s.Moves++
	s.Board.Spawn(s.rng)
	return scoreDelta, true
}

func (s *Session) GameOver() bool {
	return !s.Board.CanMove()
}
