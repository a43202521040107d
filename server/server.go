package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"twenty48/game"
	"twenty48/searcher"
	"twenty48/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Server exposes the stateless board operations over HTTP. Every request
// carries the board it operates on.
type Server struct {
	Weights    game.Weights
	Goroutines int
}

func New(weights game.Weights, goroutines int) *Server {
	if goroutines < 1 {
		goroutines = 1
	}
	return &Server{Weights: weights, Goroutines: goroutines}
}

type bestMoveRequest struct {
	Board  game.Board `json:"board"`
	Depth  int        `json:"depth"`
	Corner string     `json:"corner"`
}

type bestMoveResponse struct {
	Move  string `json:"move"`
	Depth int    `json:"depth"`
	// nil when the board is terminal
	Value *float64 `json:"value"`
}

type moveRequest struct {
	Board game.Board `json:"board"`
	Move  string     `json:"move"`
}

type moveResponse struct {
	Board game.Board `json:"board"`
	Score int        `json:"score"`
	Moved bool       `json:"moved"`
}

type spawnRequest struct {
	Board game.Board `json:"board"`
	Seed  *int64     `json:"seed"`
}

type spawnResponse struct {
	Board  game.Board `json:"board"`
	Placed bool       `json:"placed"`
	Seed   int64      `json:"seed"`
}

type canMoveRequest struct {
	Board game.Board `json:"board"`
}

type canMoveResponse struct {
	CanMove bool `json:"can_move"`
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/bestmove", s.handleBestMove)
	r.Post("/api/move", handleMove)
	r.Post("/api/spawn", handleSpawn)
	r.Post("/api/canmove", handleCanMove)
	return r
}

func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	var payload bestMoveRequest
	if !decode(w, r, &payload) {
		return
	}
	depth := payload.Depth
	if depth == 0 {
		depth = searcher.DefaultDepth
	}
	depth = utils.Clamp(depth, searcher.MinDepth, searcher.MaxDepth)
	corner, ok := game.ParseCorner(strings.ToUpper(payload.Corner))
	if !ok && payload.Corner != "" {
		log.Debug().Str("corner", payload.Corner).Msgf("unknown corner, using %v", corner)
	}

	agent := searcher.NewExpectimax(
		s.Goroutines,
		searcher.WithDepth(depth),
		searcher.WithCorner(corner),
		searcher.WithWeights(s.Weights),
	)
	move, value, _ := agent.FindMove(payload.Board)

	resp := bestMoveResponse{Move: move.String(), Depth: depth}
	if !math.IsInf(value, 0) && !math.IsNaN(value) {
		resp.Value = &value
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleMove(w http.ResponseWriter, r *http.Request) {
	var payload moveRequest
	if !decode(w, r, &payload) {
		return
	}
	d, ok := game.ParseDirection(payload.Move)
	if !ok {
		http.Error(w, "bad request: unknown move "+payload.Move, http.StatusBadRequest)
		return
	}
	next, score, moved := payload.Board.Move(d)
	writeJSON(w, http.StatusOK, moveResponse{Board: next, Score: score, Moved: moved})
}

func handleSpawn(w http.ResponseWriter, r *http.Request) {
	var payload spawnRequest
	if !decode(w, r, &payload) {
		return
	}
	seed := game.RandomSeed()
	if payload.Seed != nil {
		seed = *payload.Seed
	}
	b := payload.Board
	placed := b.Spawn(game.NewRNG(seed))
	writeJSON(w, http.StatusOK, spawnResponse{Board: b, Placed: placed, Seed: seed})
}

func handleCanMove(w http.ResponseWriter, r *http.Request) {
	var payload canMoveRequest
	if !decode(w, r, &payload) {
		return
	}
	writeJSON(w, http.StatusOK, canMoveResponse{CanMove: payload.Board.CanMove()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
