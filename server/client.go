package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"
	"twenty48/game"
	"twenty48/metrics"

	"github.com/rs/zerolog/log"
)

// Client asks a remote server for moves. It satisfies engine.Agent so a local
// game can be driven by a remote searcher.
type Client struct {
	serverURL  string
	depth      int
	corner     game.Corner
	httpClient *http.Client
	err        error
}

func NewClient(serverURL string, depth int, corner game.Corner) *Client {
	return &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		depth:      depth,
		corner:     corner,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// BestMove requests the best move for b. A terminal board yields -Inf.
func (c *Client) BestMove(b game.Board) (game.Direction, float64, error) {
	data, err := json.Marshal(bestMoveRequest{Board: b, Depth: c.depth, Corner: c.corner.String()})
	if err != nil {
		return game.Left, 0, fmt.Errorf("failed to encode request: %w", err)
	}
	resp, err := c.httpClient.Post(c.serverURL+"/api/bestmove", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return game.Left, 0, fmt.Errorf("failed to request best move: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return game.Left, 0, fmt.Errorf("best move request failed with status %s", resp.Status)
	}

	var payload bestMoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return game.Left, 0, fmt.Errorf("failed to decode best move: %w", err)
	}
	move, ok := game.ParseDirection(payload.Move)
	if !ok {
		return game.Left, 0, fmt.Errorf("server returned unknown move %q", payload.Move)
	}
	if payload.Value == nil {
		return move, math.Inf(-1), nil
	}
	return move, *payload.Value, nil
}

// FindMove implements engine.Agent. Errors are kept and reported by Err.
func (c *Client) FindMove(b game.Board) (game.Direction, float64, metrics.SearchMetric) {
	start := time.Now()
	move, value, err := c.BestMove(b)
	if err != nil {
		log.Error().Err(err).Str("server", c.serverURL).Msg("remote search failed")
		c.err = err
	}
	return move, value, metrics.SearchMetric{Depth: c.depth, Duration: time.Since(start)}
}

func (c *Client) Err() error {
	return c.err
}
