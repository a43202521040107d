package config

import (
	"fmt"
	"strconv"
	"strings"
	"twenty48/game"
	"twenty48/searcher"
	"twenty48/utils"

	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

// Config holds everything the driver needs. Every flag can also be set from
// the environment, e.g. TWENTY48_DEPTH=4.
type Config struct {
	Depth      int
	Corner     string
	Seed       string
	Goroutines int
	MaxSteps   int

	Start     string
	StartFile string

	WeightEmpty  float64
	WeightMono   float64
	WeightSmooth float64
	WeightCorner float64

	DepthBonusEmpty int
	DepthThresholds string
	PruneProb       float64

	Serve  bool
	Listen string
	Remote string
	Debug  bool
}

func (c *Config) Load(args []string) error {
	defaults := game.DefaultWeights()
	fs := flag.NewFlagSetWithEnvPrefix("twenty48", "TWENTY48", flag.ContinueOnError)
	fs.IntVar(&c.Depth, "depth", searcher.DefaultDepth, "search depth in plies, clamped to [1,8]")
	fs.StringVar(&c.Corner, "corner", game.DefaultCorner.String(), "preferred corner: "+strings.Join(game.CornerNames(), ", "))
	fs.StringVar(&c.Seed, "seed", "", "RNG seed for reproducible games, random if empty")
	fs.IntVar(&c.Goroutines, "goroutines", 1, "goroutines used to search root moves")
	fs.IntVar(&c.MaxSteps, "max-steps", 5000, "stop after this many moves")
	fs.StringVar(&c.Start, "start", "", "16 comma or semicolon separated tiles, row-major")
	fs.StringVar(&c.StartFile, "start-file", "", "JSON or YAML file holding a 4x4 grid")
	fs.Float64Var(&c.WeightEmpty, "w-empty", defaults.Empty, "weight of the empty-cell term")
	fs.Float64Var(&c.WeightMono, "w-mono", defaults.Monotonicity, "weight of the monotonicity term")
	fs.Float64Var(&c.WeightSmooth, "w-smooth", defaults.Smoothness, "weight of the smoothness term")
	fs.Float64Var(&c.WeightCorner, "w-corner", defaults.Corner, "bonus for the max tile in the corner")
	fs.IntVar(&c.DepthBonusEmpty, "depth-bonus-empty", 0, "extra depth per empty-cell threshold reached, 0 disables")
	fs.StringVar(&c.DepthThresholds, "depth-thresh", "8,12", "two empty-cell thresholds a,b for the depth bonus")
	fs.Float64Var(&c.PruneProb, "prune-prob", 0, "skip spawn branches whose single-cell probability is below this")
	fs.BoolVar(&c.Serve, "serve", false, "serve the HTTP API instead of playing a game")
	fs.StringVar(&c.Listen, "listen", ":8080", "HTTP listen address")
	fs.StringVar(&c.Remote, "remote", "", "base URL of a server to ask for moves instead of searching locally")
	fs.BoolVar(&c.Debug, "debug", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.Depth = utils.Clamp(c.Depth, searcher.MinDepth, searcher.MaxDepth)
	if c.Goroutines < 1 {
		c.Goroutines = 1
	}
	if _, _, err := c.Thresholds(); err != nil {
		return err
	}
	if _, _, err := c.SeedValue(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Weights() game.Weights {
	return game.Weights{
		Empty:        c.WeightEmpty,
		Monotonicity: c.WeightMono,
		Smoothness:   c.WeightSmooth,
		Corner:       c.WeightCorner,
	}
}

// CornerValue resolves the corner name, falling back to the default corner.
func (c *Config) CornerValue() game.Corner {
	corner, ok := game.ParseCorner(strings.ToUpper(strings.TrimSpace(c.Corner)))
	if !ok {
		log.Warn().Str("corner", c.Corner).Msgf("unknown corner, using %v", corner)
	}
	return corner
}

// SeedValue returns the configured seed and whether one was given.
func (c *Config) SeedValue() (int64, bool, error) {
	s := strings.TrimSpace(c.Seed)
	if s == "" {
		return 0, false, nil
	}
	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid seed %q: %w", c.Seed, err)
	}
	return seed, true, nil
}

// Thresholds parses the two empty-cell thresholds of the adaptive depth.
func (c *Config) Thresholds() (int, int, error) {
	parts := strings.Split(c.DepthThresholds, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("depth thresholds must be two ints separated by a comma, e.g. 8,12, got %q", c.DepthThresholds)
	}
	low, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid depth threshold: %w", err)
	}
	high, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid depth threshold: %w", err)
	}
	return low, high, nil
}

// Layout returns the starting layout from the start file or the start string.
// Invalid input is treated as no layout.
func (c *Config) Layout() []int {
	if c.StartFile != "" {
		b, err := game.LoadLayoutFile(c.StartFile)
		if err != nil {
			log.Warn().Err(err).Str("path", c.StartFile).Msg("ignoring start file")
			return nil
		}
		return b.Flatten()
	}
	if c.Start != "" {
		layout, ok := ParseLayout(c.Start)
		if !ok {
			log.Warn().Str("start", c.Start).Msg("ignoring start layout, need 16 tiles")
			return nil
		}
		return layout
	}
	return nil
}

// ParseLayout reads 16 comma or semicolon separated integers.
func ParseLayout(s string) ([]int, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	})
	layout := make([]int, 0, game.Size*game.Size)
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		layout = append(layout, v)
	}
	if _, ok := game.NewBoardFromLayout(layout); !ok {
		return nil, false
	}
	return layout, true
}
