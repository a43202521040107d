package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var fullNoMerges = Board{
	{2, 4, 2, 4},
	{4, 2, 4, 2},
	{2, 4, 2, 4},
	{4, 2, 4, 2},
}

func TestCanMove(t *testing.T) {
	t.Run("full board without equal neighbours", func(t *testing.T) {
		require.False(t, fullNoMerges.CanMove())
		for _, d := range Directions {
			_, _, moved := fullNoMerges.Move(d)
			require.False(t, moved, "No direction should change a terminal board")
		}
	})

	t.Run("one empty cell", func(t *testing.T) {
		b := fullNoMerges
		b[2][1] = 0
		require.True(t, b.CanMove())
	})

	t.Run("full board with a vertical pair", func(t *testing.T) {
		b := fullNoMerges
		b[1][3] = 4
		require.True(t, b.CanMove())
	})

	t.Run("full board with a horizontal pair", func(t *testing.T) {
		b := fullNoMerges
		b[3][0] = 2
		require.True(t, b.CanMove())
	})

	t.Run("empty board", func(t *testing.T) {
		require.True(t, Board{}.CanMove())
	})
}

func TestSpawn(t *testing.T) {
	t.Run("single empty cell is always filled", func(t *testing.T) {
		for seed := int64(1); seed <= 50; seed++ {
			b := fullNoMerges
			b[1][2] = 0

			placed := b.Spawn(NewRNG(seed))

			require.True(t, placed)
			require.Contains(t, []int{2, 4}, b[1][2], "Spawned tile should be a 2 or a 4")
			require.Zero(t, b.CountEmpty())
		}
	})

	t.Run("full board is left unchanged", func(t *testing.T) {
		b := fullNoMerges
		rng := NewRNG(3)
		state := rng.State()

		placed := b.Spawn(rng)

		require.False(t, placed)
		require.Equal(t, fullNoMerges, b)
		require.Equal(t, state, rng.State(), "No draws should be consumed on a full board")
	})

	t.Run("two draws per spawn", func(t *testing.T) {
		var b Board
		rng := NewRNG(12345)
		mirror := NewRNG(12345)

		b.Spawn(rng)

		idx := int(mirror.Next() * 16)
		want := 2
		if mirror.Next() < Prob4 {
			want = 4
		}
		require.Equal(t, want, b[idx/Size][idx%Size])
		require.Equal(t, mirror.State(), rng.State())
	})

	t.Run("roughly one in ten tiles is a four", func(t *testing.T) {
		rng := NewRNG(2024)
		fours := 0
		const n = 10000
		for i := 0; i < n; i++ {
			var b Board
			b.Spawn(rng)
			if b.MaxTile() == 4 {
				fours++
			}
		}
		require.InDelta(t, 0.1, float64(fours)/n, 0.02)
	})
}

func TestNewBoardFromLayout(t *testing.T) {
	t.Run("valid layout", func(t *testing.T) {
		b, ok := NewBoardFromLayout([]int{0, 2, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 2048, 0, 0, 8})
		require.True(t, ok)
		require.Equal(t, 2, b[0][1])
		require.Equal(t, 4, b[1][2])
		require.Equal(t, 2048, b[3][0])
		require.Equal(t, 8, b[3][3])
	})

	t.Run("wrong length", func(t *testing.T) {
		_, ok := NewBoardFromLayout([]int{2, 2, 2})
		require.False(t, ok)
	})

	t.Run("negative value", func(t *testing.T) {
		layout := make([]int, 16)
		layout[5] = -2
		_, ok := NewBoardFromLayout(layout)
		require.False(t, ok)
	})

	t.Run("not a power of two", func(t *testing.T) {
		layout := make([]int, 16)
		layout[0] = 6
		_, ok := NewBoardFromLayout(layout)
		require.False(t, ok)

		layout[0] = 1
		_, ok = NewBoardFromLayout(layout)
		require.False(t, ok)
	})
}

func TestBoardHelpers(t *testing.T) {
	b := Board{
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 64, 0},
		{4, 0, 0, 0},
	}
	require.Equal(t, 13, b.CountEmpty())
	require.Equal(t, 3, b.TileCount())
	require.Equal(t, 64, b.MaxTile())
	cells := b.EmptyCells()
	require.Len(t, cells, 13)
	require.Equal(t, Cell{0, 0}, cells[0], "Empty cells should be listed in row-major order")
	require.Equal(t, Cell{0, 2}, cells[1])
	require.Equal(t, Cell{3, 3}, cells[12])

	placed := b.Place(Cell{1, 1}, 2)
	require.Equal(t, 2, placed[1][1])
	require.Zero(t, b[1][1], "Place should not mutate the receiver")
}

func TestBoardJSON(t *testing.T) {
	b := Board{{2, 0, 0, 0}, {}, {}, {0, 0, 0, 1024}}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	require.JSONEq(t, `[2,0,0,0,0,0,0,0,0,0,0,0,0,0,0,1024]`, string(data))

	var got Board
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, b, got)

	require.Error(t, json.Unmarshal([]byte(`[2,2]`), &got))
	require.Error(t, json.Unmarshal([]byte(`"nope"`), &got))
}

func TestLoadLayoutFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("json grid", func(t *testing.T) {
		path := filepath.Join(dir, "start.json")
		require.NoError(t, os.WriteFile(path, []byte(`[[0,0,2,0],[0,0,0,0],[0,4,0,0],[0,0,0,2]]`), 0644))

		b, err := LoadLayoutFile(path)

		require.NoError(t, err)
		require.Equal(t, Board{{0, 0, 2, 0}, {}, {0, 4, 0, 0}, {0, 0, 0, 2}}, b)
	})

	t.Run("yaml grid", func(t *testing.T) {
		path := filepath.Join(dir, "start.yaml")
		content := "- [2, 2, 0, 0]\n- [0, 0, 0, 0]\n- [0, 0, 0, 0]\n- [0, 0, 0, 8]\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		b, err := LoadLayoutFile(path)

		require.NoError(t, err)
		require.Equal(t, 8, b[3][3])
	})

	t.Run("ragged grid", func(t *testing.T) {
		_, err := ParseLayoutGrid([]byte(`[[0,0,2],[0,0,0,0],[0,4,0,0],[0,0,0,2]]`))
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadLayoutFile(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
	})
}
