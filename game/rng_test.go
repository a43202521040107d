package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)
	for i := 0; i < 10000; i++ {
		require.Equal(t, a.Next(), b.Next(), "Draw %d should match", i)
	}
}

func TestRNGRange(t *testing.T) {
	rng := NewRNG(42)
	for i := 0; i < 10000; i++ {
		v := rng.Next()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestRNGXorshift(t *testing.T) {
	t.Run("first step from seed 1", func(t *testing.T) {
		rng := NewRNG(1)
		// 1 ^ 1<<13 = 0x2001; >>17 is 0; ^ 0x2001<<5 = 0x42021
		got := rng.Next()
		require.Equal(t, uint32(0x42021), rng.State())
		require.Equal(t, float64(0x42021)/(1<<32), got)
	})

	t.Run("seed is truncated to 32 bits", func(t *testing.T) {
		a := NewRNG(-1)
		b := NewRNG(0xFFFFFFFF)
		require.Equal(t, a.State(), b.State())
		require.Equal(t, a.Next(), b.Next())
	})

	t.Run("seed zero is a fixed point", func(t *testing.T) {
		rng := NewRNG(0)
		require.Zero(t, rng.Next())
		require.Zero(t, rng.Next())
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		require.NotEqual(t, NewRNG(1).Next(), NewRNG(2).Next())
	})
}

func TestRandomSeed(t *testing.T) {
	for i := 0; i < 100; i++ {
		seed := RandomSeed()
		require.GreaterOrEqual(t, seed, int64(0))
		require.Less(t, seed, int64(1<<31))
	}
}
