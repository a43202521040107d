package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"U", "D", "L", "R"}, "D"))
	require.Equal(t, -1, FindIndex([]string{"U", "D"}, "R"))
}

func TestClamp(t *testing.T) {
	require.Equal(t, 1, Clamp(0, 1, 8))
	require.Equal(t, 8, Clamp(12, 1, 8))
	require.Equal(t, 4, Clamp(4, 1, 8))
	require.Equal(t, 0.5, Clamp(0.5, 0.0, 1.0))
}
