package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadLayoutFile reads a starting board stored as a 4x4 nested array, e.g.
// [[0,0,2,0],[0,0,0,0],[0,4,0,0],[0,0,0,2]]. JSON files parse as YAML too.
func LoadLayoutFile(path string) (Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Board{}, fmt.Errorf("failed to read layout file: %w", err)
	}
	return ParseLayoutGrid(data)
}

func ParseLayoutGrid(data []byte) (Board, error) {
	var rows [][]int
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return Board{}, fmt.Errorf("failed to decode layout: %w", err)
	}
	if len(rows) != Size {
		return Board{}, fmt.Errorf("layout must have %d rows, got %d", Size, len(rows))
	}
	layout := make([]int, 0, Size*Size)
	for i, row := range rows {
		if len(row) != Size {
			return Board{}, fmt.Errorf("layout row %d must have %d values, got %d", i, Size, len(row))
		}
		layout = append(layout, row...)
	}
	b, ok := NewBoardFromLayout(layout)
	if !ok {
		return Board{}, fmt.Errorf("layout holds a value that is not a tile: %v", layout)
	}
	return b, nil
}
