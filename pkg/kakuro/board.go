// Package kakuro: board parsing.
//
// A board is a rectangular grid of cell markers:
//
//	"#" or ""   wall (unused cell)
//	"?"         blank cell to fill with a digit
//	"v/h"       clue cell: v is the sum of the vertical run below,
//	            h the sum of the horizontal run to the right; either
//	            side may be omitted ("16/", "/10", "4/12").
//
// Parsing walks the grid, collects the maximal contiguous blank span after
// each clue side, and hands the resulting run list to BuildGraph, which
// performs all feasibility validation.
package kakuro

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Board couples a name with its raw grid, as stored in board files.
type Board struct {
	Name string     `yaml:"name"`
	Grid [][]string `yaml:"grid"`
}

// ParseBoard converts a marker grid into a validated constraint graph.
func ParseBoard(grid [][]string) (*ConstraintGraph, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty board", ErrMalformedPuzzle)
	}
	rows := len(grid)
	cols := len(grid[0])
	for r, row := range grid {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedPuzzle, r, len(row), cols)
		}
	}

	blank := func(r, c int) bool {
		return r >= 0 && r < rows && c >= 0 && c < cols && grid[r][c] == "?"
	}
	span := func(r, c, dr, dc int) []Cell {
		var cells []Cell
		for blank(r, c) {
			cells = append(cells, Cell{Row: r, Col: c})
			r += dr
			c += dc
		}
		return cells
	}

	var specs []RunSpec
	covered := make(map[Cell][2]bool) // per-direction run membership
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			marker := grid[r][c]
			if marker == "?" || isWall(marker) {
				continue
			}
			down, right, err := parseClue(marker)
			if err != nil {
				return nil, fmt.Errorf("%w: cell (%d,%d): %v", ErrMalformedPuzzle, r, c, err)
			}
			if right > 0 {
				cells := span(r, c+1, 0, 1)
				if len(cells) == 0 {
					return nil, fmt.Errorf("%w: horizontal clue %d at (%d,%d) has no blank cells",
						ErrMalformedPuzzle, right, r, c)
				}
				specs = append(specs, RunSpec{Dir: Horizontal, Target: right, Cells: cells})
				for _, cl := range cells {
					m := covered[cl]
					m[Horizontal] = true
					covered[cl] = m
				}
			}
			if down > 0 {
				cells := span(r+1, c, 1, 0)
				if len(cells) == 0 {
					return nil, fmt.Errorf("%w: vertical clue %d at (%d,%d) has no blank cells",
						ErrMalformedPuzzle, down, r, c)
				}
				specs = append(specs, RunSpec{Dir: Vertical, Target: down, Cells: cells})
				for _, cl := range cells {
					m := covered[cl]
					m[Vertical] = true
					covered[cl] = m
				}
			}
		}
	}

	// Every blank must belong to at least one run; an uncovered blank has
	// no constraint and the puzzle is not well-posed.
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r][c] != "?" {
				continue
			}
			m := covered[Cell{Row: r, Col: c}]
			if !m[Horizontal] && !m[Vertical] {
				return nil, fmt.Errorf("%w: blank cell (%d,%d) is not part of any run",
					ErrMalformedPuzzle, r, c)
			}
		}
	}

	return BuildGraph(specs)
}

// ParseBoardText parses a whitespace-separated text form of the grid, one
// row per line. Blank lines are skipped.
func ParseBoardText(text string) (*ConstraintGraph, error) {
	var grid [][]string
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		grid = append(grid, fields)
	}
	return ParseBoard(grid)
}

// LoadBoardFile reads a YAML board file and parses its grid.
func LoadBoardFile(path string) (*Board, *ConstraintGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read board file: %w", err)
	}
	var board Board
	if err := yaml.Unmarshal(data, &board); err != nil {
		return nil, nil, fmt.Errorf("parse board file %s: %w", path, err)
	}
	graph, err := ParseBoard(board.Grid)
	if err != nil {
		return nil, nil, err
	}
	return &board, graph, nil
}

func isWall(marker string) bool {
	return marker == "" || marker == "#" || marker == "." || marker == "x" || marker == "X"
}

// parseClue splits a "v/h" marker into its vertical and horizontal targets.
// A missing side yields 0.
func parseClue(marker string) (down, right int, err error) {
	parts := strings.SplitN(marker, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("unrecognized marker %q", marker)
	}
	if parts[0] != "" {
		down, err = strconv.Atoi(parts[0])
		if err != nil || down <= 0 {
			return 0, 0, fmt.Errorf("bad vertical sum in %q", marker)
		}
	}
	if parts[1] != "" {
		right, err = strconv.Atoi(parts[1])
		if err != nil || right <= 0 {
			return 0, 0, fmt.Errorf("bad horizontal sum in %q", marker)
		}
	}
	if down == 0 && right == 0 {
		return 0, 0, fmt.Errorf("clue %q has no sums", marker)
	}
	return down, right, nil
}
