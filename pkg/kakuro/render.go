// Package kakuro: solution rendering.
package kakuro

import (
	"fmt"
	"strings"
)

// RenderBoard fills a solution back into the marker grid and renders a
// fixed-width text grid. Blank cells show their digit (or "?" if the
// solution does not cover them), clue cells keep their marker, walls show
// "#".
func RenderBoard(grid [][]string, sol Solution) string {
	width := 1
	for _, row := range grid {
		for _, marker := range row {
			if !isWall(marker) && marker != "?" && len(marker) > width {
				width = len(marker)
			}
		}
	}

	var b strings.Builder
	for r, row := range grid {
		for c, marker := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			text := marker
			switch {
			case isWall(marker):
				text = "#"
			case marker == "?":
				if v, ok := sol[Cell{Row: r, Col: c}]; ok {
					text = fmt.Sprintf("%d", v)
				}
			}
			fmt.Fprintf(&b, "%*s", width, text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
