package ui

import (
	"math"
	"strings"

	"github.com/Nydauron/reefscout/record"
	"github.com/Nydauron/reefscout/stages"
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2

// renderField draws the field image as a grid of cells. Marks are placed at
// their cell; later marks win.
func renderField(image stages.FieldImage, s Styles, marks []fieldMark) string {
	w, h := int(image.Width), int(image.Height)
	grid := make([][]string, h)
	for y := range grid {
		grid[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = "·"
			if x == w/2 {
				grid[y][x] = "┆"
			}
		}
	}
	for _, m := range marks {
		x, y := int(m.point.X), int(m.point.Y)
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = m.glyph
		}
	}
	rows := make([]string, h)
	for y, row := range grid {
		rows[y] = strings.Join(row, "")
	}
	return s.Box.Render(strings.Join(rows, "\n"))
}

type fieldMark struct {
	point record.Point
	glyph string
}

func startMarks(r record.MatchRecord, s Styles) []fieldMark {
	var marks []fieldMark
	if r.RedPoint != nil {
		marks = append(marks, fieldMark{*r.RedPoint, s.Red.Render("R")})
	}
	if r.BluePoint != nil {
		marks = append(marks, fieldMark{*r.BluePoint, s.Blue.Render("B")})
	}
	return marks
}

func positionMarks(r record.MatchRecord, s Styles) []fieldMark {
	marks := make([]fieldMark, 0, len(r.AutonScoringPositions))
	for _, p := range r.AutonScoringPositions {
		marks = append(marks, fieldMark{p, s.Notice.Render("◆")})
	}
	return marks
}

// reefSize is the cell grid of the reef control for rings: wide enough for
// the outer ring, half as tall.
func reefSize(rings stages.RingSelector) (w, h int) {
	outer := rings.Thresholds[len(rings.Thresholds)-1]
	w = 2*int(math.Ceil(outer)) + 1
	h = 2*int(math.Ceil(outer/cellAspect)) + 1
	return w, h
}

// reefOffset converts a cell of the reef control to an offset from its
// center in ring units.
func reefOffset(rings stages.RingSelector, col, row int) (dx, dy float64) {
	w, h := reefSize(rings)
	return float64(col - w/2), float64(row-h/2) * cellAspect
}

// renderReef draws each ring with the coral level it selects.
func renderReef(rings stages.RingSelector, s Styles) string {
	w, h := reefSize(rings)
	var b strings.Builder
	for row := 0; row < h; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < w; col++ {
			ring, ok := rings.Ring(reefOffset(rings, col, row))
			if !ok {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(s.Rings[ring].Render(string(rune('1' + ring))))
		}
	}
	return s.Box.Render(b.String())
}
