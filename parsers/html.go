package parsers

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ParseScheduleHTML reads the first table on a saved schedule page whose
// header row names a match column and driver station columns. Rows that do
// not fit the header (section separators, breaks) are skipped.
func ParseScheduleHTML(r io.Reader) (*Schedule, error) {
	z := html.NewTokenizer(r)

	var cols columns
	isTable := false
	isTableCell := false
	tableDepth := 0
	var row []string
	var cell strings.Builder
	schedule := &Schedule{Matches: map[int]ScheduledMatch{}}

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return nil, z.Err()
			}
			if cols == nil {
				return nil, ErrNoSchedule
			}
			return schedule, nil
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				tableDepth++
				isTable = tableDepth == 1
			case "tr":
				if isTable {
					row = row[:0]
				}
			case "th", "td":
				if isTable && !isTableCell {
					isTableCell = true
					cell.Reset()
				}
			case "br":
				if isTableCell {
					cell.WriteByte(' ')
				}
			}
		case html.TextToken:
			if isTableCell {
				cell.Write(z.Text())
			}
		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "th", "td":
				if isTableCell && tableDepth == 1 {
					row = append(row, strings.TrimSpace(cell.String()))
					isTableCell = false
				}
			case "tr":
				if !isTable || len(row) == 0 {
					continue
				}
				if cols == nil {
					if c, ok := readHeader(row); ok {
						cols = c
					}
					continue
				}
				if m, err := cols.parseRow(row); err == nil {
					schedule.Matches[m.Number] = m
				}
			case "table":
				tableDepth--
				isTable = tableDepth == 1
				if tableDepth == 0 && cols != nil {
					return schedule, nil
				}
			}
		}
	}
}
