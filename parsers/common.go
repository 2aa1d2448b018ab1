// Package parsers reads an event's match schedule (which teams sit in which
// driver station for each match) from a CSV export or a saved HTML page.
package parsers

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Nydauron/reefscout/input"
	"github.com/Nydauron/reefscout/record"
)

var numberRegex = regexp.MustCompile(`[0-9]+`)

var (
	ErrMalformedRow = errors.New("malformed schedule row")
	ErrNoSchedule   = errors.New("no schedule table found")
)

type ScheduledMatch struct {
	Number int
	Teams  map[record.RobotPosition]uint
}

type Schedule struct {
	Matches map[int]ScheduledMatch
}

func (s *Schedule) TeamFor(match int, pos record.RobotPosition) (uint, bool) {
	if s == nil {
		return 0, false
	}
	m, ok := s.Matches[match]
	if !ok {
		return 0, false
	}
	team, ok := m.Teams[pos]
	return team, ok && team != 0
}

const matchColumn = -1

// columns maps a header row to what each column holds: matchColumn, an
// index into record.RobotPositions, or nothing.
type columns map[int]int

func readHeader(cells []string) (columns, bool) {
	cols := columns{}
	hasMatch := false
	for i, cell := range cells {
		name := strings.ToLower(strings.Join(strings.Fields(cell), ""))
		if strings.HasPrefix(name, "match") || name == "#" {
			if !hasMatch {
				cols[i] = matchColumn
				hasMatch = true
			}
			continue
		}
		if pos, err := input.TranslateRobotPosition(name); err == nil {
			for j, p := range record.RobotPositions {
				if p == pos {
					cols[i] = j
				}
			}
		}
	}
	return cols, hasMatch && len(cols) > 1
}

func (c columns) parseRow(cells []string) (ScheduledMatch, error) {
	m := ScheduledMatch{Teams: map[record.RobotPosition]uint{}}
	for i, kind := range c {
		if i >= len(cells) {
			return m, fmt.Errorf("%w: %d cells, expected at least %d", ErrMalformedRow, len(cells), i+1)
		}
		digits := numberRegex.FindString(cells[i])
		if kind == matchColumn {
			n, err := strconv.Atoi(digits)
			if err != nil {
				return m, fmt.Errorf("%w: match number %q", ErrMalformedRow, cells[i])
			}
			m.Number = n
			continue
		}
		if digits == "" {
			continue
		}
		team, err := strconv.ParseUint(digits, 10, 32)
		if err != nil {
			return m, fmt.Errorf("%w: team number %q", ErrMalformedRow, cells[i])
		}
		m.Teams[record.RobotPositions[kind]] = uint(team)
	}
	return m, nil
}
