package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ParseScheduleCSV reads a schedule whose header names a match column and
// one column per driver station ("Red 1", "b2", ...).
func ParseScheduleCSV(r io.Reader) (*Schedule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoSchedule
		}
		return nil, err
	}
	cols, ok := readHeader(header)
	if !ok {
		return nil, fmt.Errorf("%w: header %q", ErrNoSchedule, strings.Join(header, ","))
	}

	schedule := &Schedule{Matches: map[int]ScheduledMatch{}}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if isBlank(row) {
			continue
		}
		m, err := cols.parseRow(row)
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		schedule.Matches[m.Number] = m
	}
	return schedule, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
