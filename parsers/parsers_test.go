package parsers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nydauron/reefscout/record"
)

const scheduleCSV = `Match,Red 1,Red 2,Red 3,Blue 1,Blue 2,Blue 3
Qualification 1,254,1678,118,971,2056,1114
Qualification 2, 4414 ,6328,3476*,1323,604,8033

3,1,2,3,4,5,6
`

func TestParseScheduleCSV(t *testing.T) {
	s, err := ParseScheduleCSV(strings.NewReader(scheduleCSV))
	require.NoError(t, err)
	require.Len(t, s.Matches, 3)

	team, ok := s.TeamFor(1, record.Red1)
	require.True(t, ok)
	assert.Equal(t, uint(254), team)

	team, ok = s.TeamFor(2, record.Red3)
	require.True(t, ok)
	assert.Equal(t, uint(3476), team, "surrogate marker is dropped")

	team, ok = s.TeamFor(3, record.Blue3)
	require.True(t, ok)
	assert.Equal(t, uint(6), team)

	_, ok = s.TeamFor(4, record.Red1)
	assert.False(t, ok)
	_, ok = s.TeamFor(1, record.PositionUnset)
	assert.False(t, ok)
}

func TestParseScheduleCSVErrors(t *testing.T) {
	_, err := ParseScheduleCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoSchedule)

	_, err = ParseScheduleCSV(strings.NewReader("Team,Name\n254,Poofs\n"))
	assert.ErrorIs(t, err, ErrNoSchedule)

	_, err = ParseScheduleCSV(strings.NewReader("Match,Red 1\nfinal,254\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)

	_, err = ParseScheduleCSV(strings.NewReader("Match,Red 1,Blue 1\n1,254\n"))
	assert.ErrorIs(t, err, ErrMalformedRow)
}

func TestNilScheduleTeamFor(t *testing.T) {
	var s *Schedule
	_, ok := s.TeamFor(1, record.Red1)
	assert.False(t, ok)
}

const scheduleHTML = `<html><body>
<h1>Schedule</h1>
<table class="table">
  <thead>
    <tr><th>Time</th><th>Match</th><th>Red 1</th><th>Red 2</th><th>Red 3</th><th>Blue 1</th><th>Blue 2</th><th>Blue 3</th></tr>
  </thead>
  <tbody>
    <tr><td>Sat 9:00</td><td>Qualification<br>1</td><td><a href="/team/254">254</a></td><td>1678</td><td>118</td><td>971</td><td>2056</td><td>1114</td></tr>
    <tr class="separator"><td colspan="8">Lunch</td></tr>
    <tr><td>Sat 13:00</td><td>Qualification 2</td><td>4414</td><td>6328</td><td>3476</td><td>1323</td><td>604</td><td>8033</td></tr>
  </tbody>
</table>
<table><tr><th>Match</th><th>Red 1</th></tr><tr><td>9</td><td>9999</td></tr></table>
</body></html>`

func TestParseScheduleHTML(t *testing.T) {
	s, err := ParseScheduleHTML(strings.NewReader(scheduleHTML))
	require.NoError(t, err)
	require.Len(t, s.Matches, 2)

	team, ok := s.TeamFor(1, record.Red1)
	require.True(t, ok)
	assert.Equal(t, uint(254), team)

	team, ok = s.TeamFor(2, record.Blue2)
	require.True(t, ok)
	assert.Equal(t, uint(604), team)

	_, ok = s.TeamFor(9, record.Red1)
	assert.False(t, ok, "only the first schedule table is read")
}

func TestParseScheduleHTMLNestedTable(t *testing.T) {
	page := `<table>
<tr><th>Match</th><th>Red 1</th></tr>
<tr><td>1<table><tr><td>replay</td></tr></table></td><td>254</td></tr>
<tr><td>2</td><td>1678</td></tr>
</table>`
	s, err := ParseScheduleHTML(strings.NewReader(page))
	require.NoError(t, err)
	require.Len(t, s.Matches, 2, "rows after a nested table are still read")

	team, ok := s.TeamFor(1, record.Red1)
	require.True(t, ok)
	assert.Equal(t, uint(254), team)

	team, ok = s.TeamFor(2, record.Red1)
	require.True(t, ok)
	assert.Equal(t, uint(1678), team)
}

func TestParseScheduleHTMLWithoutTable(t *testing.T) {
	_, err := ParseScheduleHTML(strings.NewReader("<p>nothing here</p>"))
	assert.ErrorIs(t, err, ErrNoSchedule)
}
