// Package input translates and filters raw text typed by a scout into the
// values a match record accepts.
package input

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Nydauron/reefscout/record"
)

func normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// TranslateMatchLevel accepts the catalog codes (qm, qf, sf, f, ...) as well
// as spelled out names.
func TranslateMatchLevel(s string) (record.MatchLevel, error) {
	if level, ok := matchLevelMapping[normalize(s)]; ok {
		return level, nil
	}
	return record.MatchLevelUnset, fmt.Errorf("unknown match level: %q", s)
}

func TranslateRobotPosition(s string) (record.RobotPosition, error) {
	if pos, ok := robotPositionMapping[normalize(s)]; ok {
		return pos, nil
	}
	return record.PositionUnset, fmt.Errorf("unknown robot position: %q", s)
}

func TranslateClimbStatus(s string) (record.ClimbStatus, error) {
	if status, ok := climbStatusMapping[normalize(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown climb status: %q", s)
}

func TranslateCoralLocation(s string) (record.CoralLocation, error) {
	if loc, ok := coralLocationMapping[normalize(s)]; ok {
		return loc, nil
	}
	return record.CoralLocationNone, fmt.Errorf("unknown coral location: %q", s)
}

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Clamp cuts s to at most n runes.
func Clamp(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// Initials keeps letters only, upper-cased, at most max runes.
func Initials(s string, max int) string {
	letters := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return unicode.ToUpper(r)
		}
		return -1
	}, s)
	return Clamp(letters, max)
}
