package seating

import (
	"fmt"
	"strconv"
)

// ExpandRollRange expands a start/end roll number pair into the ordered list
// of roll numbers between them. Both strings share an institutional prefix
// and end in a two-character suffix: either two digits ("01".."99") or an
// uppercase letter followed by a digit ("A0".."Z9"). A numeric range that
// exhausts "99" before reaching the end suffix continues into the alphabetic
// stage.
//
// An empty input or a prefix mismatch yields an empty result. If the end
// suffix is never produced the function returns everything generated up to
// exhaustion; callers treat that as degraded output, not an error.
func ExpandRollRange(start, end string) []string {
	if len(start) < 2 || len(end) < 2 {
		return nil
	}

	prefix, startSfx := start[:len(start)-2], start[len(start)-2:]
	endPrefix, endSfx := end[:len(end)-2], end[len(end)-2:]
	if prefix != endPrefix {
		return nil
	}

	var rolls []string

	if startNum, err := strconv.Atoi(startSfx); err == nil {
		for i := startNum; i <= 99; i++ {
			sfx := fmt.Sprintf("%02d", i)
			rolls = append(rolls, prefix+sfx)
			if sfx == endSfx {
				return rolls
			}
		}
		// Numeric suffixes ran out before the end was seen; continue with
		// the alphabetic scheme from A0.
		return appendAlphaRolls(rolls, prefix, 'A', 0, endSfx)
	}

	if !isAlphaSuffix(startSfx) {
		return nil
	}
	return appendAlphaRolls(rolls, prefix, rune(startSfx[0]), int(startSfx[1]-'0'), endSfx)
}

func appendAlphaRolls(rolls []string, prefix string, startLetter rune, startDigit int, endSfx string) []string {
	for letter := startLetter; letter <= 'Z'; letter++ {
		digit := 0
		if letter == startLetter {
			digit = startDigit
		}
		for ; digit <= 9; digit++ {
			sfx := fmt.Sprintf("%c%d", letter, digit)
			rolls = append(rolls, prefix+sfx)
			if sfx == endSfx {
				return rolls
			}
		}
	}
	return rolls
}

func isAlphaSuffix(sfx string) bool {
	return len(sfx) == 2 && sfx[0] >= 'A' && sfx[0] <= 'Z' && sfx[1] >= '0' && sfx[1] <= '9'
}
