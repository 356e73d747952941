// Package timeutil provides helpers for working with time values.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const secondsInAMinute = 60

// Round rounds a seconds value to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(seconds float64) (mins, secs int) {
	total := Round(seconds)
	mins = total / secondsInAMinute
	secs = total % secondsInAMinute

	return
}

// FormatClock formats a duration as "M:SS" for countdown displays.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	m, s := SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%d:%02d", m, s)
}
