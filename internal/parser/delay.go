package parser

import (
	"strconv"
	"strings"
)

// DelayMinutes converts an arrival time and a school-day start time (both
// HH:MM:SS) into whole minutes of lateness. Sub-minute excess is floored
// away, so arriving 59 seconds past the start still counts as on time.
// Malformed times resolve to zero rather than panicking; the log parser only
// calls this with grammar-matched input.
func DelayMinutes(arrival, start string) int {
	arrivalSec, ok := secondsSinceMidnight(arrival)
	if !ok {
		return 0
	}
	startSec, ok := secondsSinceMidnight(start)
	if !ok {
		return 0
	}

	diff := arrivalSec - startSec
	if diff <= 0 {
		return 0
	}
	return diff / 60
}

func secondsSinceMidnight(clock string) (int, bool) {
	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, false
	}
	return h*3600 + m*60 + s, true
}
