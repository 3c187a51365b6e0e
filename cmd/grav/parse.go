package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// parseSize parses a size string as spec.md §6 defines it: a decimal
// number optionally followed by a unit (B|K|KB|M|MB|G|GB, case
// insensitive). humanize.ParseBytes already accepts this vocabulary
// (plus the IEC forms), so no hand-rolled parser is needed here.
func parseSize(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	return humanize.ParseBytes(s)
}

// parseStaleDuration parses a duration string as spec.md §6 defines
// it: a number followed by y|m|w|d|h (year=365d, month=30d). No
// library in the dependency set models calendar-style units, so this
// is hand-rolled; it is intentionally narrower than time.ParseDuration,
// which doesn't support d/w/m/y at all.
func parseStaleDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	unit := s[len(s)-1:]
	numPart := s[:len(s)-1]
	n, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	const day = 24 * time.Hour
	var unitDur time.Duration
	switch strings.ToLower(unit) {
	case "h":
		unitDur = time.Hour
	case "d":
		unitDur = day
	case "w":
		unitDur = 7 * day
	case "m":
		unitDur = 30 * day
	case "y":
		unitDur = 365 * day
	default:
		return 0, fmt.Errorf("invalid duration unit in %q: want one of y|m|w|d|h", s)
	}
	return time.Duration(n * float64(unitDur)), nil
}
