package config

import (
	"math"
	"strconv"
	"strings"
)

// round2 rounds f to two decimal places.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// toNumber coerces a decoded value to a float. Strings are accepted with
// either '.' or ',' as the decimal separator.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// toInteger reports v as an int when it is a whole number. Strings are not
// accepted.
func toInteger(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case uint64:
		if n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
			return 0, false
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func inRange(f, lo, hi float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f >= lo && f <= hi
}

func validMinMagazineSize(n int) bool {
	return n == NoLimit || (n >= MinMagazineSizeFloor && n <= MinMagazineSizeCeiling)
}

func validMaxMagazineSize(n int) bool {
	return n == NoLimit || (n >= MaxMagazineSizeFloor && n <= MaxMagazineSizeCeiling)
}
