package utils

import "strings"

// InYearMonthRange reports whether ym falls inside the inclusive month
// range [from, to]. Either bound may be empty, which leaves that side open.
// An empty ym is never in range: it cannot be placed on a timeline.
func InYearMonthRange(ym, from, to string) bool {
	if ym == "" {
		return false
	}
	v := strings.ReplaceAll(ym, "-", "")
	if from != "" && v < strings.ReplaceAll(from, "-", "") {
		return false
	}
	if to != "" && v > strings.ReplaceAll(to, "-", "") {
		return false
	}
	return true
}
