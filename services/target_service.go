package services

import (
	"fmt"
	"sort"

	"carbonboard/models"
)

// ProjectLinear derives the month-indexed linear glide path from the target
// configuration and the actual month totals. The baseline for a calendar
// month-of-year is the actual total of that month in the baseline year; a
// month the baseline year never observed falls back to the overall average
// of all observed monthly totals. Returns nil when no projection is defined
// (missing config or TargetYear <= BaselineYear).
func ProjectLinear(cfg *models.TargetConfig, actual map[string]float64) map[string]float64 {
	if cfg == nil || cfg.BaselineYear == 0 || cfg.TargetYear == 0 || cfg.TargetYear <= cfg.BaselineYear {
		return nil
	}

	reduction := clampPct(cfg.ReductionPct) / 100

	var sum float64
	for _, v := range actual {
		sum += v
	}
	var avg float64
	if len(actual) > 0 {
		avg = sum / float64(len(actual))
	}

	var baseline [13]float64
	for m := 1; m <= 12; m++ {
		ym := fmt.Sprintf("%d-%02d", cfg.BaselineYear, m)
		if v, ok := actual[ym]; ok {
			baseline[m] = v
		} else {
			baseline[m] = avg
		}
	}

	// Full calendar sequence BaselineYear-01 .. TargetYear-12: 0% reduction
	// at the first month, the full percentage at the last, linear between.
	monthCount := (cfg.TargetYear - cfg.BaselineYear + 1) * 12
	totalSteps := monthCount - 1
	if totalSteps < 1 {
		totalSteps = 1
	}

	out := make(map[string]float64, monthCount)
	for idx := 0; idx < monthCount; idx++ {
		year := cfg.BaselineYear + idx/12
		month := idx%12 + 1
		fraction := reduction * float64(idx) / float64(totalSteps)
		v := baseline[month] * (1 - fraction)
		if v < 0 {
			v = 0
		}
		out[fmt.Sprintf("%d-%02d", year, month)] = v
	}
	return out
}

// ResolveTargets applies the display precedence chain: an explicitly
// supplied target map wins over the user-edited per-month map, which wins
// over the auto-derived linear projection; with none of those, no target
// series is drawn.
func ResolveTargets(explicit, userEdited map[string]float64, cfg *models.TargetConfig, actual map[string]float64) map[string]float64 {
	if len(explicit) > 0 {
		return explicit
	}
	if len(userEdited) > 0 {
		return userEdited
	}
	return ProjectLinear(cfg, actual)
}

// TargetVsActual merges the actual series and the target series over the
// union of their months. Months the actual series never observed render as
// 0; months without a target carry a nil target.
func TargetVsActual(actual, targets map[string]float64) []models.TargetVsActualRow {
	months := make(map[string]bool, len(actual)+len(targets))
	for ym := range actual {
		months[ym] = true
	}
	for ym := range targets {
		months[ym] = true
	}

	sorted := make([]string, 0, len(months))
	for ym := range months {
		sorted = append(sorted, ym)
	}
	sort.Strings(sorted)

	out := make([]models.TargetVsActualRow, 0, len(sorted))
	for _, ym := range sorted {
		row := models.TargetVsActualRow{YearMonth: ym, Actual: actual[ym]}
		if t, ok := targets[ym]; ok {
			tv := t
			row.Target = &tv
		}
		out = append(out, row)
	}
	return out
}

func clampPct(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
