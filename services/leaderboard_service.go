package services

import (
	"sort"
	"strings"

	"carbonboard/models"
)

const (
	MetricEmissions = "emissions"
	MetricTax       = "tax"
)

const defaultDirectoryPageSize = 30

// Rank sorts rows descending by the chosen metric and truncates to topN.
// Rows without a tax estimate rank as if their tax were 0; they never crash
// the sort and never float to the top.
func Rank(rows []models.LeaderboardRow, metric string, topN int) []models.LeaderboardRow {
	out := make([]models.LeaderboardRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		return metricValue(out[i], metric) > metricValue(out[j], metric)
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Directory applies a case-insensitive substring filter over the row label,
// sorts by the same metric, and paginates the result.
func Directory(rows []models.LeaderboardRow, query string, page, pageSize int, metric string) models.DirectoryPage {
	term := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]models.LeaderboardRow, 0, len(rows))
	for _, r := range rows {
		if term == "" || strings.Contains(strings.ToLower(r.Label), term) {
			filtered = append(filtered, r)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return metricValue(filtered[i], metric) > metricValue(filtered[j], metric)
	})

	if pageSize <= 0 {
		pageSize = defaultDirectoryPageSize
	}
	totalPages := (len(filtered) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return models.DirectoryPage{
		Rows:       filtered[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  len(filtered),
		TotalPages: totalPages,
	}
}

func metricValue(r models.LeaderboardRow, metric string) float64 {
	if metric == MetricTax {
		if r.EstimatedTax == nil {
			return 0
		}
		return *r.EstimatedTax
	}
	return r.Emissions
}
