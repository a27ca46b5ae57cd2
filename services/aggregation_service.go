package services

import (
	"math"
	"sort"

	"carbonboard/models"
	"carbonboard/utils"
)

// Bucket for records with no source label.
const unknownSource = "unknown"

// emissionValue coalesces malformed quantities to 0 so sums never carry NaN.
func emissionValue(e models.Emission) float64 {
	if math.IsNaN(e.Emissions) || math.IsInf(e.Emissions, 0) {
		return 0
	}
	return e.Emissions
}

// AllEmissions flattens the emission lists of all companies into one series.
func AllEmissions(companies []models.Company) []models.Emission {
	var out []models.Emission
	for _, c := range companies {
		out = append(out, c.Emissions...)
	}
	return out
}

// FilterEmissions keeps records inside the inclusive month range [from, to].
// With both bounds open the input is returned as-is; records without a
// YearMonth cannot satisfy a bounded range and are dropped.
func FilterEmissions(list []models.Emission, from, to string) []models.Emission {
	if from == "" && to == "" {
		return list
	}
	out := make([]models.Emission, 0, len(list))
	for _, e := range list {
		if utils.InYearMonthRange(e.YearMonth, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// AggregateByMonth sums emissions per calendar month, ascending by month.
// Records without a YearMonth have no place on a timeline and are skipped.
func AggregateByMonth(list []models.Emission) []models.MonthTotal {
	totals := make(map[string]float64)
	for _, e := range list {
		if e.YearMonth == "" {
			continue
		}
		totals[e.YearMonth] += emissionValue(e)
	}

	months := make([]string, 0, len(totals))
	for ym := range totals {
		months = append(months, ym)
	}
	sort.Strings(months)

	out := make([]models.MonthTotal, 0, len(months))
	for _, ym := range months {
		out = append(out, models.MonthTotal{YearMonth: ym, Emissions: totals[ym]})
	}
	return out
}

// AggregateBySource sums emissions per source, descending by total.
// Unlabeled records land in the "unknown" bucket; records without a
// YearMonth still count here since time is irrelevant.
func AggregateBySource(list []models.Emission) []models.SourceTotal {
	totals := make(map[string]float64)
	for _, e := range list {
		src := e.Source
		if src == "" {
			src = unknownSource
		}
		totals[src] += emissionValue(e)
	}

	out := make([]models.SourceTotal, 0, len(totals))
	for src, v := range totals {
		out = append(out, models.SourceTotal{Source: src, Emissions: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Emissions != out[j].Emissions {
			return out[i].Emissions > out[j].Emissions
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// AggregateByMonthSource builds stacked rows: one row per month, one value
// per observed source key, missing combinations filled with 0 so renderers
// never branch on absent fields. In percent mode each row is renormalized
// to sum to 100; a month with zero total stays all-zero instead of NaN.
func AggregateByMonthSource(list []models.Emission, percent bool) []models.MonthSourceRow {
	byMonth := make(map[string]map[string]float64)
	sources := make(map[string]bool)

	for _, e := range list {
		if e.YearMonth == "" {
			continue
		}
		src := e.Source
		if src == "" {
			src = unknownSource
		}
		sources[src] = true
		row := byMonth[e.YearMonth]
		if row == nil {
			row = make(map[string]float64)
			byMonth[e.YearMonth] = row
		}
		row[src] += emissionValue(e)
	}

	months := make([]string, 0, len(byMonth))
	for ym := range byMonth {
		months = append(months, ym)
	}
	sort.Strings(months)

	out := make([]models.MonthSourceRow, 0, len(months))
	for _, ym := range months {
		values := make(map[string]float64, len(sources))
		var sum float64
		for src := range sources {
			v := byMonth[ym][src]
			values[src] = v
			sum += v
		}
		if percent && sum > 0 {
			for src := range values {
				values[src] = math.Round(values[src]/sum*100*100) / 100
			}
		}
		out = append(out, models.MonthSourceRow{YearMonth: ym, Values: values})
	}
	return out
}

// AggregateByCountry attributes each company's (optionally range-filtered)
// total to its country code and sums across companies. The country's tax
// rate is carried through unchanged, first seen wins; EstimatedTax is only
// derived where a rate is present, never zero-filled.
func AggregateByCountry(countries []models.Country, companies []models.Company, from, to string) []models.CountryAggregate {
	byCode := make(map[string]*models.CountryAggregate)
	var order []string

	for _, c := range countries {
		if _, ok := byCode[c.Code]; ok {
			continue
		}
		byCode[c.Code] = &models.CountryAggregate{Code: c.Code, Name: c.Name, TaxRate: c.TaxRate}
		order = append(order, c.Code)
	}

	for _, comp := range companies {
		agg, ok := byCode[comp.Country]
		if !ok {
			name := comp.Country
			if name == "" {
				name = "Unknown"
			}
			agg = &models.CountryAggregate{Code: comp.Country, Name: name}
			byCode[comp.Country] = agg
			order = append(order, comp.Country)
		}
		agg.Emissions += sumEmissions(comp.Emissions, from, to)
	}

	out := make([]models.CountryAggregate, 0, len(order))
	for _, code := range order {
		agg := byCode[code]
		if agg.TaxRate != nil {
			tax := agg.Emissions * *agg.TaxRate
			agg.EstimatedTax = &tax
		}
		out = append(out, *agg)
	}
	return out
}

// AggregateByCompany produces one row per company with its own total and
// tax estimate derived from its country's rate.
func AggregateByCompany(countries []models.Country, companies []models.Company, from, to string) []models.CompanyAggregate {
	rates := make(map[string]*float64)
	for _, c := range countries {
		if _, ok := rates[c.Code]; !ok {
			rates[c.Code] = c.TaxRate
		}
	}

	out := make([]models.CompanyAggregate, 0, len(companies))
	for _, comp := range companies {
		total := sumEmissions(comp.Emissions, from, to)
		agg := models.CompanyAggregate{
			ID:        comp.ID,
			Name:      comp.Name,
			Country:   comp.Country,
			Emissions: total,
		}
		if rate := rates[comp.Country]; rate != nil {
			tax := total * *rate
			agg.EstimatedTax = &tax
		}
		out = append(out, agg)
	}
	return out
}

// MonthTotalsMap converts a month series into a lookup map for projections.
func MonthTotalsMap(series []models.MonthTotal) map[string]float64 {
	out := make(map[string]float64, len(series))
	for _, row := range series {
		out[row.YearMonth] = row.Emissions
	}
	return out
}

func sumEmissions(list []models.Emission, from, to string) float64 {
	var total float64
	for _, e := range list {
		if (from != "" || to != "") && !utils.InYearMonthRange(e.YearMonth, from, to) {
			continue
		}
		total += emissionValue(e)
	}
	return total
}
