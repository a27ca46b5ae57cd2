package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"carbonboard/models"
)

func usd(v float64) *float64 { return &v }

func seedCountries() []models.Country {
	return []models.Country{
		{Code: "US", Name: "United States", TaxRate: usd(50)},
		{Code: "DE", Name: "Germany", TaxRate: usd(45)},
		{Code: "KR", Name: "Korea", TaxRate: usd(40)},
		{Code: "JP", Name: "Japan", TaxRate: usd(42)},
		{Code: "CN", Name: "China", TaxRate: usd(60)},
		{Code: "IN", Name: "India", TaxRate: usd(35)},
		{Code: "BR", Name: "Brazil", TaxRate: usd(30)},
		{Code: "FR", Name: "France", TaxRate: usd(48)},
		{Code: "GB", Name: "United Kingdom", TaxRate: usd(47)},
		{Code: "CA", Name: "Canada", TaxRate: usd(38)},
	}
}

// Per-industry emission source mixes. Ratios are normalized before use, so
// they do not have to sum to 1.
var industryMixes = map[string]map[string]float64{
	"refinery": {"diesel": 0.45, "gasoline": 0.35, "lpg": 0.10, "coal": 0.10},
	"auto":     {"diesel": 0.30, "gasoline": 0.40, "lpg": 0.15, "electricity": 0.15},
	"elec":     {"coal": 0.55, "lpg": 0.15, "gasoline": 0.05, "diesel": 0.10, "renewables": 0.15},
	"it":       {"electricity": 0.70, "lpg": 0.10, "diesel": 0.10, "gasoline": 0.10},
	"mining":   {"diesel": 0.50, "gasoline": 0.20, "lpg": 0.10, "coal": 0.20},
}

// makeMonthlyMix generates one year of per-month, per-source records around
// a base monthly total with ±10% seasonal variation from rng. Source keys
// are iterated in sorted order so a fixed seed yields a fixed dataset.
func makeMonthlyMix(rng *rand.Rand, base float64, mix map[string]float64, year, months int) []models.Emission {
	var sum float64
	for _, v := range mix {
		sum += v
	}
	if sum == 0 {
		sum = 1
	}

	sources := make([]string, 0, len(mix))
	for k := range mix {
		sources = append(sources, k)
	}
	sort.Strings(sources)

	var rows []models.Emission
	for i := 1; i <= months; i++ {
		ym := fmt.Sprintf("%d-%02d", year, i)
		seasonal := 0.9 + rng.Float64()*0.2
		monthTotal := base * seasonal

		for _, src := range sources {
			value := math.Round(monthTotal * mix[src] / sum)
			if value <= 0 {
				continue
			}
			rows = append(rows, models.Emission{YearMonth: ym, Source: src, Emissions: value})
		}
	}
	return rows
}

func seedCompanies(rng *rand.Rand) []models.Company {
	specs := []struct {
		id, name, country, industry string
		base                        float64
	}{
		{"c1", "Acme Corp", "US", "auto", 140},
		{"c2", "Globex", "DE", "auto", 120},
		{"c3", "Samsung Electronics", "KR", "it", 520},
		{"c4", "Toyota", "JP", "auto", 320},
		{"c5", "PetroChina", "CN", "refinery", 1050},
		{"c6", "Infosys", "IN", "it", 210},
		{"c7", "Vale", "BR", "mining", 260},
		{"c8", "EDF", "FR", "elec", 420},
		{"c9", "BP", "GB", "refinery", 820},
		{"c10", "Suncor", "CA", "refinery", 610},
		{"c11", "Microsoft", "US", "it", 160},
		{"c12", "Siemens", "DE", "it", 190},
		{"c13", "Hyundai Motors", "KR", "auto", 360},
		{"c14", "Sony", "JP", "it", 280},
		{"c15", "Alibaba", "CN", "it", 920},
		{"c16", "TCS", "IN", "it", 230},
		{"c17", "Embraer", "BR", "auto", 190},
		{"c18", "TotalEnergies", "FR", "refinery", 710},
		{"c19", "Shell", "GB", "refinery", 960},
		{"c20", "Bombardier", "CA", "auto", 330},
	}

	companies := make([]models.Company, 0, len(specs))
	for _, sp := range specs {
		companies = append(companies, models.Company{
			ID:        sp.id,
			Name:      sp.name,
			Country:   sp.country,
			Emissions: makeMonthlyMix(rng, sp.base, industryMixes[sp.industry], 2024, 12),
		})
	}
	return companies
}

func seedPosts() []models.Post {
	return []models.Post{
		{ID: "p1", Title: "Sustainability Report", ResourceUID: "c1", DateTime: "2024-02", Content: "Quarterly CO2 update"},
		{ID: "p2", Title: "Emission Reduction Plan", ResourceUID: "c3", DateTime: "2024-03", Content: "Cut 15% in 5 years."},
		{ID: "p3", Title: "Energy Mix Update", ResourceUID: "c5", DateTime: "2024-01", Content: "Coal to gas shift."},
		{ID: "p4", Title: "Green Manufacturing", ResourceUID: "c13", DateTime: "2024-02", Content: "EV-first lines."},
		{ID: "p5", Title: "Carbon Credit", ResourceUID: "c19", DateTime: "2024-03", Content: "EU ETS opportunities."},
		{ID: "p6", Title: "Hydrogen Project", ResourceUID: "c14", DateTime: "2024-01", Content: "Fuel cell pilot."},
		{ID: "p7", Title: "Wind Energy", ResourceUID: "c18", DateTime: "2024-03", Content: "Offshore wind."},
		{ID: "p8", Title: "Solar Efficiency", ResourceUID: "c8", DateTime: "2024-02", Content: "25% higher eff."},
		{ID: "p9", Title: "Logistics Optimization", ResourceUID: "c6", DateTime: "2024-03", Content: "AI routing."},
		{ID: "p10", Title: "Biofuel Research", ResourceUID: "c7", DateTime: "2024-01", Content: "Aviation biofuels."},
	}
}
