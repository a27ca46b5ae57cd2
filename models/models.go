package models

// Emission is a single per-month, per-source emission record owned by a
// company. Emissions is a quantity in metric tons of CO2-equivalent (tCO2e).
type Emission struct {
	YearMonth string  `json:"yearMonth"` // "2024-01"
	Source    string  `json:"source"`    // "gasoline" | "lpg" | "diesel" ...
	Emissions float64 `json:"emissions"` // tCO2e
}

// Company owns its emission list exclusively.
type Company struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Country   string     `json:"country"` // ISO code
	Emissions []Emission `json:"emissions"`
}

// Country carries an optional nominal per-ton carbon tax rate in USD.
// A nil TaxRate means "tax unknown", never zero.
type Country struct {
	Code    string   `json:"code"`
	Name    string   `json:"name"`
	TaxRate *float64 `json:"taxRate,omitempty"` // USD per tCO2e
}

// Post is a free-text note attached to a company.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ResourceUID string `json:"resourceUid"` // Company.ID
	DateTime    string `json:"dateTime"`    // "2024-02"
	Content     string `json:"content"`
}

// FxSnapshot is an immutable pair-rate table produced by one FX resolution.
// PairRates is keyed by concatenated currency codes ("USDKRW") and is fully
// bidirectional and reflexive over the requested symbols. A refresh never
// mutates a snapshot; it produces a new one with a larger Version.
type FxSnapshot struct {
	Mode       string             `json:"mode"` // "live" | "historical"
	Date       string             `json:"date,omitempty"`
	BaseSource string             `json:"baseSource"`
	PairRates  map[string]float64 `json:"pairRates"`
	Timestamp  int64              `json:"timestamp,omitempty"`
	Success    bool               `json:"success,omitempty"`
	Fallback   bool               `json:"fallback,omitempty"`
	Message    string             `json:"message,omitempty"`
	Version    int64              `json:"version"`
}

// TargetConfig describes a linear reduction target. A nil *TargetConfig
// means "no target configured"; ReductionPct is clamped to [0,100] by the
// projection engine.
type TargetConfig struct {
	BaselineYear int     `json:"baselineYear"`
	TargetYear   int     `json:"targetYear"`
	ReductionPct float64 `json:"reductionPct"`
}

// MonthTotal is one point of a monthly emission series.
type MonthTotal struct {
	YearMonth string  `json:"yearMonth"`
	Emissions float64 `json:"emissions"`
}

// SourceTotal is the total emissions attributed to one source.
type SourceTotal struct {
	Source    string  `json:"source"`
	Emissions float64 `json:"emissions"`
}

// MonthSourceRow is one stacked-chart row: every observed source key is
// present in Values, defaulting to 0 for month/source combinations with no
// records.
type MonthSourceRow struct {
	YearMonth string             `json:"yearMonth"`
	Values    map[string]float64 `json:"values"`
}

// CountryAggregate is the per-country rollup across all companies sharing a
// country code. EstimatedTax is nil whenever TaxRate is nil.
type CountryAggregate struct {
	Code         string   `json:"code"`
	Name         string   `json:"name"`
	Emissions    float64  `json:"emissions"` // tCO2e
	TaxRate      *float64 `json:"taxRate,omitempty"`
	EstimatedTax *float64 `json:"estimatedTax,omitempty"` // USD
}

// CompanyAggregate is the per-company total with its country's tax estimate.
type CompanyAggregate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Country      string   `json:"country"`
	Emissions    float64  `json:"emissions"`              // tCO2e
	EstimatedTax *float64 `json:"estimatedTax,omitempty"` // USD
}

// LeaderboardRow is one ranked entity (country or company).
type LeaderboardRow struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"` // "Name (CODE)"
	Emissions    float64  `json:"emissions"`
	EstimatedTax *float64 `json:"estimatedTax,omitempty"`
	TaxDisplay   string   `json:"taxDisplay,omitempty"`
}

// DirectoryPage is a paginated, filtered, sorted slice of leaderboard rows.
type DirectoryPage struct {
	Rows       []LeaderboardRow `json:"rows"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
	TotalRows  int              `json:"totalRows"`
	TotalPages int              `json:"totalPages"`
}

// TargetVsActualRow compares the actual monthly total against the resolved
// target value. Target is nil for months with no target defined.
type TargetVsActualRow struct {
	YearMonth string   `json:"yearMonth"`
	Actual    float64  `json:"actual"`
	Target    *float64 `json:"target,omitempty"`
}

// SummaryResponse is the KPI card payload.
type SummaryResponse struct {
	TotalCompanies int     `json:"totalCompanies"`
	TotalEmissions float64 `json:"totalEmissions"` // in requested unit
	AvgPerCompany  float64 `json:"avgPerCompany"`  // rounded, requested unit
	Unit           string  `json:"unit"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Service string `json:"service,omitempty"`
}
