package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"carbonboard/models"
	"carbonboard/services"
	"carbonboard/utils"
)

// LeaderboardHandler ranks countries or companies by emissions or estimated
// tax and truncates to the requested top-N.
func (h *DashboardHandler) LeaderboardHandler(c *gin.Context) {
	unit := queryUnit(c)
	from, to := queryRange(c)
	currency := queryCurrency(c)
	mode := c.DefaultQuery("mode", "country")
	metric := queryMetric(c)

	topN, err := strconv.Atoi(c.DefaultQuery("top", "10"))
	if err != nil || topN <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a positive integer"})
		return
	}

	rows, err := h.leaderboardRows(mode, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load data")})
		return
	}

	ranked := services.Rank(rows, metric, topN)
	h.decorateRows(ranked, unit, currency)

	c.JSON(http.StatusOK, gin.H{
		"mode":     mode,
		"sort":     metric,
		"unit":     unit,
		"currency": currency,
		"rows":     ranked,
		"count":    len(ranked),
	})
}

// DirectoryHandler serves the full searchable directory: substring filter
// over the label, metric sort, pagination.
func (h *DashboardHandler) DirectoryHandler(c *gin.Context) {
	unit := queryUnit(c)
	from, to := queryRange(c)
	currency := queryCurrency(c)
	mode := c.DefaultQuery("mode", "company")
	metric := queryMetric(c)
	query := c.Query("q")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "30"))

	rows, err := h.leaderboardRows(mode, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load data")})
		return
	}

	result := services.Directory(rows, query, page, pageSize, metric)
	h.decorateRows(result.Rows, unit, currency)

	c.JSON(http.StatusOK, gin.H{
		"mode":       mode,
		"sort":       metric,
		"unit":       unit,
		"currency":   currency,
		"query":      query,
		"rows":       result.Rows,
		"page":       result.Page,
		"pageSize":   result.PageSize,
		"totalRows":  result.TotalRows,
		"totalPages": result.TotalPages,
	})
}

func (h *DashboardHandler) leaderboardRows(mode, from, to string) ([]models.LeaderboardRow, error) {
	countries, err := h.data.FetchCountries()
	if err != nil {
		log.Errorf("fetching countries: %v", err)
		return nil, err
	}
	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		return nil, err
	}

	if mode == "company" {
		aggs := services.AggregateByCompany(countries, companies, from, to)
		rows := make([]models.LeaderboardRow, 0, len(aggs))
		for _, a := range aggs {
			rows = append(rows, models.LeaderboardRow{
				ID:           a.ID,
				Label:        fmt.Sprintf("%s (%s)", a.Name, a.Country),
				Emissions:    a.Emissions,
				EstimatedTax: a.EstimatedTax,
			})
		}
		return rows, nil
	}

	aggs := services.AggregateByCountry(countries, companies, from, to)
	rows := make([]models.LeaderboardRow, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, models.LeaderboardRow{
			ID:           a.Code,
			Label:        fmt.Sprintf("%s (%s)", a.Name, a.Code),
			Emissions:    a.Emissions,
			EstimatedTax: a.EstimatedTax,
		})
	}
	return rows, nil
}

// decorateRows scales emissions into the display unit and formats the tax
// estimate in the display currency using the current FX snapshot.
func (h *DashboardHandler) decorateRows(rows []models.LeaderboardRow, unit, currency string) {
	for i := range rows {
		rows[i].Emissions = utils.ScaleUnit(rows[i].Emissions, unit)
		if rows[i].EstimatedTax != nil {
			rows[i].TaxDisplay = utils.FormatCurrency(*rows[i].EstimatedTax, currency, nil, h.fx.GetRatePair)
		}
	}
}

func queryMetric(c *gin.Context) string {
	if c.DefaultQuery("sort", services.MetricEmissions) == services.MetricTax {
		return services.MetricTax
	}
	return services.MetricEmissions
}
