package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"carbonboard/models"
	"carbonboard/services"
	"carbonboard/utils"
)

// MonthlyEmissionsHandler returns the per-month emission series, ascending
// by month, optionally restricted to an inclusive [from, to] month range.
func (h *DashboardHandler) MonthlyEmissionsHandler(c *gin.Context) {
	unit := queryUnit(c)
	from, to := queryRange(c)

	series, err := h.monthSeries(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load companies")})
		return
	}

	for i := range series {
		series[i].Emissions = utils.ScaleUnit(series[i].Emissions, unit)
	}
	c.JSON(http.StatusOK, gin.H{"series": series, "count": len(series), "unit": unit})
}

// SourceEmissionsHandler returns per-source totals, descending, for pie
// rendering.
func (h *DashboardHandler) SourceEmissionsHandler(c *gin.Context) {
	unit := queryUnit(c)
	from, to := queryRange(c)

	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load companies")})
		return
	}

	totals := services.AggregateBySource(services.FilterEmissions(services.AllEmissions(companies), from, to))
	for i := range totals {
		totals[i].Emissions = utils.ScaleUnit(totals[i].Emissions, unit)
	}
	c.JSON(http.StatusOK, gin.H{"sources": totals, "count": len(totals), "unit": unit})
}

// StackedEmissionsHandler returns month-by-source rows for stacked bars.
// variant=percent renormalizes each row to sum to 100.
func (h *DashboardHandler) StackedEmissionsHandler(c *gin.Context) {
	unit := queryUnit(c)
	from, to := queryRange(c)
	percent := c.DefaultQuery("variant", "absolute") == "percent"

	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load companies")})
		return
	}

	rows := services.AggregateByMonthSource(services.FilterEmissions(services.AllEmissions(companies), from, to), percent)
	if !percent {
		for _, row := range rows {
			for src, v := range row.Values {
				row.Values[src] = utils.ScaleUnit(v, unit)
			}
		}
	}

	variant := "absolute"
	if percent {
		variant = "percent"
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows, "count": len(rows), "unit": unit, "variant": variant})
}

func (h *DashboardHandler) monthSeries(from, to string) ([]models.MonthTotal, error) {
	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		return nil, err
	}
	return services.AggregateByMonth(services.FilterEmissions(services.AllEmissions(companies), from, to)), nil
}
