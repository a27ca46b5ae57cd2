package handlers

import (
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"carbonboard/models"
	"carbonboard/services"
	"carbonboard/utils"
)

// ProjectionHandler returns the target-vs-actual series. Target precedence:
// the user-edited per-month map, then the linear projection derived from the
// target configuration. Configuration can be overridden per request via
// baseline_year, target_year and reduction_pct (all three or none).
func (h *DashboardHandler) ProjectionHandler(c *gin.Context) {
	unit := queryUnit(c)
	from, to := queryRange(c)

	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load companies")})
		return
	}

	actualSeries := services.AggregateByMonth(services.AllEmissions(companies))
	actual := services.MonthTotalsMap(actualSeries)

	cfg := h.state.TargetConfig()
	if override, ok, err := queryTargetConfig(c); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ToMessage(err, "Invalid target parameters")})
		return
	} else if ok {
		cfg = override
	}

	targets := services.ResolveTargets(nil, h.state.TargetsByMonth(), cfg, actual)
	rows := services.TargetVsActual(actual, targets)

	if from != "" || to != "" {
		clipped := rows[:0]
		for _, row := range rows {
			if utils.InYearMonthRange(row.YearMonth, from, to) {
				clipped = append(clipped, row)
			}
		}
		rows = clipped
	}

	for i := range rows {
		rows[i].Actual = utils.ScaleUnit(rows[i].Actual, unit)
		if rows[i].Target != nil {
			scaled := utils.ScaleUnit(*rows[i].Target, unit)
			rows[i].Target = &scaled
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":   rows,
		"count":  len(rows),
		"unit":   unit,
		"config": cfg,
	})
}

// TargetsHandler returns the user-edited per-month target map.
func (h *DashboardHandler) TargetsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"targets": h.state.TargetsByMonth()})
}

type targetsRequest struct {
	Targets map[string]float64 `json:"targets" binding:"required"`
}

// SetTargetsHandler replaces the user-edited per-month target map. These
// values take precedence over the auto-derived projection until cleared.
func (h *DashboardHandler) SetTargetsHandler(c *gin.Context) {
	var req targetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ToMessage(err, "Invalid targets payload")})
		return
	}
	h.state.SetTargets(req.Targets)
	c.JSON(http.StatusOK, gin.H{"targets": h.state.TargetsByMonth()})
}

// ClearTargetsHandler drops all user edits, re-enabling the projection.
func (h *DashboardHandler) ClearTargetsHandler(c *gin.Context) {
	h.state.ClearTargets()
	c.JSON(http.StatusOK, gin.H{"targets": h.state.TargetsByMonth()})
}

type targetConfigRequest struct {
	BaselineYear int     `json:"baselineYear" binding:"required"`
	TargetYear   int     `json:"targetYear" binding:"required"`
	ReductionPct float64 `json:"reductionPct"`
}

// TargetConfigHandler returns the stored reduction target configuration.
func (h *DashboardHandler) TargetConfigHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"config": h.state.TargetConfig()})
}

// SetTargetConfigHandler stores a new reduction target configuration.
func (h *DashboardHandler) SetTargetConfigHandler(c *gin.Context) {
	var req targetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.ToMessage(err, "Invalid target config payload")})
		return
	}
	h.state.SetTargetConfig(&models.TargetConfig{
		BaselineYear: req.BaselineYear,
		TargetYear:   req.TargetYear,
		ReductionPct: req.ReductionPct,
	})
	c.JSON(http.StatusOK, gin.H{"config": h.state.TargetConfig()})
}

// queryTargetConfig reads the optional per-request config override. It is
// only honored when baseline_year, target_year and reduction_pct are all
// present.
func queryTargetConfig(c *gin.Context) (*models.TargetConfig, bool, error) {
	by := c.Query("baseline_year")
	ty := c.Query("target_year")
	rp := c.Query("reduction_pct")
	if by == "" || ty == "" || rp == "" {
		return nil, false, nil
	}

	baseline, err := strconv.Atoi(by)
	if err != nil {
		return nil, false, err
	}
	target, err := strconv.Atoi(ty)
	if err != nil {
		return nil, false, err
	}
	pct, err := strconv.ParseFloat(rp, 64)
	if err != nil {
		return nil, false, err
	}

	return &models.TargetConfig{
		BaselineYear: baseline,
		TargetYear:   target,
		ReductionPct: pct,
	}, true, nil
}
