package handlers

import (
	"math"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"carbonboard/models"
	"carbonboard/services"
	"carbonboard/utils"
)

// DashboardHandler serves the emissions dashboard HTTP surface. All of its
// collaborators are constructor-injected; there are no package-level
// singletons.
type DashboardHandler struct {
	data  *services.DatasetService
	fx    *services.FxService
	state *services.AppState
}

func NewDashboardHandler(data *services.DatasetService, fx *services.FxService, state *services.AppState) *DashboardHandler {
	return &DashboardHandler{data: data, fx: fx, state: state}
}

// HealthHandler handles health check requests.
func (h *DashboardHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "healthy",
		Message: "Carbonboard service is running",
		Service: "carbonboard",
	})
}

// CountriesHandler returns the country list.
func (h *DashboardHandler) CountriesHandler(c *gin.Context) {
	countries, err := h.data.FetchCountries()
	if err != nil {
		log.Errorf("fetching countries: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load countries")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"countries": countries, "count": len(countries)})
}

// CompaniesHandler returns the company list with emissions.
func (h *DashboardHandler) CompaniesHandler(c *gin.Context) {
	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load companies")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "count": len(companies)})
}

// CompanyHandler returns a single company by id.
func (h *DashboardHandler) CompanyHandler(c *gin.Context) {
	id := c.Param("id")
	company, err := h.data.FetchCompany(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": utils.ToMessage(err, "Company not found")})
		return
	}
	c.JSON(http.StatusOK, company)
}

// SummaryHandler returns the KPI card values: company count, total
// emissions and average per company in the requested unit.
func (h *DashboardHandler) SummaryHandler(c *gin.Context) {
	unit := queryUnit(c)

	companies, err := h.data.FetchCompanies()
	if err != nil {
		log.Errorf("fetching companies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": utils.ToMessage(err, "Failed to load companies")})
		return
	}

	var totalRaw float64
	for _, comp := range companies {
		for _, e := range comp.Emissions {
			totalRaw += e.Emissions
		}
	}

	totalScaled := utils.ScaleUnit(totalRaw, unit)
	var avg float64
	if len(companies) > 0 {
		avg = math.Round(totalScaled / float64(len(companies)))
	}

	c.JSON(http.StatusOK, models.SummaryResponse{
		TotalCompanies: len(companies),
		TotalEmissions: totalScaled,
		AvgPerCompany:  avg,
		Unit:           unit,
	})
}

func queryUnit(c *gin.Context) string {
	unit := c.DefaultQuery("unit", utils.UnitTons)
	if unit != utils.UnitKilotons {
		unit = utils.UnitTons
	}
	return unit
}

func queryRange(c *gin.Context) (string, string) {
	return c.Query("from"), c.Query("to")
}

func queryCurrency(c *gin.Context) string {
	cur := c.DefaultQuery("currency", "USD")
	if cur != "KRW" {
		cur = "USD"
	}
	return cur
}
