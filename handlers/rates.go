package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RatesHandler resolves FX pair rates for the dashboard. The response is
// always HTTP 200: upstream failures surface as a fallback snapshot with
// fallback=true and a readable message, never as an error status.
func (h *DashboardHandler) RatesHandler(c *gin.Context) {
	mode := c.DefaultQuery("mode", "live")
	source := c.Query("source")
	date := c.Query("date")

	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	snap := h.fx.Resolve(mode, source, symbols, date)
	c.JSON(http.StatusOK, snap)
}
