package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatistics returns a fresh aggregation for one client service.
func (h *Handler) GetStatistics(c *gin.Context) {
	out, err := h.stats.Compute(c.Request.Context(), c.Param("service_id"))
	if err != nil {
		abort(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}
