package handler

import (
	"net/http"
	"strconv"

	"saaspdv/internal/middleware"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
)

type MetricsHandler struct{ svc service.MetricsService }

func NewMetricsHandler(svc service.MetricsService) *MetricsHandler {
	return &MetricsHandler{svc: svc}
}

func (h *MetricsHandler) Overview(c *gin.Context) {
	overview, err := h.svc.Overview(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *MetricsHandler) SalesTrend(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	points, err := h.svc.SalesTrend(c.Request.Context(), middleware.GetClaims(c), days)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

func (h *MetricsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	rows, err := h.svc.TopProducts(c.Request.Context(), middleware.GetClaims(c), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *MetricsHandler) InventoryAlerts(c *gin.Context) {
	alerts, err := h.svc.InventoryAlerts(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}
