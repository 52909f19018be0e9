package handler

import (
	"fmt"
	"net/http"

	"saaspdv/internal/dto"
	"saaspdv/internal/middleware"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler {
	return &SalesHandler{svc: svc}
}

// Create godoc
// @Summary Commit an atomic sale
// @Tags sales
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateSaleRequest true "Sale payload"
// @Success 201 {object} model.Sale
// @Failure 400 {object} apierror.APIError
// @Router /sales [post]
func (h *SalesHandler) Create(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	sale, err := h.svc.CreateSale(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (h *SalesHandler) List(c *gin.Context) {
	sales, err := h.svc.ListSales(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *SalesHandler) Stats(c *gin.Context) {
	stats, err := h.svc.GetStats(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Receipt streams the sale's receipt as a PDF attachment.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	pdf, err := h.svc.GenerateReceipt(c.Request.Context(), middleware.GetClaims(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
