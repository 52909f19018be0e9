package handler

import (
	"net/http"

	"saaspdv/internal/dto"
	"saaspdv/internal/middleware"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct{ svc service.ProductService }

func NewProductsHandler(svc service.ProductService) *ProductsHandler {
	return &ProductsHandler{svc: svc}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CreateProduct(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id.String()})
}

func (h *ProductsHandler) List(c *gin.Context) {
	products, err := h.svc.ListProducts(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateProduct(c.Request.Context(), middleware.GetClaims(c), id, req); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
