package handler

import (
	"net/http"

	"saaspdv/internal/dto"
	"saaspdv/internal/middleware"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CreateCustomer(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id.String()})
}

func (h *CustomersHandler) List(c *gin.Context) {
	customers, err := h.svc.ListCustomers(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}
