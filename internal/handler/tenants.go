package handler

import (
	"net/http"

	"saaspdv/internal/dto"
	"saaspdv/internal/middleware"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
)

type TenantsHandler struct{ svc service.TenantService }

func NewTenantsHandler(svc service.TenantService) *TenantsHandler {
	return &TenantsHandler{svc: svc}
}

// Create godoc
// @Summary Create a tenant, optionally with its first shopkeeper user
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateTenantRequest true "Tenant payload"
// @Success 201 {object} dto.CreatedResponse
// @Router /admin/tenants [post]
func (h *TenantsHandler) Create(c *gin.Context) {
	var req dto.CreateTenantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CreateTenant(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id.String()})
}

func (h *TenantsHandler) List(c *gin.Context) {
	tenants, err := h.svc.ListTenants(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tenants)
}

func (h *TenantsHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateTenantRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.UpdateTenant(c.Request.Context(), middleware.GetClaims(c), id, req); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TenantsHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTenant(c.Request.Context(), middleware.GetClaims(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
