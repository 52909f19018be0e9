package handler

import (
	"net/http"

	"saaspdv/internal/dto"
	"saaspdv/internal/middleware"
	"saaspdv/internal/service"

	"github.com/gin-gonic/gin"
)

type PlansHandler struct{ svc service.PlanService }

func NewPlansHandler(svc service.PlanService) *PlansHandler {
	return &PlansHandler{svc: svc}
}

func (h *PlansHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := h.svc.CreatePlan(c.Request.Context(), middleware.GetClaims(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CreatedResponse{ID: id.String()})
}

func (h *PlansHandler) List(c *gin.Context) {
	plans, err := h.svc.ListPlans(c.Request.Context(), middleware.GetClaims(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}
