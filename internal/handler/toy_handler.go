package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// ToyHandler handles HTTP requests for the toy catalogue.
type ToyHandler struct {
	service *application.ToyService
}

// NewToyHandler creates a new ToyHandler.
func NewToyHandler(service *application.ToyService) *ToyHandler {
	return &ToyHandler{service: service}
}

// RegisterRoutes registers all toy routes.
func (h *ToyHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	toys := r.Group("/api/v1/toys")
	toys.Use(middleware.AuthMiddleware(jwtManager))
	{
		toys.POST("", h.CreateToy)
		toys.GET("", h.ListToys)
		toys.GET("/:id", h.GetToy)
		toys.PUT("/:id", h.UpdateToy)
		toys.DELETE("/:id", h.DeleteToy)
	}
}

// CreateToy handles POST /api/v1/toys.
func (h *ToyHandler) CreateToy(c *gin.Context) {
	var req application.CreateToyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateToy(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListToys handles GET /api/v1/toys.
func (h *ToyHandler) ListToys(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListToys(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetToy handles GET /api/v1/toys/:id.
func (h *ToyHandler) GetToy(c *gin.Context) {
	toyID, ok := parseIDParam(c, "id", "toy")
	if !ok {
		return
	}

	result, err := h.service.GetToy(c.Request.Context(), toyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateToy handles PUT /api/v1/toys/:id.
func (h *ToyHandler) UpdateToy(c *gin.Context) {
	toyID, ok := parseIDParam(c, "id", "toy")
	if !ok {
		return
	}

	var req application.UpdateToyRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateToy(c.Request.Context(), toyID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteToy handles DELETE /api/v1/toys/:id.
func (h *ToyHandler) DeleteToy(c *gin.Context) {
	toyID, ok := parseIDParam(c, "id", "toy")
	if !ok {
		return
	}

	if err := h.service.DeleteToy(c.Request.Context(), toyID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "toy deleted"})
}
