package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// AdminPetHandler handles admin HTTP requests across every owner's pets.
type AdminPetHandler struct {
	service *application.PetService
}

// NewAdminPetHandler creates a new AdminPetHandler.
func NewAdminPetHandler(service *application.PetService) *AdminPetHandler {
	return &AdminPetHandler{service: service}
}

// RegisterRoutes registers admin pet routes.
func (h *AdminPetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/pets", h.ListPets)
		admin.GET("/stats/pets", h.PetStats)
	}
}

// ListPets handles GET /api/v1/admin/pets.
func (h *AdminPetHandler) ListPets(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.service.ListAllPets(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// PetStats handles GET /api/v1/admin/stats/pets.
func (h *AdminPetHandler) PetStats(c *gin.Context) {
	stats, err := h.service.GetPetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
