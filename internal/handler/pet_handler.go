package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// PetHandler serves pet profiles and the pet detail view.
type PetHandler struct {
	service *application.PetService
}

func NewPetHandler(service *application.PetService) *PetHandler {
	return &PetHandler{service: service}
}

// RegisterRoutes registers the pet profile routes.
func (h *PetHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	pets := petsGroup(r, jwtManager)
	{
		pets.POST("", h.CreatePet)
		pets.GET("", h.ListMyPets)
		pets.GET("/:id", h.PetDetail)
		pets.PUT("/:id", h.UpdatePet)
		pets.DELETE("/:id", h.DeletePet)
	}
}

// petsGroup is the authenticated /api/v1/pets group shared by every pet handler.
func petsGroup(r *gin.RouterGroup, jwtManager *auth.JWTManager) *gin.RouterGroup {
	pets := r.Group("/api/v1/pets")
	pets.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleOwner, auth.RoleAdmin))
	return pets
}

// CreatePet handles POST /api/v1/pets. The caller becomes the owner.
func (h *PetHandler) CreatePet(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreatePetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pet, err := h.service.CreatePet(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pet)
}

// ListMyPets handles GET /api/v1/pets, newest first.
func (h *PetHandler) ListMyPets(c *gin.Context) {
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	pets, err := h.service.GetMyPets(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pets)
}

// PetDetail handles GET /api/v1/pets/:id: the pet with its toys, the toys it
// lacks, its feeding log and its photo.
func (h *PetHandler) PetDetail(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	detail, err := h.service.GetPetDetail(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// UpdatePet handles PUT /api/v1/pets/:id. Owner only; the name is fixed.
func (h *PetHandler) UpdatePet(c *gin.Context) {
	ownerID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	var req application.UpdatePetRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pet, err := h.service.UpdatePet(c.Request.Context(), ownerID, petID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, pet)
}

// DeletePet handles DELETE /api/v1/pets/:id along with its toy links,
// feedings and photo. Owner only.
func (h *PetHandler) DeletePet(c *gin.Context) {
	ownerID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	if err := h.service.DeletePet(c.Request.Context(), ownerID, petID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": petID})
}
