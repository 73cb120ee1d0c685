package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// AssociationHandler links toys to pets.
type AssociationHandler struct {
	service *application.AssociationService
	opts    WorkflowOptions
	logger  *zap.Logger
}

// NewAssociationHandler creates a new AssociationHandler.
func NewAssociationHandler(service *application.AssociationService, opts WorkflowOptions, logger *zap.Logger) *AssociationHandler {
	return &AssociationHandler{service: service, opts: opts, logger: logger}
}

// RegisterRoutes registers the pet toy routes.
func (h *AssociationHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	pets := petsGroup(r, jwtManager)
	{
		pets.POST("/:id/toys/:toy_id", h.AttachToy)
		pets.GET("/:id/toys", h.ListToys)
		pets.GET("/:id/available-toys", h.AvailableToys)
	}
}

// AttachToy handles POST /api/v1/pets/:id/toys/:toy_id.
func (h *AssociationHandler) AttachToy(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}
	toyID, ok := parseIDParam(c, "toy_id", "toy")
	if !ok {
		return
	}

	err := h.service.AttachToy(c.Request.Context(), userID, petID, toyID)
	finishWorkflow(c, h.opts, h.logger, petID, err)
}

// ListToys handles GET /api/v1/pets/:id/toys.
func (h *AssociationHandler) ListToys(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	result, err := h.service.PetToys(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AvailableToys handles GET /api/v1/pets/:id/available-toys.
func (h *AssociationHandler) AvailableToys(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	result, err := h.service.AvailableToys(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
