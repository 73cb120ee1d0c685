package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// FeedingHandler handles the feeding log routes.
type FeedingHandler struct {
	service *application.FeedingService
	opts    WorkflowOptions
	logger  *zap.Logger
}

// NewFeedingHandler creates a new FeedingHandler.
func NewFeedingHandler(service *application.FeedingService, opts WorkflowOptions, logger *zap.Logger) *FeedingHandler {
	return &FeedingHandler{service: service, opts: opts, logger: logger}
}

// RegisterRoutes registers the feeding routes.
func (h *FeedingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	pets := petsGroup(r, jwtManager)
	{
		pets.POST("/:id/feedings", h.AddFeeding)
		pets.GET("/:id/feedings", h.ListFeedings)
	}
}

// AddFeeding handles POST /api/v1/pets/:id/feedings. Accepts form or JSON
// bodies; a pet_id in the body is ignored.
func (h *FeedingHandler) AddFeeding(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	var req application.AddFeedingRequest
	if err := c.ShouldBind(&req); err != nil {
		finishWorkflow(c, h.opts, h.logger, petID, domain.NewValidationError(err.Error()))
		return
	}
	form, err := req.Form()
	if err != nil {
		finishWorkflow(c, h.opts, h.logger, petID, err)
		return
	}

	_, err = h.service.AddFeeding(c.Request.Context(), userID, petID, form)
	finishWorkflow(c, h.opts, h.logger, petID, err)
}

// ListFeedings handles GET /api/v1/pets/:id/feedings.
func (h *FeedingHandler) ListFeedings(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	result, err := h.service.ListFeedings(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
