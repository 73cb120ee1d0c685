package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// WorkflowOptions controls how pet workflows (toy association, feeding,
// photo upload) report soft failures.
type WorkflowOptions struct {
	// SurfaceErrors returns validation and upload failures to the client.
	// When false they are only logged and the client is redirected to the
	// pet detail view as if the request had succeeded.
	SurfaceErrors bool
}

// PetDetailPath returns the location of a pet's detail view.
func PetDetailPath(petID uuid.UUID) string {
	return "/api/v1/pets/" + petID.String()
}

// finishWorkflow answers a workflow request. Missing pets and denied access
// always fail the request; soft failures depend on opts.SurfaceErrors.
func finishWorkflow(c *gin.Context, opts WorkflowOptions, log *zap.Logger, petID uuid.UUID, err error) {
	if err == nil {
		c.Redirect(http.StatusSeeOther, PetDetailPath(petID))
		return
	}

	var uploadErr *application.UploadError
	soft := domain.IsValidation(err) || errors.As(err, &uploadErr)
	if !soft {
		response.Error(c, err)
		return
	}

	log.Warn("pet workflow failed",
		zap.String("path", c.FullPath()),
		zap.String("pet_id", petID.String()),
		zap.Error(err),
	)
	if opts.SurfaceErrors {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, PetDetailPath(petID))
}

// callerID returns the authenticated caller, writing a 401 when there is none.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domain.NewUnauthorizedError("unauthorized"))
		return uuid.Nil, false
	}
	return userID, true
}

// callerAndPet resolves the caller and the :id pet path parameter.
func callerAndPet(c *gin.Context) (userID, petID uuid.UUID, ok bool) {
	if userID, ok = callerID(c); !ok {
		return
	}
	petID, ok = parseIDParam(c, "id", "pet")
	return
}

// parseIDParam parses a uuid path parameter, writing a 400 when it is malformed.
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
