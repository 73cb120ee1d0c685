package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-petcare/internal/application"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/auth"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/domain"
	"github.com/Kilat-Pet-Delivery/service-petcare/internal/platform/response"
)

// PhotoFormField is the multipart field carrying the photo.
const PhotoFormField = "photo-file"

// PhotoHandler handles HTTP requests for pet photo operations.
type PhotoHandler struct {
	service *application.PhotoService
	opts    WorkflowOptions
	logger  *zap.Logger
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(service *application.PhotoService, opts WorkflowOptions, logger *zap.Logger) *PhotoHandler {
	return &PhotoHandler{service: service, opts: opts, logger: logger}
}

// RegisterRoutes registers all photo routes.
func (h *PhotoHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	pets := petsGroup(r, jwtManager)
	{
		pets.POST("/:id/photo", h.UploadPhoto)
		pets.GET("/:id/photo", h.GetPhoto)
	}
}

// UploadPhoto handles POST /api/v1/pets/:id/photo. A request without a file
// leaves the current photo untouched.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	var upload *application.PhotoUpload
	fh, err := c.FormFile(PhotoFormField)
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			finishWorkflow(c, h.opts, h.logger, petID, domain.NewValidationError("unreadable photo file"))
			return
		}
		defer f.Close()
		upload = &application.PhotoUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Body:        f,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		finishWorkflow(c, h.opts, h.logger, petID, domain.NewValidationError(err.Error()))
		return
	}

	_, err = h.service.UploadPhoto(c.Request.Context(), userID, petID, upload)
	finishWorkflow(c, h.opts, h.logger, petID, err)
}

// GetPhoto handles GET /api/v1/pets/:id/photo.
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	userID, petID, ok := callerAndPet(c)
	if !ok {
		return
	}

	result, err := h.service.GetPhoto(c.Request.Context(), userID, petID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
