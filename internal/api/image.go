package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealbook/backend/internal/middleware"
	"github.com/pageza/mealbook/backend/internal/model"
	"github.com/pageza/mealbook/backend/internal/service"
)

// ImageHandler handles recipe image and meal log photo uploads
type ImageHandler struct {
	imageService service.IImageService
	rateLimiter  *middleware.RateLimiter
}

// NewImageHandler creates a new image handler. A nil rateLimiter disables
// upload limits.
func NewImageHandler(imageService service.IImageService, rateLimiter *middleware.RateLimiter) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		rateLimiter:  rateLimiter,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/images")
	{
		images.POST("", h.rateLimiter.RateLimitMiddleware(), h.UploadImage)
		images.DELETE("", h.DeleteImage)
	}
}

// UploadImageResponse represents the response for an image upload
type UploadImageResponse struct {
	URL string `json:"url"`
}

// UploadImage stores the multipart "file" field. The optional recipeId or
// mealLogId form fields choose the storage prefix.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(model.NewValidationError("file", "multipart field is required"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := h.imageService.ValidateImage(header.Size, contentType); err != nil {
		_ = c.Error(err)
		return
	}

	file, err := header.Open()
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		_ = c.Error(fmt.Errorf("failed to read upload: %w", err))
		return
	}

	url, err := h.imageService.UploadImage(c.Request.Context(), &service.UploadRequest{
		Data:        data,
		FileName:    header.Filename,
		ContentType: contentType,
		RecipeID:    c.PostForm("recipeId"),
		MealLogID:   c.PostForm("mealLogId"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, UploadImageResponse{URL: url})
}

// DeleteImage removes the image named by the url query parameter. It always
// answers 204; failures are only logged.
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	if url := c.Query("url"); url != "" {
		h.imageService.DeleteImage(c.Request.Context(), url)
	}
	c.Status(http.StatusNoContent)
}
