package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/service"
)

func (h *ImageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// UploadImage accepts a multipart form with a single "file" field,
// enhances it and renders the result page. Errors are reported on the
// same page rather than as JSON, the form being the only client.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.renderError(c, "No image file provided")
		return
	}

	src, err := file.Open()
	if err != nil {
		h.renderError(c, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.renderError(c, "Failed to read uploaded file")
		return
	}

	result, err := h.service.EnhanceUpload(data)
	if err != nil {
		logrus.Errorf("upload failed: %v", err)
		switch {
		case errors.Is(err, service.ErrInvalidImage):
			h.renderError(c, "Invalid image file")
		case errors.Is(err, service.ErrSaveFailed):
			h.renderError(c, "Failed to save enhanced image")
		default:
			h.renderError(c, "An unexpected error occurred")
		}
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"OutputImage": result.OutputPath,
		"Thumbnail":   result.ThumbnailPath,
	})
}

func (h *ImageHandler) GetImage(c *gin.Context) {
	id := c.Param("id")

	image, err := h.service.GetImage(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entity.ImageResponse{
		ID:            image.ID,
		Status:        image.Status,
		Variant:       image.Variant,
		OutputPath:    image.OutputPath,
		ThumbnailPath: image.ThumbnailPath,
		CreatedAt:     image.CreatedAt,
	})
}

func (h *ImageHandler) DeleteImage(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.DeleteImage(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

func (h *ImageHandler) renderError(c *gin.Context, msg string) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Error": msg})
}
