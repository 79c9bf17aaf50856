package handlers

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/metroworks/issue-service/internal/api/dto"
	"github.com/metroworks/issue-service/internal/service"
	apperrors "github.com/metroworks/issue-service/pkg/util"
)

// PhotosHandler manages photo attachment endpoints.
type PhotosHandler struct {
	service *service.PhotoService
}

// NewPhotosHandler constructs handler.
func NewPhotosHandler(photoService *service.PhotoService) *PhotosHandler {
	return &PhotosHandler{service: photoService}
}

// Upload POST /issues/photos. The form carries up to five slots named
// photo0..photo4; absent slots are fine.
func (h *PhotosHandler) Upload(c *fiber.Ctx) error {
	issueID := c.FormValue("issueId")
	if issueID == "" {
		return apperrors.NewValidationError("issueId is required")
	}

	files := make([]*service.PhotoInput, 5)
	for slot := range files {
		header, err := c.FormFile(fmt.Sprintf("photo%d", slot))
		if err != nil || header == nil {
			continue
		}
		files[slot] = photoInput(header)
	}

	result, err := h.service.AttachPhotos(c.Context(), issueID, files)
	if err != nil {
		return err
	}
	return c.JSON(dto.UploadPhotosResponse{
		Success:        true,
		UploadedPhotos: result.UploadedPhotos,
		Count:          result.Count,
	})
}

// List GET /issues/photos?issueId=.
func (h *PhotosHandler) List(c *fiber.Ctx) error {
	issueID := c.Query("issueId")
	if issueID == "" {
		return apperrors.NewValidationError("issueId is required")
	}
	photos, err := h.service.ListPhotos(c.Context(), issueID)
	if err != nil {
		return err
	}
	items := make([]dto.PhotoResponse, 0, len(photos))
	for i := range photos {
		items = append(items, photoResponse(&photos[i]))
	}
	return c.JSON(items)
}

func photoInput(header *multipart.FileHeader) *service.PhotoInput {
	return &service.PhotoInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}
