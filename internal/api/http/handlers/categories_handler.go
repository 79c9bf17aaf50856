package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metroworks/issue-service/internal/api/dto"
	"github.com/metroworks/issue-service/internal/service"
)

// CategoriesHandler serves the static category reference data.
type CategoriesHandler struct {
	service *service.IssueService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(issueService *service.IssueService) *CategoriesHandler {
	return &CategoriesHandler{service: issueService}
}

// List GET /categories.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, dto.CategoryResponse{
			ID:          category.ID,
			Name:        category.Name,
			Color:       category.Color,
			Description: category.Description,
		})
	}
	return c.JSON(items)
}
