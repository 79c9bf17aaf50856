package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metroworks/issue-service/internal/api/dto"
	"github.com/metroworks/issue-service/internal/domain"
	"github.com/metroworks/issue-service/internal/identity"
	"github.com/metroworks/issue-service/internal/repository"
	"github.com/metroworks/issue-service/internal/service"
	apperrors "github.com/metroworks/issue-service/pkg/util"
)

// IssuesHandler manages issue lifecycle endpoints.
type IssuesHandler struct {
	service  *service.IssueService
	identity *identity.Resolver
}

// NewIssuesHandler constructs handler.
func NewIssuesHandler(issueService *service.IssueService, resolver *identity.Resolver) *IssuesHandler {
	return &IssuesHandler{service: issueService, identity: resolver}
}

// List GET /issues.
func (h *IssuesHandler) List(c *fiber.Ctx) error {
	filter, err := parseIssueQuery(c)
	if err != nil {
		return err
	}
	issues, err := h.service.ListIssues(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.IssueResponse, 0, len(issues))
	for i := range issues {
		items = append(items, issueResponse(&issues[i]))
	}
	return c.JSON(items)
}

// Create POST /issues.
func (h *IssuesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return apperrors.NewValidationError("latitude and longitude must be numeric")
	}

	input := service.IssueCreateInput{
		Title:        req.Title,
		Description:  req.Description,
		Latitude:     req.Latitude.Float(),
		Longitude:    req.Longitude.Float(),
		Address:      req.Address,
		Priority:     req.Priority,
		CategoryID:   req.CategoryID,
		ReportedByID: req.ReportedByID,
	}
	issue, err := h.service.CreateIssue(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(issueResponse(issue))
}

// Get GET /issues/:id.
func (h *IssuesHandler) Get(c *fiber.Ctx) error {
	issue, err := h.service.GetIssue(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(issueDetailResponse(issue))
}

// Assign POST /issues/:id/assign.
func (h *IssuesHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	actor := h.actorID(c, req.UpdatedByID)
	issue, err := h.service.Assign(c.Context(), c.Params("id"), req.AssignedToID, actor)
	if err != nil {
		return err
	}
	return c.JSON(issueResponse(issue))
}

// SetStatus POST /issues/:id/status.
func (h *IssuesHandler) SetStatus(c *fiber.Ctx) error {
	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	actor := h.actorID(c, req.UpdatedByID)
	issue, err := h.service.SetStatus(c.Context(), c.Params("id"), domain.IssueStatus(req.Status), actor)
	if err != nil {
		return err
	}
	return c.JSON(issueResponse(issue))
}

// AddComment POST /issues/:id/comments.
func (h *IssuesHandler) AddComment(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	actor := h.actorID(c, req.UpdatedByID)
	entry, err := h.service.AddComment(c.Context(), c.Params("id"), req.Message, actor)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(updateResponse(entry))
}

// actorID prefers the bearer-token subject over the explicit body field.
func (h *IssuesHandler) actorID(c *fiber.Ctx, explicit string) string {
	if actor := h.identity.ActorID(c.Context(), c.Get(fiber.HeaderAuthorization)); actor != "" {
		return actor
	}
	return explicit
}

func parseIssueQuery(c *fiber.Ctx) (repository.IssueFilter, error) {
	var filter repository.IssueFilter
	if status := c.Query("status"); status != "" {
		value := domain.IssueStatus(status)
		if !domain.ValidStatus(value) {
			return filter, apperrors.NewValidationError("invalid status")
		}
		filter.Status = &value
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		filter.CategoryID = &categoryID
	}
	if assignedTo := c.Query("assignedTo"); assignedTo != "" {
		if assignedTo == "unassigned" {
			filter.Unassigned = true
		} else {
			filter.AssignedTo = &assignedTo
		}
	}
	return filter, nil
}

func issueResponse(issue *domain.Issue) dto.IssueResponse {
	resp := dto.IssueResponse{
		ID:           issue.ID,
		Title:        issue.Title,
		Description:  issue.Description,
		Latitude:     issue.Latitude,
		Longitude:    issue.Longitude,
		Address:      issue.Address,
		Priority:     issue.Priority,
		Status:       issue.Status,
		CategoryID:   issue.CategoryID,
		ReportedByID: issue.ReportedByID,
		AssignedToID: issue.AssignedToID,
		AssignedAt:   issue.AssignedAt,
		ResolvedAt:   issue.ResolvedAt,
		ReportedAt:   issue.ReportedAt,
		UpdatedAt:    issue.UpdatedAt,
		ReportedBy:   userResponse(issue.ReportedBy),
		AssignedTo:   userResponse(issue.AssignedTo),
	}
	if issue.Category != nil {
		resp.Category = &dto.CategoryResponse{
			ID:          issue.Category.ID,
			Name:        issue.Category.Name,
			Color:       issue.Category.Color,
			Description: issue.Category.Description,
		}
	}
	return resp
}

func issueDetailResponse(issue *domain.Issue) dto.IssueResponse {
	resp := issueResponse(issue)
	resp.Photos = make([]dto.PhotoResponse, 0, len(issue.Photos))
	for i := range issue.Photos {
		resp.Photos = append(resp.Photos, photoResponse(&issue.Photos[i]))
	}
	resp.Updates = make([]dto.UpdateResponse, 0, len(issue.Updates))
	for i := range issue.Updates {
		resp.Updates = append(resp.Updates, updateResponse(&issue.Updates[i]))
	}
	return resp
}

func updateResponse(update *domain.IssueUpdate) dto.UpdateResponse {
	return dto.UpdateResponse{
		ID:          update.ID,
		IssueID:     update.IssueID,
		Message:     update.Message,
		OldStatus:   update.OldStatus,
		NewStatus:   update.NewStatus,
		UpdatedByID: update.UpdatedByID,
		UpdatedBy:   userResponse(update.UpdatedBy),
		CreatedAt:   update.CreatedAt,
	}
}

func userResponse(profile *domain.UserProfile) *dto.UserResponse {
	if profile == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         profile.ID,
		Name:       profile.Name,
		Email:      profile.Email,
		Role:       profile.Role,
		Department: profile.Department,
	}
}

func photoResponse(photo *domain.IssuePhoto) dto.PhotoResponse {
	return dto.PhotoResponse{
		ID:        photo.ID,
		IssueID:   photo.IssueID,
		URL:       photo.URL,
		Caption:   photo.Caption,
		CreatedAt: photo.CreatedAt,
	}
}
