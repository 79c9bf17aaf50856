package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/metroworks/issue-service/internal/api/dto"
	"github.com/metroworks/issue-service/internal/domain"
	"github.com/metroworks/issue-service/internal/service"
)

// UsersHandler serves account projections for triage and demo sign-in.
type UsersHandler struct {
	service *service.IssueService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(issueService *service.IssueService) *UsersHandler {
	return &UsersHandler{service: issueService}
}

// List GET /users. With an email query it returns the single matching
// projection; otherwise all accounts ordered by role then name.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	if email := c.Query("email"); email != "" {
		user, err := h.service.GetUserByEmail(c.Context(), email)
		if err != nil {
			return err
		}
		return c.JSON(userProjection(user))
	}

	users, err := h.service.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, *userProjection(&users[i]))
	}
	return c.JSON(items)
}

func userProjection(user *domain.User) *dto.UserResponse {
	return userResponse(user.Profile())
}
