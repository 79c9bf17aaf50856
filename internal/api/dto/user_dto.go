package dto

import "github.com/metroworks/issue-service/internal/domain"

// UserResponse is the account projection embedded in issue payloads.
type UserResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       domain.UserRole `json:"role"`
	Department *string         `json:"department"`
}

// CategoryResponse mirrors reference category rows.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}
