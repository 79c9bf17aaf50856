package dto

import (
	"time"

	"github.com/metroworks/issue-service/internal/domain"
)

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Latitude     *Coordinate          `json:"latitude"`
	Longitude    *Coordinate          `json:"longitude"`
	Address      *string              `json:"address"`
	Priority     domain.IssuePriority `json:"priority"`
	CategoryID   string               `json:"categoryId"`
	ReportedByID string               `json:"reportedById"`
}

// AssignIssueRequest payload. A nil AssignedToID unassigns. UpdatedByID is
// the optional explicit actor for the audit entry.
type AssignIssueRequest struct {
	AssignedToID *string `json:"assignedToId"`
	UpdatedByID  string  `json:"updatedById"`
}

// SetStatusRequest payload.
type SetStatusRequest struct {
	Status      string `json:"status"`
	UpdatedByID string `json:"updatedById"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Message     string `json:"message"`
	UpdatedByID string `json:"updatedById"`
}

// IssueResponse mirrors the issue with its joined relations.
type IssueResponse struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Latitude     float64              `json:"latitude"`
	Longitude    float64              `json:"longitude"`
	Address      *string              `json:"address"`
	Priority     domain.IssuePriority `json:"priority"`
	Status       domain.IssueStatus   `json:"status"`
	CategoryID   string               `json:"categoryId"`
	ReportedByID string               `json:"reportedById"`
	AssignedToID *string              `json:"assignedToId"`
	AssignedAt   *time.Time           `json:"assignedAt"`
	ResolvedAt   *time.Time           `json:"resolvedAt"`
	ReportedAt   time.Time            `json:"reportedAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
	Category     *CategoryResponse    `json:"category,omitempty"`
	ReportedBy   *UserResponse        `json:"reportedBy,omitempty"`
	AssignedTo   *UserResponse        `json:"assignedTo,omitempty"`
	Photos       []PhotoResponse      `json:"photos,omitempty"`
	Updates      []UpdateResponse     `json:"updates,omitempty"`
}

// UpdateResponse represents one audit trail entry.
type UpdateResponse struct {
	ID          string             `json:"id"`
	IssueID     string             `json:"issueId"`
	Message     string             `json:"message"`
	OldStatus   domain.IssueStatus `json:"oldStatus"`
	NewStatus   domain.IssueStatus `json:"newStatus"`
	UpdatedByID string             `json:"updatedById"`
	UpdatedBy   *UserResponse      `json:"updatedBy,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}
