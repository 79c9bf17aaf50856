package events

import (
	"time"

	"github.com/metroworks/issue-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIssueCreated        EventType = "issue_created"
	EventIssueStatusChanged  EventType = "issue_status_changed"
	EventIssueAssigned       EventType = "issue_assigned"
	EventIssueCommentAdded   EventType = "issue_comment_added"
	EventIssuePhotosUploaded EventType = "issue_photos_uploaded"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	IssueID   string      `json:"issue_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IssueCreatedPayload payload.
type IssueCreatedPayload struct {
	CategoryID string               `json:"category_id"`
	Priority   domain.IssuePriority `json:"priority"`
	Title      string               `json:"title"`
}

// IssueStatusChangedPayload payload.
type IssueStatusChangedPayload struct {
	OldStatus domain.IssueStatus `json:"old_status"`
	NewStatus domain.IssueStatus `json:"new_status"`
}

// IssueAssignedPayload payload.
type IssueAssignedPayload struct {
	AssignedToID *string            `json:"assigned_to_id,omitempty"`
	NewStatus    domain.IssueStatus `json:"new_status"`
}

// IssueCommentAddedPayload payload.
type IssueCommentAddedPayload struct {
	UpdateID       string `json:"update_id"`
	MessagePreview string `json:"message_preview"`
}

// IssuePhotosUploadedPayload payload.
type IssuePhotosUploadedPayload struct {
	Count int      `json:"count"`
	URLs  []string `json:"urls"`
}
