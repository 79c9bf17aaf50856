package domain

import "time"

// IssueUpdate is an append-only audit trail entry. OldStatus and NewStatus
// snapshot the issue status at the time of the event; equal values mark a
// pure comment, differing values a transition.
type IssueUpdate struct {
	ID          string
	IssueID     string
	Message     string
	OldStatus   IssueStatus
	NewStatus   IssueStatus
	UpdatedByID string
	CreatedAt   time.Time

	UpdatedBy *UserProfile
}
