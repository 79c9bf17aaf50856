package domain

import "time"

// IssueStatus enumerates lifecycle states for issues.
type IssueStatus string

const (
	IssueStatusReported   IssueStatus = "REPORTED"
	IssueStatusInProgress IssueStatus = "IN_PROGRESS"
	IssueStatusResolved   IssueStatus = "RESOLVED"
)

// ValidStatus reports whether s is one of the three recognized statuses.
func ValidStatus(s IssueStatus) bool {
	switch s {
	case IssueStatusReported, IssueStatusInProgress, IssueStatusResolved:
		return true
	}
	return false
}

// IssuePriority enumerates severity independent of status.
type IssuePriority string

const (
	IssuePriorityLow    IssuePriority = "LOW"
	IssuePriorityMedium IssuePriority = "MEDIUM"
	IssuePriorityHigh   IssuePriority = "HIGH"
	IssuePriorityUrgent IssuePriority = "URGENT"
)

// ValidPriority reports whether p is one of the four recognized priorities.
func ValidPriority(p IssuePriority) bool {
	switch p {
	case IssuePriorityLow, IssuePriorityMedium, IssuePriorityHigh, IssuePriorityUrgent:
		return true
	}
	return false
}

// Issue is the aggregate root for a reported infrastructure problem. Photos
// and updates exist only in relation to exactly one issue.
//
// Invariants: AssignedAt is non-nil iff AssignedToID is non-nil, and
// ResolvedAt is non-nil iff Status is RESOLVED.
type Issue struct {
	ID           string
	Title        string
	Description  string
	Latitude     float64
	Longitude    float64
	Address      *string
	Priority     IssuePriority
	Status       IssueStatus
	CategoryID   string
	ReportedByID string
	AssignedToID *string
	AssignedAt   *time.Time
	ResolvedAt   *time.Time
	ReportedAt   time.Time
	UpdatedAt    time.Time

	// Relations populated by the read queries.
	Category   *IssueCategory
	ReportedBy *UserProfile
	AssignedTo *UserProfile
	Photos     []IssuePhoto
	Updates    []IssueUpdate
}
