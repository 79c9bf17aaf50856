package domain

import "time"

// IssueCategory is static reference data; the color is a display hint for
// map markers.
type IssueCategory struct {
	ID          string
	Name        string
	Color       string
	Description string
	CreatedAt   time.Time
}
