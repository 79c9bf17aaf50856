package domain

import "time"

// IssuePhoto stores metadata for an uploaded image. The file itself lives in
// the photo store; URL is the public path handed to clients. Photos are
// deleted with their issue.
type IssuePhoto struct {
	ID        string
	IssueID   string
	URL       string
	Caption   *string
	CreatedAt time.Time
}
