package dto

import "time"

// PhotoResponse mirrors an issue photo row.
type PhotoResponse struct {
	ID        string    `json:"id"`
	IssueID   string    `json:"issueId"`
	URL       string    `json:"url"`
	Caption   *string   `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadPhotosResponse reports accepted uploads; skipped files only show up
// as a smaller count.
type UploadPhotosResponse struct {
	Success        bool     `json:"success"`
	UploadedPhotos []string `json:"uploadedPhotos"`
	Count          int      `json:"count"`
}
