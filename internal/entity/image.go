package entity

import "time"

// Image is the stored record of one enhancement performed by the
// upload service.
type Image struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Variant       string    `json:"variant"`
	OutputPath    string    `json:"output_path,omitempty"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// UploadResult is what the upload handler renders back to the client.
type UploadResult struct {
	ID            string `json:"id"`
	OutputPath    string `json:"output_path"`
	ThumbnailPath string `json:"thumbnail_path"`
}

// ImageResponse is the JSON shape of GET /image/:id.
type ImageResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Variant       string    `json:"variant"`
	OutputPath    string    `json:"output_path,omitempty"`
	ThumbnailPath string    `json:"thumbnail_path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// BatchSummary totals one batch run. Skipped counts unreadable inputs,
// Failed counts files whose outputs could not all be written.
type BatchSummary struct {
	Processed int
	Skipped   int
	Failed    int
}
