package dto

import "github.com/haitham-dev/hudur-api/internal/models"

// AttendanceUploadRequest accompanies a multi-file attendance text upload.
// DefaultDate is the fallback when a file carries no embedded date token;
// StartTime overrides the configured school-day start for this batch.
type AttendanceUploadRequest struct {
	DefaultDate string `form:"default_date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   string `form:"start_time" binding:"omitempty,datetime=15:04:05"`
}

// AttendanceUploadResponse reports the batch outcome, file by file.
type AttendanceUploadResponse struct {
	Batch models.UploadBatch `json:"batch"`
}

// RosterUploadResponse reports the roster ingest outcome.
type RosterUploadResponse struct {
	Batch        models.UploadBatch `json:"batch"`
	TotalEntries int                `json:"total_entries"`
	SyntheticIDs int                `json:"synthetic_ids"`
}
