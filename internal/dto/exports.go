package dto

import "time"

// ExportResponse points the caller at a generated report file.
type ExportResponse struct {
	File        string    `json:"file"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MonthlyExportRequest scopes a PDF export to one month.
type MonthlyExportRequest struct {
	Month string `form:"month" binding:"required,datetime=2006-01"`
}
