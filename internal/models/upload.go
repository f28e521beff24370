package models

// FileStatus tracks the per-file lifecycle inside an upload batch.
type FileStatus string

const (
	FileStatusWaiting    FileStatus = "WAITING"
	FileStatusProcessing FileStatus = "PROCESSING"
	FileStatusSuccess    FileStatus = "SUCCESS"
	FileStatusError      FileStatus = "ERROR"
)

// FileResult reports the outcome of one file within a batch. Files are
// processed strictly in order; a failed file never aborts the ones after it.
type FileResult struct {
	Name         string     `json:"name"`
	Status       FileStatus `json:"status"`
	Records      int        `json:"records"`
	SkippedLines int        `json:"skipped_lines,omitempty"`
	Message      string     `json:"message,omitempty"`
}

// UploadBatch summarises one multi-file ingest request.
type UploadBatch struct {
	BatchID      string       `json:"batch_id"`
	Files        []FileResult `json:"files"`
	TotalRecords int          `json:"total_records"`
}
