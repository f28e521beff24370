package dto

import "github.com/haitham-dev/hudur-api/internal/models"

// RecordListRequest filters and paginates the attendance history.
type RecordListRequest struct {
	Query    string `form:"query"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Student  string `form:"student_id" binding:"omitempty,student_id"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// RecordListResponse returns one page of records.
type RecordListResponse struct {
	Records []models.AttendanceRecord `json:"records"`
}

// StudentReportResponse joins one student's roster entry with their full
// attendance history and totals.
type StudentReportResponse struct {
	Student models.StudentMetadata    `json:"student"`
	Records []models.AttendanceRecord `json:"records"`
	Totals  models.StudentTotal       `json:"totals"`
}

// StudentListResponse returns the roster.
type StudentListResponse struct {
	Students []models.StudentMetadata `json:"students"`
}
