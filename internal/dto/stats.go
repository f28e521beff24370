package dto

import "github.com/haitham-dev/hudur-api/internal/models"

// MonthlyStatsRequest scopes rollups to one calendar month.
type MonthlyStatsRequest struct {
	Month string `form:"month" binding:"required,datetime=2006-01"`
}

// WeekdayStatsResponse lists weekday rollups in week order.
type WeekdayStatsResponse struct {
	Weekdays []models.WeekdaySummary `json:"weekdays"`
}

// ClassStatsResponse lists per-class rollups.
type ClassStatsResponse struct {
	Classes []models.ClassSummary `json:"classes"`
}

// DailyStatsResponse lists per-day rollups.
type DailyStatsResponse struct {
	Days []models.DailySummary `json:"days"`
}
