package models

// StudentTotal aggregates the delayed days and delay minutes of one student.
type StudentTotal struct {
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name"`
	DelayedDays  int    `json:"delayed_days"`
	TotalMinutes int    `json:"total_minutes"`
}

// DailySummary aggregates delayed records observed on a single date.
type DailySummary struct {
	Date         string `json:"date"`
	DelayedCount int    `json:"delayed_count"`
	TotalMinutes int    `json:"total_minutes"`
}

// WeekdaySummary aggregates delayed records by day of week.
type WeekdaySummary struct {
	Weekday      string `json:"weekday"`
	DelayedCount int    `json:"delayed_count"`
	TotalMinutes int    `json:"total_minutes"`
}

// ClassSummary aggregates delayed records by roster grade/section. Records
// whose student is absent from the roster fall into the unspecified bucket.
type ClassSummary struct {
	ClassName    string `json:"class_name"`
	Section      string `json:"section"`
	DelayedCount int    `json:"delayed_count"`
	TotalMinutes int    `json:"total_minutes"`
}

// OverviewStats is the dashboard-level summary of the whole record set.
type OverviewStats struct {
	TotalRecords    int            `json:"total_records"`
	DelayedRecords  int            `json:"delayed_records"`
	MaxDelayOverall int            `json:"max_delay_overall"`
	BusiestDay      string         `json:"busiest_day"`
	TopOffenders    []StudentTotal `json:"top_offenders"`
}

// MonthlyStats groups per-student and per-day rollups for one YYYY-MM month.
type MonthlyStats struct {
	Month    string         `json:"month"`
	Students []StudentTotal `json:"students"`
	Days     []DailySummary `json:"days"`
}

// NoticeCandidate is a student whose count of un-notified delayed records
// reached the notice threshold.
type NoticeCandidate struct {
	StudentID     string             `json:"student_id"`
	StudentName   string             `json:"student_name"`
	PendingDates  []string           `json:"pending_dates"`
	PendingCount  int                `json:"pending_count"`
	TotalMinutes  int                `json:"total_minutes"`
	PendingDelays []AttendanceRecord `json:"pending_delays"`
}
