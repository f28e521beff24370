package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haitham-dev/hudur-api/internal/models"
	"github.com/haitham-dev/hudur-api/internal/store"
)

// statsCachePattern matches every cached statistics payload; mutations
// invalidate it wholesale.
const statsCachePattern = "stats:*"

// weekdayNames maps time.Weekday to the Arabic day names used in reports.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "الأحد",
	time.Monday:    "الاثنين",
	time.Tuesday:   "الثلاثاء",
	time.Wednesday: "الأربعاء",
	time.Thursday:  "الخميس",
	time.Friday:    "الجمعة",
	time.Saturday:  "السبت",
}

// StatsServiceConfig tunes aggregation defaults.
type StatsServiceConfig struct {
	TopOffendersLimit int
	CacheTTL          time.Duration
}

// StatsService derives summary statistics from store snapshots. Every
// computation is a pure function of the snapshot it reads; tie-breaks are
// deterministic (ascending student id, lexicographically smallest date)
// rather than map iteration order.
type StatsService struct {
	store  *store.RecordStore
	cache  *CacheService
	logger *zap.Logger
	cfg    StatsServiceConfig
}

// NewStatsService constructs the service.
func NewStatsService(recordStore *store.RecordStore, cache *CacheService, logger *zap.Logger, cfg StatsServiceConfig) *StatsService {
	if cfg.TopOffendersLimit <= 0 {
		cfg.TopOffendersLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{store: recordStore, cache: cache, logger: logger, cfg: cfg}
}

// Overview computes the dashboard summary. The second return reports cache
// utilisation.
func (s *StatsService) Overview(ctx context.Context) (*models.OverviewStats, bool) {
	var cached models.OverviewStats
	if hit, _ := s.cacheGet(ctx, "stats:overview", &cached); hit {
		return &cached, true
	}

	snapshot := s.store.Snapshot()
	overview := Overview(snapshot, s.cfg.TopOffendersLimit)

	s.cacheSet(ctx, "stats:overview", overview)
	return overview, false
}

// Monthly computes rollups for one YYYY-MM month.
func (s *StatsService) Monthly(ctx context.Context, month string) (*models.MonthlyStats, bool) {
	key := "stats:monthly:" + month
	var cached models.MonthlyStats
	if hit, _ := s.cacheGet(ctx, key, &cached); hit {
		return &cached, true
	}

	snapshot := s.store.Snapshot()
	monthly := Monthly(snapshot, month)

	s.cacheSet(ctx, key, monthly)
	return monthly, false
}

// Weekdays computes the weekday rollup in week order.
func (s *StatsService) Weekdays(ctx context.Context) ([]models.WeekdaySummary, bool) {
	var cached []models.WeekdaySummary
	if hit, _ := s.cacheGet(ctx, "stats:weekdays", &cached); hit {
		return cached, true
	}

	result := Weekdays(s.store.Snapshot())
	s.cacheSet(ctx, "stats:weekdays", result)
	return result, false
}

// Classes computes the per-class rollup joined against the roster.
func (s *StatsService) Classes(ctx context.Context) ([]models.ClassSummary, bool) {
	var cached []models.ClassSummary
	if hit, _ := s.cacheGet(ctx, "stats:classes", &cached); hit {
		return cached, true
	}

	result := Classes(s.store.Snapshot(), s.store.RosterSnapshot())
	s.cacheSet(ctx, "stats:classes", result)
	return result, false
}

// Daily computes the per-day rollup across the whole history.
func (s *StatsService) Daily(ctx context.Context) ([]models.DailySummary, bool) {
	var cached []models.DailySummary
	if hit, _ := s.cacheGet(ctx, "stats:daily", &cached); hit {
		return cached, true
	}

	result := Daily(s.store.Snapshot())
	s.cacheSet(ctx, "stats:daily", result)
	return result, false
}

func (s *StatsService) cacheGet(ctx context.Context, key string, dest interface{}) (bool, error) {
	if s.cache == nil {
		return false, nil
	}
	return s.cache.Get(ctx, key, dest)
}

func (s *StatsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// PerStudentTotals sums delayed days and minutes per student, considering
// only records with a positive delay. Results order by total minutes
// descending, ascending student id on ties.
func PerStudentTotals(snapshot models.RecordSnapshot) []models.StudentTotal {
	totals := map[string]*models.StudentTotal{}
	for _, rec := range store.Flatten(snapshot) {
		if !rec.Delayed() {
			continue
		}
		t, ok := totals[rec.StudentID]
		if !ok {
			t = &models.StudentTotal{StudentID: rec.StudentID}
			totals[rec.StudentID] = t
		}
		t.StudentName = rec.StudentName
		t.DelayedDays++
		t.TotalMinutes += rec.DelayMinutes
	}

	out := make([]models.StudentTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMinutes != out[j].TotalMinutes {
			return out[i].TotalMinutes > out[j].TotalMinutes
		}
		return out[i].StudentID < out[j].StudentID
	})
	return out
}

// TopOffenders returns the first n per-student totals.
func TopOffenders(snapshot models.RecordSnapshot, n int) []models.StudentTotal {
	totals := PerStudentTotals(snapshot)
	if n > 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// BusiestDay returns the date with the most delayed records, the smallest
// date winning ties.
func BusiestDay(snapshot models.RecordSnapshot) string {
	days := Daily(snapshot)
	busiest := ""
	max := 0
	for _, day := range days {
		if day.DelayedCount > max {
			busiest = day.Date
			max = day.DelayedCount
		}
	}
	return busiest
}

// Overview assembles the dashboard summary from one snapshot.
func Overview(snapshot models.RecordSnapshot, topN int) *models.OverviewStats {
	overview := &models.OverviewStats{
		TopOffenders: TopOffenders(snapshot, topN),
		BusiestDay:   BusiestDay(snapshot),
	}
	for _, rec := range store.Flatten(snapshot) {
		overview.TotalRecords++
		if rec.Delayed() {
			overview.DelayedRecords++
			if rec.DelayMinutes > overview.MaxDelayOverall {
				overview.MaxDelayOverall = rec.DelayMinutes
			}
		}
	}
	return overview
}

// Monthly restricts the snapshot to dates with the given YYYY-MM prefix and
// rolls it up per student and per day.
func Monthly(snapshot models.RecordSnapshot, month string) *models.MonthlyStats {
	scoped := models.RecordSnapshot{}
	for id, days := range snapshot {
		for date, rec := range days {
			if !strings.HasPrefix(date, month) {
				continue
			}
			if _, ok := scoped[id]; !ok {
				scoped[id] = map[string]models.AttendanceRecord{}
			}
			scoped[id][date] = rec
		}
	}

	return &models.MonthlyStats{
		Month:    month,
		Students: PerStudentTotals(scoped),
		Days:     Daily(scoped),
	}
}

// Daily groups delayed records per date, ascending.
func Daily(snapshot models.RecordSnapshot) []models.DailySummary {
	byDate := map[string]*models.DailySummary{}
	for _, rec := range store.Flatten(snapshot) {
		if !rec.Delayed() {
			continue
		}
		day, ok := byDate[rec.Date]
		if !ok {
			day = &models.DailySummary{Date: rec.Date}
			byDate[rec.Date] = day
		}
		day.DelayedCount++
		day.TotalMinutes += rec.DelayMinutes
	}

	out := make([]models.DailySummary, 0, len(byDate))
	for _, day := range byDate {
		out = append(out, *day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Weekdays groups delayed records by day of week, Sunday first. Dates that
// fail to parse are skipped.
func Weekdays(snapshot models.RecordSnapshot) []models.WeekdaySummary {
	counts := map[time.Weekday]*models.WeekdaySummary{}
	for _, rec := range store.Flatten(snapshot) {
		if !rec.Delayed() {
			continue
		}
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			continue
		}
		wd := date.Weekday()
		summary, ok := counts[wd]
		if !ok {
			summary = &models.WeekdaySummary{Weekday: weekdayNames[wd]}
			counts[wd] = summary
		}
		summary.DelayedCount++
		summary.TotalMinutes += rec.DelayMinutes
	}

	// Week order starting Sunday, matching the school week.
	out := make([]models.WeekdaySummary, 0, len(counts))
	for i := 0; i < 7; i++ {
		if summary, ok := counts[time.Weekday(i)]; ok {
			out = append(out, *summary)
		}
	}
	return out
}

// Classes joins delayed records against roster metadata and groups by
// grade/section, unmatched students falling into the unspecified bucket.
func Classes(snapshot models.RecordSnapshot, roster models.RosterSnapshot) []models.ClassSummary {
	byClass := map[string]*models.ClassSummary{}
	for _, rec := range store.Flatten(snapshot) {
		if !rec.Delayed() {
			continue
		}
		className := models.UnspecifiedLabel
		section := models.UnspecifiedLabel
		if meta, ok := roster[rec.StudentID]; ok {
			className = meta.ClassName
			section = meta.Section
		}
		key := className + "\x00" + section
		summary, ok := byClass[key]
		if !ok {
			summary = &models.ClassSummary{ClassName: className, Section: section}
			byClass[key] = summary
		}
		summary.DelayedCount++
		summary.TotalMinutes += rec.DelayMinutes
	}

	out := make([]models.ClassSummary, 0, len(byClass))
	for _, summary := range byClass {
		out = append(out, *summary)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ClassName != out[j].ClassName {
			return out[i].ClassName < out[j].ClassName
		}
		return out[i].Section < out[j].Section
	})
	return out
}
