package parser

import (
	"regexp"
	"strings"

	"github.com/haitham-dev/hudur-api/internal/models"
)

var (
	lineRe = regexp.MustCompile(`(\d{10})\s+([^\d:]+)\s+(\d{2}:\d{2}:\d{2})`)
	dateRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
)

// boilerplatePhrases are header fragments from the source attendance sheet
// that occasionally bleed into the name capture group.
var boilerplatePhrases = []string{
	"لم يسجل خروج",
	"وقت الانصراف",
	"سجل المتأخرين",
	"الاسم",
	"رقم الهوية",
}

const minNameLength = 3

// noDepartureMarker appears on lines where no checkout was recorded.
const noDepartureMarker = "لم يسجل"

// LogParseResult carries the recognised records plus a diagnostics count of
// lines that did not survive the grammar. Skipping is deliberate policy, not
// an error: a wholly unrecognised file simply yields zero records.
type LogParseResult struct {
	Records      []models.AttendanceRecord
	SkippedLines int
	Date         string
}

// AttendanceLogParser extracts arrival observations from the raw text of a
// daily attendance log.
type AttendanceLogParser struct {
	startTime string
}

// NewAttendanceLogParser builds a parser computing delays against the given
// school-day start time (HH:MM:SS).
func NewAttendanceLogParser(startTime string) *AttendanceLogParser {
	return &AttendanceLogParser{startTime: startTime}
}

// Parse scans every line of rawText independently for the pattern
// <10-digit id> <name run> <HH:MM:SS>. A single embedded YYYY-MM-DD token
// anywhere in the text dates the whole batch; defaultDate is the fallback.
// startTime overrides the configured school-day start for this batch; pass
// "" to keep the default. Lines that fail the grammar, degrade to a
// too-short name after boilerplate cleanup, or carry a 00:00:00 arrival
// (absent) are skipped and counted.
func (p *AttendanceLogParser) Parse(rawText, defaultDate, startTime string) LogParseResult {
	date := defaultDate
	if m := dateRe.FindString(rawText); m != "" {
		date = m
	}
	if startTime == "" {
		startTime = p.startTime
	}

	result := LogParseResult{Date: date}
	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			result.SkippedLines++
			continue
		}

		name := cleanName(m[2])
		if len([]rune(name)) < minNameLength {
			result.SkippedLines++
			continue
		}

		arrival := m[3]
		// Midnight arrivals are how the source marks absentees.
		if arrival == "00:00:00" {
			result.SkippedLines++
			continue
		}

		result.Records = append(result.Records, models.AttendanceRecord{
			StudentID:         strings.TrimSpace(m[1]),
			StudentName:       name,
			ArrivalTime:       arrival,
			DepartureRecorded: !strings.Contains(line, noDepartureMarker),
			Date:              date,
			DelayMinutes:      DelayMinutes(arrival, startTime),
		})
	}

	return result
}

func cleanName(raw string) string {
	name := strings.TrimSpace(raw)
	for _, phrase := range boilerplatePhrases {
		name = strings.ReplaceAll(name, phrase, "")
	}
	return strings.TrimSpace(name)
}
