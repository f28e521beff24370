// Command ingest-preview parses attendance log files and roster workbooks
// locally and prints what an upload would ingest, without touching a running
// server. Useful when checking a new export format from the fingerprint
// device or the administration system.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/haitham-dev/hudur-api/internal/parser"
	"github.com/haitham-dev/hudur-api/pkg/arabic"
)

func main() {
	var (
		logPath     string
		rosterPath  string
		startTime   string
		defaultDate string
	)

	flag.StringVar(&logPath, "log", "", "Path to an attendance log text file")
	flag.StringVar(&rosterPath, "roster", "", "Path to a roster xlsx workbook")
	flag.StringVar(&startTime, "start", "07:15:00", "School day start time (HH:MM:SS)")
	flag.StringVar(&defaultDate, "date", time.Now().Format("2006-01-02"), "Fallback date when the file has none")
	flag.Parse()

	if logPath == "" && rosterPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if logPath != "" {
		previewLog(logPath, startTime, defaultDate)
	}
	if rosterPath != "" {
		previewRoster(rosterPath)
	}
}

func previewLog(path, startTime, defaultDate string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read log file: %v", err)
	}

	result := parser.NewAttendanceLogParser(startTime).Parse(string(raw), defaultDate, "")
	fmt.Printf("date: %s  records: %d  skipped lines: %d\n", result.Date, len(result.Records), result.SkippedLines)
	for _, rec := range result.Records {
		fmt.Printf("  %s  %-30s  %s  %s\n", rec.StudentID, rec.StudentName, rec.ArrivalTime, arabic.FormatDelay(rec.DelayMinutes))
	}
}

func previewRoster(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read workbook: %v", err)
	}

	entries, err := parser.NewRosterWorkbookParser().Parse(raw)
	if err != nil {
		log.Fatalf("parse workbook: %v", err)
	}

	synthetic := 0
	for _, entry := range entries {
		if entry.Synthetic() {
			synthetic++
		}
	}
	fmt.Printf("roster entries: %d  synthetic ids: %d\n", len(entries), synthetic)
	for _, entry := range entries {
		fmt.Printf("  %s  %-30s  %s / %s\n", entry.ID, entry.Name, entry.ClassName, entry.Section)
	}
}
