package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/haitham-dev/hudur-api/internal/models"
)

// Marker substrings used by position-free column discovery. Exported
// spreadsheets from the administration system carry no fixed schema, so the
// parser locates these tokens instead of trusting offsets.
const (
	gradeMarker      = "الصف"
	sectionMarker    = "الفصل"
	nameHeaderMarker = "اسم الطالب"
)

// nationalIDRe matches the expected identifier shape: ten digits with a
// leading 1 or 2.
var nationalIDRe = regexp.MustCompile(`^[12]\d{9}$`)

var numericCellRe = regexp.MustCompile(`^\d+$`)

const (
	gradeSearchRows = 10
	minSheetRows    = 3
)

// SheetLayout is the outcome of discovery pass one: where the data lives on
// a sheet and which labels apply to every student row on it.
type SheetLayout struct {
	GradeLabel   string
	SectionLabel string
	HeaderRow    int
	NameColumn   int
}

// LayoutDiscoverer locates the grade/section labels and the header row of a
// roster sheet. Alternate export formats can be supported by swapping this
// strategy without touching extraction.
type LayoutDiscoverer interface {
	Discover(rows [][]string) (SheetLayout, bool)
}

// markerLayoutDiscoverer discovers layout by scanning for known Arabic
// marker substrings.
type markerLayoutDiscoverer struct{}

func (markerLayoutDiscoverer) Discover(rows [][]string) (SheetLayout, bool) {
	layout := SheetLayout{
		GradeLabel:   models.UnspecifiedLabel,
		SectionLabel: models.UnspecifiedLabel,
		HeaderRow:    -1,
		NameColumn:   -1,
	}

	limit := gradeSearchRows
	if len(rows) < limit {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if strings.Contains(cell, gradeMarker) {
				layout.GradeLabel = cleanGradeLabel(cell)
				break
			}
		}
		if layout.GradeLabel != models.UnspecifiedLabel {
			break
		}
	}

	for _, row := range rows {
		if !rowContains(row, sectionMarker) {
			continue
		}
		for _, cell := range row {
			trimmed := strings.TrimSpace(cell)
			if numericCellRe.MatchString(trimmed) {
				layout.SectionLabel = trimmed
				break
			}
		}
		break
	}

	for i, row := range rows {
		for j, cell := range row {
			if strings.Contains(cell, nameHeaderMarker) {
				layout.HeaderRow = i
				layout.NameColumn = j
				break
			}
		}
		if layout.HeaderRow >= 0 {
			break
		}
	}

	return layout, layout.HeaderRow >= 0
}

func cleanGradeLabel(cell string) string {
	label := strings.TrimSpace(cell)
	label = strings.TrimPrefix(label, gradeMarker)
	label = strings.Trim(label, " :-/،")
	if label == "" {
		return models.UnspecifiedLabel
	}
	return label
}

func rowContains(row []string, marker string) bool {
	for _, cell := range row {
		if strings.Contains(cell, marker) {
			return true
		}
	}
	return false
}

// RosterWorkbookParser extracts student roster entries from every sheet of a
// multi-sheet workbook.
type RosterWorkbookParser struct {
	discoverer LayoutDiscoverer
}

// NewRosterWorkbookParser builds a parser with the default marker-based
// layout discovery.
func NewRosterWorkbookParser() *RosterWorkbookParser {
	return &RosterWorkbookParser{discoverer: markerLayoutDiscoverer{}}
}

// NewRosterWorkbookParserWithDiscoverer overrides the layout strategy.
func NewRosterWorkbookParserWithDiscoverer(d LayoutDiscoverer) *RosterWorkbookParser {
	return &RosterWorkbookParser{discoverer: d}
}

// Parse opens xlsx bytes and returns the concatenated, (id, name)-deduped
// entries of all sheets. Sheets that are too short or lack a recognisable
// header contribute nothing; an overall empty result is the caller's
// "nothing recognised" signal.
func (p *RosterWorkbookParser) Parse(data []byte) ([]models.StudentMetadata, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close() //nolint:errcheck

	var all []models.StudentMetadata
	seen := make(map[string]struct{})

	for sheetIdx, sheetName := range file.GetSheetList() {
		rows, err := file.GetRows(sheetName)
		if err != nil {
			continue
		}
		for _, entry := range p.parseSheet(rows, sheetIdx) {
			key := entry.ID + "\x00" + entry.Name
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			all = append(all, entry)
		}
	}

	return all, nil
}

// ParseSheet runs discovery and extraction over a single sheet grid. Exposed
// for alternate ingestion paths that already hold cell data.
func (p *RosterWorkbookParser) ParseSheet(rows [][]string, sheetIdx int) []models.StudentMetadata {
	return p.parseSheet(rows, sheetIdx)
}

func (p *RosterWorkbookParser) parseSheet(rows [][]string, sheetIdx int) []models.StudentMetadata {
	if len(rows) < minSheetRows {
		return nil
	}

	layout, ok := p.discoverer.Discover(rows)
	if !ok {
		return nil
	}

	var entries []models.StudentMetadata
	for rowIdx := layout.HeaderRow + 1; rowIdx < len(rows); rowIdx++ {
		row := rows[rowIdx]
		name := strings.TrimSpace(cellAt(row, layout.NameColumn))
		if len([]rune(name)) < minNameLength || strings.Contains(name, nameHeaderMarker) {
			// Empty rows and stray repeated headers mid-sheet.
			continue
		}

		id := findNationalID(row)
		if id == "" {
			// Deterministic placeholder keyed by position, so the same
			// workbook re-uploaded maps to the same synthetic ids.
			id = fmt.Sprintf("%s%d-%d", models.SyntheticIDPrefix, sheetIdx, rowIdx)
		}

		entries = append(entries, models.StudentMetadata{
			ID:        id,
			Name:      name,
			ClassName: layout.GradeLabel,
			Section:   layout.SectionLabel,
		})
	}

	return entries
}

func findNationalID(row []string) string {
	for _, cell := range row {
		trimmed := strings.TrimSpace(cell)
		if nationalIDRe.MatchString(trimmed) {
			return trimmed
		}
	}
	return ""
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
