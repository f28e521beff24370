package models

import "strings"

// SyntheticIDPrefix marks roster entries whose national identifier could not
// be located on the sheet. Callers can detect degraded rows by prefix.
const SyntheticIDPrefix = "TMP-"

// UnspecifiedLabel is the placeholder grade/section used when a sheet lacks
// the corresponding marker.
const UnspecifiedLabel = "غير محدد"

// StudentMetadata is one roster entry linking a national identifier to a
// display name and grade/section labels.
type StudentMetadata struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassName string `json:"class_name"`
	Section   string `json:"section"`
}

// Synthetic reports whether the entry carries a placeholder identifier.
func (m StudentMetadata) Synthetic() bool {
	return strings.HasPrefix(m.ID, SyntheticIDPrefix)
}

// RosterSnapshot maps student id to the latest roster entry for that id.
type RosterSnapshot map[string]StudentMetadata
