package models

// AttendanceRecord captures one observed arrival event for a student on a
// given day. ArrivalTime keeps the HH:MM:SS form the source log used and
// Date the ISO YYYY-MM-DD form; both double as map keys in the store.
type AttendanceRecord struct {
	StudentID         string `json:"student_id"`
	StudentName       string `json:"student_name"`
	ArrivalTime       string `json:"arrival_time"`
	DepartureRecorded bool   `json:"departure_recorded"`
	Date              string `json:"date"`
	DelayMinutes      int    `json:"delay_minutes"`
	Notified          bool   `json:"notified"`
}

// Delayed reports whether the record counts toward tardiness statistics.
func (r AttendanceRecord) Delayed() bool {
	return r.DelayMinutes > 0
}

// RecordSnapshot is the canonical nested shape of the record store:
// studentID -> date -> record. The two-level keying makes the
// one-record-per-(student, day) invariant a plain map membership test.
type RecordSnapshot map[string]map[string]AttendanceRecord
