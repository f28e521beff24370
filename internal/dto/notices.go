package dto

import "github.com/haitham-dev/hudur-api/internal/models"

// NoticeCandidatesRequest optionally overrides the configured threshold of
// un-notified delayed records.
type NoticeCandidatesRequest struct {
	Threshold int `form:"threshold" binding:"omitempty,min=1"`
}

// NoticeCandidatesResponse lists students due a parent notice.
type NoticeCandidatesResponse struct {
	Threshold  int                      `json:"threshold"`
	Candidates []models.NoticeCandidate `json:"candidates"`
}

// NoticeAckRequest marks the given dates of one student as notified.
// StudentID accepts any 10-digit id the log grammar admits, not just
// national ids, so every stored record stays acknowledgeable.
type NoticeAckRequest struct {
	StudentID string   `json:"student_id" binding:"required,student_id"`
	Dates     []string `json:"dates" binding:"required,min=1,dive,datetime=2006-01-02"`
}

// NoticeAckResponse reports how many records were flipped.
type NoticeAckResponse struct {
	Updated int `json:"updated"`
}
