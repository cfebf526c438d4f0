package domain

import "time"

// WorkLogStatus is the review state of a daily work log.
type WorkLogStatus string

const (
	WorkLogPending  WorkLogStatus = "pending"
	WorkLogApproved WorkLogStatus = "approved"
	WorkLogRejected WorkLogStatus = "rejected"
)

// WorkLog is a daily work report submitted by a member and reviewed by a
// supervisor. Only pending logs may be edited by their author.
type WorkLog struct {
	ID         string        `json:"id"`
	OrgID      string        `json:"org_id"`
	ProjectID  *string       `json:"project_id,omitempty"`
	AuthorID   string        `json:"author_id"`
	LogDate    time.Time     `json:"log_date"`
	Content    string        `json:"content"`
	Status     WorkLogStatus `json:"status"`
	ReviewerID *string       `json:"reviewer_id,omitempty"`
	ReviewNote string        `json:"review_note,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (w *WorkLog) IsPending() bool {
	return w != nil && w.Status == WorkLogPending
}
