package domain

import "time"

// TaskStatus is the task lifecycle state.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task represents a unit of work within a project. ExpectedFinish is an
// optional target instant used only for due-date classification; CompletedAt
// is set when the task transitions to done and cleared when it leaves done.
type Task struct {
	ID             string     `json:"id"`
	OrgID          string     `json:"org_id"`
	ProjectID      string     `json:"project_id"`
	Description    string     `json:"description"`
	AssigneeID     *string    `json:"assignee_id,omitempty"`
	Status         TaskStatus `json:"status"`
	ExpectedFinish *time.Time `json:"expected_finish,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

func (t *Task) InProgress() bool {
	return t != nil && t.Status == StatusInProgress
}

// IsAssignee reports whether userID is the task's current assignee.
func (t *Task) IsAssignee(userID string) bool {
	return t != nil && t.AssigneeID != nil && *t.AssigneeID == userID
}

// CompletedOn reports whether the task was completed within the local day
// containing the reference instant.
func (t *Task) CompletedOn(reference time.Time) bool {
	if t == nil || t.CompletedAt == nil {
		return false
	}
	start, end := DayBounds(reference)
	ts := *t.CompletedAt
	return !ts.Before(start) && !ts.After(end)
}
