package domain

import "time"

// Reply is a progress update posted on a task by its assignee or a
// supervisor. A reply may carry a status transition that is applied to the
// task in the same operation.
type Reply struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"task_id"`
	AuthorID  string      `json:"author_id"`
	Message   string      `json:"message"`
	NewStatus *TaskStatus `json:"new_status,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (r *Reply) IsAuthor(userID string) bool {
	return r != nil && r.AuthorID == userID
}
