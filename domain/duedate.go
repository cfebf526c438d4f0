package domain

import (
	"sort"
	"time"
)

// DueBucket classifies a task relative to a fixed reference instant.
type DueBucket string

const (
	DueNone     DueBucket = "none"
	DueOverdue  DueBucket = "overdue"
	DueToday    DueBucket = "due_today"
	DueThisWeek DueBucket = "due_this_week"
)

// ClassifyDue places a task in exactly one due bucket relative to now. The
// function is pure: callers capture now once per computation so that every
// task in a batch is compared against the same instant.
//
// A done task is never overdue or due, whatever its expected finish. An
// expected finish strictly before now is overdue; equality is not. The
// due-today window is the full local day containing now, boundaries
// inclusive, so an expected finish exactly at end of day is due today rather
// than due this week.
func ClassifyDue(now time.Time, task *Task) DueBucket {
	if task == nil || task.IsDone() || task.ExpectedFinish == nil {
		return DueNone
	}
	finish := *task.ExpectedFinish
	if finish.Before(now) {
		return DueOverdue
	}
	start, end := DayBounds(now)
	if !finish.Before(start) && !finish.After(end) {
		return DueToday
	}
	if finish.After(end) && !finish.After(now.AddDate(0, 0, 7)) {
		return DueThisWeek
	}
	return DueNone
}

// DuePartition groups tasks by due bucket. InProgress is an independent axis:
// an in-progress task also appears in its due bucket, so a task can be both
// in progress and overdue.
type DuePartition struct {
	Overdue     []Task `json:"overdue"`
	DueToday    []Task `json:"due_today"`
	DueThisWeek []Task `json:"due_this_week"`
	InProgress  []Task `json:"in_progress"`
	Completed   []Task `json:"completed"`
}

// PartitionByDue classifies every task against the same reference instant.
func PartitionByDue(now time.Time, tasks []Task) DuePartition {
	var p DuePartition
	for _, t := range tasks {
		switch ClassifyDue(now, &t) {
		case DueOverdue:
			p.Overdue = append(p.Overdue, t)
		case DueToday:
			p.DueToday = append(p.DueToday, t)
		case DueThisWeek:
			p.DueThisWeek = append(p.DueThisWeek, t)
		}
		if t.InProgress() {
			p.InProgress = append(p.InProgress, t)
		}
		if t.IsDone() {
			p.Completed = append(p.Completed, t)
		}
	}
	return p
}

// SortByExpectedFinish orders tasks ascending by expected finish, with tasks
// lacking an expected finish sorted last.
func SortByExpectedFinish(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i].ExpectedFinish, tasks[j].ExpectedFinish
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}

// TopByExpectedFinish returns up to limit tasks in expected-finish order.
func TopByExpectedFinish(tasks []Task, limit int) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	SortByExpectedFinish(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DayBounds returns the inclusive start and end instants of the local day
// containing the reference.
func DayBounds(reference time.Time) (time.Time, time.Time) {
	year, month, day := reference.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, reference.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return start, end
}
