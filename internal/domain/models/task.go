package models

import "time"

// TaskStatus is the task progress status.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

// Valid reports whether the status is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	default:
		return false
	}
}

// Task is a unit of work inside a project. AssignedBy is always the id of
// the principal that created the task. Comments is a free-text progress note,
// distinct from the Comment entity.
type Task struct {
	ID             string     `json:"id"`
	Project        string     `json:"project"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	AssignedTo     *string    `json:"assignedTo,omitempty"`
	AssignedBy     string     `json:"assignedBy"`
	Status         TaskStatus `json:"status"`
	Priority       string     `json:"priority,omitempty"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	Comments       string     `json:"comments,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// IsAssignee reports whether userID is the task's assignee.
func (t *Task) IsAssignee(userID string) bool {
	return t.AssignedTo != nil && *t.AssignedTo == userID
}
