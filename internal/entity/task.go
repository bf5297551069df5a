package entity

import "time"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusOnHold     TaskStatus = "on_hold"
	StatusCompleted  TaskStatus = "completed"
	StatusCancelled  TaskStatus = "cancelled"
)

// AllStatuses lists every task status in display order (used for tab counts).
var AllStatuses = []TaskStatus{
	StatusTodo,
	StatusInProgress,
	StatusOnHold,
	StatusCompleted,
	StatusCancelled,
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task mirrors the record owned by the backend service. The BFF never
// mutates a fetched task in place; a missing due_date means "no deadline".
type Task struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssignedTo  string       `json:"assigned_to"`
	CreatedBy   string       `json:"created_by,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	TimeLogged  int          `json:"time_logged,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
}

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Status      TaskStatus   `json:"status,omitempty"`
	Priority    TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	AssignedTo  string       `json:"assigned_to"`
	Tags        []string     `json:"tags,omitempty"`
}

// UpdateTaskRequest carries a partial update; nil fields are left untouched
// by the backend.
type UpdateTaskRequest struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Status      *TaskStatus   `json:"status,omitempty"`
	Priority    *TaskPriority `json:"priority,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	AssignedTo  *string       `json:"assigned_to,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (r *UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil &&
		r.Description == nil &&
		r.Status == nil &&
		r.Priority == nil &&
		r.DueDate == nil &&
		r.AssignedTo == nil &&
		r.Tags == nil
}
