package domain

import "time"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

type Category string

const (
	CategoryPersonal  Category = "personal"
	CategoryWork      Category = "work"
	CategoryShopping  Category = "shopping"
	CategoryHealth    Category = "health"
	CategoryFinance   Category = "finance"
	CategoryEducation Category = "education"
	CategoryOther     Category = "other"
)

// Task mirrors the backend representation. The id and both timestamps are
// assigned server-side; clients treat them as read-only.
type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    Priority  `json:"priority"`
	Category    Category  `json:"category"`
	DueDate     *string   `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskStats is a server-derived aggregate. It is fetched fresh alongside the
// task list and never cached beyond one refresh cycle.
type TaskStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// CreateTaskInput carries a validated draft to the create endpoint. Optional
// fields are pointers so that empty values are omitted from the request body
// instead of being sent as empty strings.
type CreateTaskInput struct {
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Category    Category `json:"category,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
}

// UpdateTaskInput is a partial update; nil fields are left untouched by the
// server.
type UpdateTaskInput struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Category    *Category `json:"category,omitempty"`
	DueDate     *string   `json:"due_date,omitempty"`
}
