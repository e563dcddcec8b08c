package domain

import "strings"

// FilterAll is the sentinel value that bypasses a filter dimension.
const FilterAll = "all"

const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// TaskFilter is the client-side view predicate. The zero value with
// Priority/Category/Status set to FilterAll matches everything.
type TaskFilter struct {
	Search   string
	Priority string
	Category string
	Status   string
}

func NewTaskFilter() TaskFilter {
	return TaskFilter{Priority: FilterAll, Category: FilterAll, Status: FilterAll}
}

func (f TaskFilter) Matches(t Task) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		title := strings.ToLower(t.Title)
		var desc string
		if t.Description != nil {
			desc = strings.ToLower(*t.Description)
		}
		if !strings.Contains(title, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if f.Priority != "" && f.Priority != FilterAll && string(t.Priority) != f.Priority {
		return false
	}
	if f.Category != "" && f.Category != FilterAll && string(t.Category) != f.Category {
		return false
	}
	switch f.Status {
	case "", FilterAll:
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	case StatusPending:
		if t.Completed {
			return false
		}
	}
	return true
}

// StudentFilter matches on a case-insensitive substring of name or email.
type StudentFilter struct {
	Search string
}

func (f StudentFilter) Matches(s Student) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s.Name), q) ||
		strings.Contains(strings.ToLower(s.Email), q)
}
