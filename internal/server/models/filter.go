package models

import "time"

// Bound is one end of a due-date range.
type Bound struct {
	At        time.Time
	Exclusive bool
}

func Inclusive(t time.Time) *Bound { return &Bound{At: t} }
func Exclusive(t time.Time) *Bound { return &Bound{At: t, Exclusive: true} }

// DueRange restricts tasks by due date. Either end may be nil. Tasks without
// a due date never match a DueRange.
type DueRange struct {
	From *Bound
	To   *Bound
}

// TaskFilter is the typed predicate the task store compiles into its query.
// Every non-nil criterion must hold (AND). Search matches title OR
// description, case-insensitively, as a literal substring.
type TaskFilter struct {
	Status    *TaskStatus
	StatusNot *TaskStatus
	Priority  *TaskPriority
	Category  *string
	Due       *DueRange
	Search    string
}

// IsZero reports whether the filter has no criterion.
func (f TaskFilter) IsZero() bool {
	return f.Status == nil && f.StatusNot == nil && f.Priority == nil &&
		f.Category == nil && f.Due == nil && f.Search == ""
}

// SortOrder selects how a scan is ordered.
type SortOrder int

const (
	// SortCreatedDesc lists newest tasks first.
	SortCreatedDesc SortOrder = iota
	// SortDueAsc lists by due date, earliest first, undated last.
	SortDueAsc
	// SortUpdatedDesc lists most recently modified first.
	SortUpdatedDesc
)

// TaskQuery is a filtered, ordered and optionally limited scan of one
// owner's tasks. Limit <= 0 means no limit.
type TaskQuery struct {
	Filter TaskFilter
	Sort   SortOrder
	Limit  int
}

// GroupField names a column tasks can be counted by.
type GroupField string

const (
	GroupByStatus   GroupField = "status"
	GroupByPriority GroupField = "priority"
)
