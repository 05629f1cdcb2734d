package models

import (
	"fmt"
	"strings"
	"time"
)

// Optional marks a field as present or absent in a partial update. The zero
// value is absent, so a TaskPatch{} changes nothing.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// TaskPatch lists the fields an update may touch. Unset fields keep their
// stored value; a set field is written even when its value is the zero value,
// so a category can be cleared to "" and DueDate set to nil removes the date.
type TaskPatch struct {
	Title       Optional[string]
	Description Optional[string]
	Priority    Optional[TaskPriority]
	Status      Optional[TaskStatus]
	DueDate     Optional[*time.Time]
	Category    Optional[string]
}

// Empty reports whether the patch sets no field at all. Updating with an
// empty patch leaves the task, UpdatedAt included, as it is.
func (p TaskPatch) Empty() bool {
	return !p.Title.Set && !p.Description.Set && !p.Priority.Set &&
		!p.Status.Set && !p.DueDate.Set && !p.Category.Set
}

// Validate rejects values no stored task may hold.
func (p TaskPatch) Validate() error {
	if p.Title.Set && strings.TrimSpace(p.Title.Value) == "" {
		return fmt.Errorf("title must not be empty")
	}
	if p.Priority.Set && !p.Priority.Value.Valid() {
		return fmt.Errorf("unknown priority %q", p.Priority.Value)
	}
	if p.Status.Set && !p.Status.Value.Valid() {
		return fmt.Errorf("unknown status %q", p.Status.Value)
	}
	return nil
}
