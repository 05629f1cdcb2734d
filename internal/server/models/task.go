package models

import (
	"fmt"
	"strings"
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Priorities lists every priority in ascending order.
var Priorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type TaskStatus string

const (
	StatusNotStarted TaskStatus = "Not Started"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// Statuses lists every status in lifecycle order.
var Statuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "Uncategorized"

// Task is a personal to-do item. OwnerID is set once at creation and never
// changes.
type Task struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	Category    string       `json:"category"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// ApplyDefaults fills priority, status and category when they are empty.
func (t *Task) ApplyDefaults() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusNotStarted
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
}

// Validate checks the invariants every stored task must satisfy.
func (t *Task) Validate() error {
	if t.OwnerID == "" {
		return fmt.Errorf("owner is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("unknown priority %q", t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("unknown status %q", t.Status)
	}
	return nil
}
