package models

import (
	"errors"
	"strings"
	"time"
)

// Task represents a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTask is the payload accepted when creating a task.
// The persistence layer assigns the ID.
type NewTask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed,omitempty"`
}

// TaskPatch holds a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// Validate checks that the task has valid field values.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// Validate checks the creation payload.
func (n NewTask) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// Task builds the record to persist from the creation payload.
func (n NewTask) Task() *Task {
	return &Task{
		Title:     n.Title,
		Completed: n.Completed,
	}
}

// Validate checks the fields the patch sets.
func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("title is required")
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply copies the set fields of the patch onto the task.
func (p TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

// SetCompleted returns a patch that only changes the completion flag.
func SetCompleted(completed bool) TaskPatch {
	return TaskPatch{Completed: &completed}
}
