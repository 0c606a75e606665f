// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"taskmanager/internal/models"
)

// ErrNotFound is returned when a task id is unknown to the fake.
var ErrNotFound = errors.New("not found")

// FakeAPI is an in-memory implementation of the remote task API for testing.
type FakeAPI struct {
	mu     sync.Mutex
	tasks  []models.Task
	nextID int

	// Error injection for testing
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error

	// BeforeUpdate, if set, runs before an update is applied. Tests use it
	// to hold a request in flight.
	BeforeUpdate func(id string)

	Calls []string
}

// NewFakeAPI creates a FakeAPI seeded with tasks.
func NewFakeAPI(tasks ...models.Task) *FakeAPI {
	return &FakeAPI{
		tasks:  append([]models.Task(nil), tasks...),
		nextID: len(tasks) + 1,
	}
}

// ServerTasks returns a copy of the tasks the fake server holds.
func (f *FakeAPI) ServerTasks() []models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Task(nil), f.tasks...)
}

func (f *FakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// List implements taskstore.API.
func (f *FakeAPI) List(ctx context.Context) ([]models.Task, error) {
	f.record("list")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.ServerTasks(), nil
}

// Create implements taskstore.API.
func (f *FakeAPI) Create(ctx context.Context, task models.NewTask) (*models.Task, error) {
	f.record("create")
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	created := models.Task{
		ID:        fmt.Sprintf("%d", f.nextID),
		Title:     task.Title,
		Completed: task.Completed,
	}
	f.nextID++
	f.tasks = append(f.tasks, created)
	return &created, nil
}

// Update implements taskstore.API.
func (f *FakeAPI) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	f.record("update " + id)
	if f.BeforeUpdate != nil {
		f.BeforeUpdate(id)
	}
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			patch.Apply(&f.tasks[i])
			updated := f.tasks[i]
			return &updated, nil
		}
	}
	return nil, ErrNotFound
}

// Delete implements taskstore.API.
func (f *FakeAPI) Delete(ctx context.Context, id string) error {
	f.record("delete " + id)
	if f.DeleteErr != nil {
		return f.DeleteErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	kept := f.tasks[:0]
	for _, t := range f.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	f.tasks = kept
	return nil
}
