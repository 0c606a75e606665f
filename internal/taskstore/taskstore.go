// Package taskstore holds the client-side view of the task collection.
//
// A Store mirrors the server's tasks in memory and derives a filtered view
// from them. Mutating actions are pessimistic: each issues exactly one
// remote call and touches local state only after that call succeeds. On
// failure the error is logged and returned, and local state is unchanged.
//
// Actions may be called from several goroutines. Remote calls run outside
// the lock and their results are applied in whatever order they arrive;
// there is no per-task serialization or conflict detection, so two
// in-flight toggles of the same task can finish in either order.
package taskstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"taskmanager/internal/models"
)

// API is the remote task collection the store synchronizes with.
type API interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, task models.NewTask) (*models.Task, error)
	Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) error
}

// Snapshot is an immutable copy of the store state. Version increases
// with every committed change.
type Snapshot struct {
	Version uint64
	Tasks   []models.Task
	Filter  models.Filter
}

// FilteredTasks returns the tasks selected by the snapshot's filter.
func (s Snapshot) FilteredTasks() []models.Task {
	return s.Filter.Apply(s.Tasks)
}

// Store is the in-memory source of truth for task views.
type Store struct {
	api    API
	logger *log.Logger

	mu      sync.RWMutex
	tasks   []models.Task
	filter  models.Filter
	version uint64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int

	// notifyMu serializes delivery; delivered is the newest version sent.
	notifyMu  sync.Mutex
	delivered uint64
}

// New creates an empty store showing all tasks.
func New(api API, logger *log.Logger) *Store {
	return &Store{
		api:    api,
		logger: logger,
		tasks:  []models.Task{},
		filter: models.FilterAll,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Tasks returns a copy of the local task sequence.
func (s *Store) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task(nil), s.tasks...)
}

// Filter returns the current view filter.
func (s *Store) Filter() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// FilteredTasks is recomputed from the tasks and filter on every call.
func (s *Store) FilteredTasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Apply(s.tasks)
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Version: s.version,
		Tasks:   append([]models.Task(nil), s.tasks...),
		Filter:  s.filter,
	}
}

// Subscribe registers fn to be called with a snapshot after state changes.
// Snapshots reach subscribers in version order; when commits race, a
// snapshot already superseded by a delivered one is skipped, so the last
// notification always reflects the newest state. fn may read the store
// but must not call its actions synchronously.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// commit runs mutate under the write lock and, if it reports a change,
// bumps the version and notifies subscribers.
func (s *Store) commit(mutate func() bool) {
	s.mu.Lock()
	if !mutate() {
		s.mu.Unlock()
		return
	}
	s.version++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Store) notify(snap Snapshot) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if snap.Version <= s.delivered {
		return
	}
	s.delivered = snap.Version

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// FetchTasks replaces the local tasks with the server's list.
func (s *Store) FetchTasks(ctx context.Context) error {
	tasks, err := s.api.List(ctx)
	if err != nil {
		s.logger.Error("Error fetching tasks", "err", err)
		return fmt.Errorf("fetch tasks: %w", err)
	}

	s.commit(func() bool {
		s.tasks = append([]models.Task{}, tasks...)
		return true
	})
	return nil
}

// CreateTask creates a task remotely and appends the stored record.
func (s *Store) CreateTask(ctx context.Context, task models.NewTask) error {
	created, err := s.api.Create(ctx, task)
	if err != nil {
		s.logger.Error("Error creating task", "title", task.Title, "err", err)
		return fmt.Errorf("create task: %w", err)
	}

	s.commit(func() bool {
		s.tasks = append(s.tasks, *created)
		return true
	})
	return nil
}

// ToggleTaskCompletion flips task.Completed remotely and replaces the local
// entry with the same id in place. The result is dropped if no local entry
// matches.
func (s *Store) ToggleTaskCompletion(ctx context.Context, task models.Task) error {
	updated, err := s.api.Update(ctx, task.ID, models.SetCompleted(!task.Completed))
	if err != nil {
		s.logger.Error("Error toggling task completion", "id", task.ID, "err", err)
		return fmt.Errorf("toggle task %s: %w", task.ID, err)
	}

	s.commit(func() bool {
		for i := range s.tasks {
			if s.tasks[i].ID == task.ID {
				s.tasks[i] = *updated
				return true
			}
		}
		s.logger.Debug("toggled task no longer held locally", "id", task.ID)
		return false
	})
	return nil
}

// RemoveTask deletes a task remotely and drops every local entry with id.
func (s *Store) RemoveTask(ctx context.Context, id string) error {
	if err := s.api.Delete(ctx, id); err != nil {
		s.logger.Error("Error deleting task", "id", id, "err", err)
		return fmt.Errorf("remove task %s: %w", id, err)
	}

	s.commit(func() bool {
		kept := make([]models.Task, 0, len(s.tasks))
		for _, t := range s.tasks {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		changed := len(kept) != len(s.tasks)
		s.tasks = kept
		return changed
	})
	return nil
}

// SetFilter changes the view filter. It never touches the task sequence.
func (s *Store) SetFilter(filter models.Filter) {
	s.commit(func() bool {
		changed := s.filter != filter
		s.filter = filter
		return changed
	})
}
