package store

import (
	"context"
	"errors"
	"testing"

	"taskmanager/internal/models"
)

// runStoreContract exercises the behaviour every Store backend must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("list empty", func(t *testing.T) {
		s := newStore(t)

		tasks, err := s.ListTasks(context.Background())
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("expected empty non-nil list, got %#v", tasks)
		}
	})

	t.Run("create defaults completed to false", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := &models.Task{Title: "Buy milk"}
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}

		if task.ID == "" {
			t.Error("expected task ID to be set")
		}
		if task.Completed {
			t.Error("expected completed to default to false")
		}
		if task.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}

		got, err := s.GetTask(ctx, task.ID)
		if err != nil {
			t.Fatalf("GetTask failed: %v", err)
		}
		if got.Title != "Buy milk" || got.Completed {
			t.Errorf("unexpected stored task %+v", got)
		}
	})

	t.Run("list preserves insertion order", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		for _, title := range []string{"First", "Second", "Third"} {
			if err := s.CreateTask(ctx, &models.Task{Title: title}); err != nil {
				t.Fatalf("CreateTask failed: %v", err)
			}
		}

		got, err := s.ListTasks(ctx)
		if err != nil {
			t.Fatalf("ListTasks failed: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 tasks, got %d", len(got))
		}

		expectedOrder := []string{"First", "Second", "Third"}
		for i, title := range expectedOrder {
			if got[i].Title != title {
				t.Errorf("position %d: expected %q, got %q", i, title, got[i].Title)
			}
		}
	})

	t.Run("update applies only patched fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := &models.Task{Title: "Original"}
		s.CreateTask(ctx, task)

		updated, err := s.UpdateTask(ctx, task.ID, models.SetCompleted(true))
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if !updated.Completed {
			t.Error("expected task to be completed")
		}
		if updated.Title != "Original" {
			t.Errorf("expected title to be untouched, got %q", updated.Title)
		}
		if updated.ID != task.ID {
			t.Errorf("expected id %q, got %q", task.ID, updated.ID)
		}

		title := "Renamed"
		updated, err = s.UpdateTask(ctx, task.ID, models.TaskPatch{Title: &title})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if updated.Title != "Renamed" || !updated.Completed {
			t.Errorf("unexpected task after title update %+v", updated)
		}
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		if err := s.CreateTask(ctx, &models.Task{Title: "  "}); err == nil {
			t.Fatal("expected error for blank title")
		}

		tasks, _ := s.ListTasks(ctx)
		if len(tasks) != 0 {
			t.Errorf("expected nothing persisted, got %+v", tasks)
		}
	})

	t.Run("empty patch leaves task untouched", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		task := &models.Task{Title: "Original"}
		if err := s.CreateTask(ctx, task); err != nil {
			t.Fatalf("CreateTask failed: %v", err)
		}

		got, err := s.UpdateTask(ctx, task.ID, models.TaskPatch{})
		if err != nil {
			t.Fatalf("UpdateTask failed: %v", err)
		}
		if got.Title != "Original" || got.Completed {
			t.Errorf("unexpected task %+v", got)
		}
		if !got.UpdatedAt.Equal(task.UpdatedAt) {
			t.Errorf("expected updated_at %v to be kept, got %v", task.UpdatedAt, got.UpdatedAt)
		}
	})

	t.Run("update missing returns ErrNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.UpdateTask(context.Background(), "does-not-exist", models.SetCompleted(true))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("get missing returns ErrNotFound", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetTask(context.Background(), "does-not-exist")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		keep := &models.Task{Title: "Keep"}
		drop := &models.Task{Title: "Drop"}
		s.CreateTask(ctx, keep)
		s.CreateTask(ctx, drop)

		if err := s.DeleteTask(ctx, drop.ID); err != nil {
			t.Fatalf("DeleteTask failed: %v", err)
		}
		if err := s.DeleteTask(ctx, drop.ID); err != nil {
			t.Fatalf("second DeleteTask failed: %v", err)
		}

		tasks, _ := s.ListTasks(ctx)
		if len(tasks) != 1 || tasks[0].ID != keep.ID {
			t.Errorf("expected only %q to remain, got %+v", keep.ID, tasks)
		}
	})
}
