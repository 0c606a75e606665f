package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"taskmanager/internal/models"
)

func TestPatchFields(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	got := patchFields(models.SetCompleted(true), now)
	want := bson.D{
		{Key: "completed", Value: true},
		{Key: "updated_at", Value: now},
	}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	title := "Renamed"
	got = patchFields(models.TaskPatch{Title: &title}, now)
	if len(got) != 2 || got[0].Key != "title" || got[0].Value != "Renamed" {
		t.Errorf("unexpected title patch %v", got)
	}
}

// TestMongoStore_Contract runs against a live server when TASKS_TEST_MONGO_URI is set.
func TestMongoStore_Contract(t *testing.T) {
	uri := os.Getenv("TASKS_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TASKS_TEST_MONGO_URI not set")
	}

	runStoreContract(t, func(t *testing.T) Store {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		collection := fmt.Sprintf("tasks_test_%d", time.Now().UnixNano())
		s, err := NewMongoStore(ctx, uri, "task-manager-test", collection)
		if err != nil {
			t.Fatalf("failed to connect: %v", err)
		}
		t.Cleanup(func() {
			s.coll.Drop(context.Background())
			s.Close()
		})
		return s
	})
}
