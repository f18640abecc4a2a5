package plan

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"capillaire-ai/internal/storage"
)

func testPlan() *Plan {
	tasks := make([]DayTask, Length)
	for i := range tasks {
		tasks[i] = DayTask{
			Day:         i + 1,
			Title:       "Tarefa",
			Category:    CategoryHydration,
			Description: "Aplicar",
		}
	}
	return &Plan{
		ID:        "plan-1",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Diagnosis: testDiagnosis(),
		Summary:   "Plano",
		Tasks:     tasks,
	}
}

func TestStore(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		if store.Current() != nil {
			t.Error("Expected no current plan in an empty store")
		}
	})

	t.Run("CommitAndReload", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		store := NewStore(kv)
		if err := store.Commit(testPlan()); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		// A fresh store over the same KV must see the committed plan.
		reloaded := NewStore(kv).Current()
		if reloaded == nil {
			t.Fatal("Expected the committed plan after reload")
		}
		if !reflect.DeepEqual(reloaded, testPlan()) {
			t.Error("Reloaded plan differs from the committed plan")
		}
	})

	t.Run("CommitIdempotent", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		if err := store.Commit(testPlan()); err != nil {
			t.Fatalf("First commit failed: %v", err)
		}
		if err := store.Commit(testPlan()); err != nil {
			t.Fatalf("Re-committing the same plan failed: %v", err)
		}
		if !reflect.DeepEqual(store.Current(), testPlan()) {
			t.Error("Plan changed under idempotent re-commit")
		}
	})

	t.Run("ToggleIsInvolution", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		_ = store.Commit(testPlan())

		original := store.Current()

		once, err := store.ToggleTask(7)
		if err != nil {
			t.Fatalf("First toggle failed: %v", err)
		}
		task, _ := once.Task(7)
		if !task.Completed {
			t.Error("Expected day 7 to be completed after first toggle")
		}

		twice, err := store.ToggleTask(7)
		if err != nil {
			t.Fatalf("Second toggle failed: %v", err)
		}
		if !reflect.DeepEqual(twice, original) {
			t.Error("Toggling twice did not restore the original plan")
		}
	})

	t.Run("ToggleLeavesOtherFieldsUntouched", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		_ = store.Commit(testPlan())

		updated, err := store.ToggleTask(3)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}

		expected := testPlan()
		expected.Tasks[2].Completed = true
		if !reflect.DeepEqual(updated, expected) {
			t.Error("Toggle changed more than the target task's Completed flag")
		}
	})

	t.Run("ToggleInvalidDay", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		store := NewStore(kv)
		_ = store.Commit(testPlan())

		before, _ := kv.Get("capillaire_plan")

		_, err := store.ToggleTask(31)
		var dayErr *InvalidDayError
		if !errors.As(err, &dayErr) {
			t.Fatalf("Expected InvalidDayError, got %v", err)
		}
		if dayErr.Day != 31 {
			t.Errorf("Expected day 31 in error, got %d", dayErr.Day)
		}

		after, _ := kv.Get("capillaire_plan")
		if before != after {
			t.Error("Expected persisted plan to be byte-for-byte unchanged")
		}
	})

	t.Run("ToggleWithoutPlan", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		if _, err := store.ToggleTask(1); !errors.Is(err, ErrNoActivePlan) {
			t.Errorf("Expected ErrNoActivePlan, got %v", err)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		store := NewStore(kv)
		_ = store.Commit(testPlan())

		if err := store.Clear(); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if store.Current() != nil {
			t.Error("Expected no current plan after Clear")
		}
		if _, err := kv.Get("capillaire_plan"); !errors.Is(err, storage.ErrNotFound) {
			t.Error("Expected persisted plan to be removed")
		}
	})

	t.Run("CorruptStoredValue", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		_ = kv.Set("capillaire_plan", "{not valid json")

		store := NewStore(kv)
		if store.Current() != nil {
			t.Error("Expected a corrupt stored plan to be treated as absent")
		}
	})

	t.Run("CurrentReturnsCopy", func(t *testing.T) {
		store := NewStore(storage.NewMemoryStore())
		_ = store.Commit(testPlan())

		leaked := store.Current()
		leaked.Tasks[0].Completed = true

		task, _ := store.Current().Task(1)
		if task.Completed {
			t.Error("Mutating a returned plan leaked into the canonical plan")
		}
	})
}

func TestStoredPlanLayout(t *testing.T) {
	// The persisted document keeps the original camelCase field names so an
	// existing stored plan survives upgrades.
	kv := storage.NewMemoryStore()
	store := NewStore(kv)
	_ = store.Commit(testPlan())

	raw, err := kv.Get("capillaire_plan")
	if err != nil {
		t.Fatalf("Expected a stored plan document: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("Stored plan is not a JSON object: %v", err)
	}
	for _, field := range []string{"id", "createdAt", "diagnosis", "summary", "tasks"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("Stored plan is missing field '%s'", field)
		}
	}
}
