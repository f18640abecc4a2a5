package ritual

import (
	"errors"
	"testing"

	"capillaire-ai/internal/storage"
)

func TestChecklist(t *testing.T) {
	t.Run("SeedsDefaultsOnFirstUse", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		checklist := NewChecklist(kv)

		items, err := checklist.Items()
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if len(items) != 4 {
			t.Fatalf("Expected 4 default rituals, got %d", len(items))
		}
		for _, item := range items {
			if item.Completed {
				t.Errorf("Expected ritual '%s' to start not completed", item.Text)
			}
		}

		if _, err := kv.Get("capillaire_rituals"); err != nil {
			t.Error("Expected defaults to be persisted on seeding")
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		checklist := NewChecklist(storage.NewMemoryStore())

		items, err := checklist.Toggle("2")
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		for _, item := range items {
			if item.ID == "2" && !item.Completed {
				t.Error("Expected ritual 2 to be completed")
			}
			if item.ID != "2" && item.Completed {
				t.Errorf("Expected ritual %s to be untouched", item.ID)
			}
		}

		// Toggle back.
		items, _ = checklist.Toggle("2")
		for _, item := range items {
			if item.Completed {
				t.Errorf("Expected ritual %s to be reset", item.ID)
			}
		}
	})

	t.Run("ToggleUnknownID", func(t *testing.T) {
		checklist := NewChecklist(storage.NewMemoryStore())
		if _, err := checklist.Toggle("99"); !errors.Is(err, ErrUnknownRitual) {
			t.Errorf("Expected ErrUnknownRitual, got %v", err)
		}
	})

	t.Run("SurvivesReload", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		first := NewChecklist(kv)
		_, _ = first.Toggle("1")

		items, err := NewChecklist(kv).Items()
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if !items[0].Completed {
			t.Error("Expected toggled ritual to survive a reload")
		}
	})

	t.Run("CorruptValueReseeds", func(t *testing.T) {
		kv := storage.NewMemoryStore()
		_ = kv.Set("capillaire_rituals", "][ broken")

		items, err := NewChecklist(kv).Items()
		if err != nil {
			t.Fatalf("Items failed: %v", err)
		}
		if len(items) != 4 {
			t.Errorf("Expected reseeded defaults, got %d items", len(items))
		}
	})
}
