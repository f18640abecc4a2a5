package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"capillaire-ai/internal/llm"
	"capillaire-ai/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "metrics_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	kv, err := storage.NewSQLiteStore(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	store, err := NewStore(kv.DB())
	if err != nil {
		t.Fatalf("Failed to create metrics store: %v", err)
	}
	return store
}

func TestStore(t *testing.T) {
	store := newTestStore(t)

	t.Run("RecordAndAggregate", func(t *testing.T) {
		metrics := []ExecutionMetric{
			{AgentName: "plan-generator", Model: "gemini-1.5-pro", PromptTokens: 200, CompletionTokens: 900, LatencyMS: 4000},
			{AgentName: "quick-tip", Model: "gemini-1.5-flash-8b", PromptTokens: 40, CompletionTokens: 60, LatencyMS: 300},
		}
		for _, m := range metrics {
			if err := store.Record(m); err != nil {
				t.Fatalf("Record failed: %v", err)
			}
		}

		usage, err := store.GetDailyUsage(7)
		if err != nil {
			t.Fatalf("GetDailyUsage failed: %v", err)
		}
		if len(usage) != 1 {
			t.Fatalf("Expected 1 day of usage, got %d", len(usage))
		}
		if usage[0].TotalPrompt != 240 {
			t.Errorf("Expected 240 prompt tokens, got %d", usage[0].TotalPrompt)
		}
		if usage[0].TotalCompletion != 960 {
			t.Errorf("Expected 960 completion tokens, got %d", usage[0].TotalCompletion)
		}
		if usage[0].TotalExecution != 2 {
			t.Errorf("Expected 2 executions, got %d", usage[0].TotalExecution)
		}
	})

	t.Run("RecordUsageSkipsEmpty", func(t *testing.T) {
		if err := store.RecordUsage("chat", llm.TokenUsage{}, time.Second); err != nil {
			t.Fatalf("RecordUsage failed: %v", err)
		}
		usage, _ := store.GetDailyUsage(7)
		if usage[0].TotalExecution != 2 {
			t.Errorf("Expected empty usage to be skipped, got %d executions", usage[0].TotalExecution)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		old := ExecutionMetric{
			AgentName: "plan-generator",
			Model:     "gemini-1.5-pro",
			Timestamp: time.Now().UTC().AddDate(0, 0, -60),
		}
		old.PromptTokens = 10
		if err := store.Record(old); err != nil {
			t.Fatalf("Record failed: %v", err)
		}

		removed, err := store.Cleanup(30)
		if err != nil {
			t.Fatalf("Cleanup failed: %v", err)
		}
		if removed != 1 {
			t.Errorf("Expected 1 removed record, got %d", removed)
		}
	})
}
