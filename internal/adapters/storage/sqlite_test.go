package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}
}

func TestTaskRepository_SaveAndFind(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	t.Run("save new task", func(t *testing.T) {
		task, _ := domain.NewTask("Test Task", 3)
		err := repo.Save(ctx, task)
		if err != nil {
			t.Errorf("Save() error = %v", err)
		}
	})

	t.Run("find by id", func(t *testing.T) {
		task, _ := domain.NewTask("Find Me", 2)
		err := repo.Save(ctx, task)
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Errorf("FindByID() error = %v", err)
		}
		if found == nil {
			t.Fatal("FindByID() returned nil")
		}
		if found.Text != task.Text {
			t.Errorf("Found task text = %v, want %v", found.Text, task.Text)
		}
		if found.Estimated != 2 {
			t.Errorf("Found task estimate = %d, want 2", found.Estimated)
		}
	})

	t.Run("find non-existent", func(t *testing.T) {
		_, err := repo.FindByID(ctx, "non-existent-id")
		if err != domain.ErrTaskNotFound {
			t.Errorf("FindByID() error = %v, want ErrTaskNotFound", err)
		}
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		task, _ := domain.NewTask("Once Only", 1)
		if err := repo.Save(ctx, task); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := repo.Save(ctx, task); err == nil {
			t.Error("Save() should reject a duplicate id")
		}
	})
}

func TestTaskRepository_FindAll(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	// Create test tasks out of position order
	task1, _ := domain.NewTask("Task 1", 1)
	task1.Position = 2
	task2, _ := domain.NewTask("Task 2", 1)
	task2.Position = 0
	task3, _ := domain.NewTask("Task 3", 1)
	task3.Position = 1

	_ = repo.Save(ctx, task1)
	_ = repo.Save(ctx, task2)
	_ = repo.Save(ctx, task3)

	tasks, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("FindAll() returned %d tasks, want 3", len(tasks))
	}
	if tasks[0].Text != "Task 2" || tasks[1].Text != "Task 3" || tasks[2].Text != "Task 1" {
		t.Errorf("FindAll() order = %v, %v, %v; want position order", tasks[0].Text, tasks[1].Text, tasks[2].Text)
	}
}

func TestTaskRepository_Update(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	task, _ := domain.NewTask("Original", 2)
	_ = repo.Save(ctx, task)

	t.Run("update fields", func(t *testing.T) {
		task.Toggle(time.Now())
		task.Actual = 3
		if err := repo.Update(ctx, task); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		found, err := repo.FindByID(ctx, task.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if !found.Completed {
			t.Error("expected completed task after update")
		}
		if found.CompletedAt == nil {
			t.Error("expected completed_at to round trip")
		}
		if found.Actual != 3 {
			t.Errorf("Actual = %d, want 3", found.Actual)
		}
	})

	t.Run("update non-existent", func(t *testing.T) {
		ghost, _ := domain.NewTask("Ghost", 1)
		if err := repo.Update(ctx, ghost); err != domain.ErrTaskNotFound {
			t.Errorf("Update() error = %v, want ErrTaskNotFound", err)
		}
	})
}

func TestTaskRepository_Delete(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	task, _ := domain.NewTask("Doomed", 1)
	_ = repo.Save(ctx, task)

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, task.ID); err != domain.ErrTaskNotFound {
		t.Errorf("FindByID() after delete error = %v, want ErrTaskNotFound", err)
	}
	if err := repo.Delete(ctx, task.ID); err != domain.ErrTaskNotFound {
		t.Errorf("Delete() twice error = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskRepository_FindByText(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	task1, _ := domain.NewTask("Write documentation", 2)
	task2, _ := domain.NewTask("Review pull request", 1)
	task3, _ := domain.NewTask("Write release notes", 1)

	_ = repo.Save(ctx, task1)
	_ = repo.Save(ctx, task2)
	_ = repo.Save(ctx, task3)

	matches, err := repo.FindByText(ctx, "write")
	if err != nil {
		t.Fatalf("FindByText() error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("FindByText() returned %d tasks, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Text == "Review pull request" {
			t.Errorf("FindByText() matched %q unexpectedly", m.Text)
		}
	}
}

func TestTaskRepository_MaxPosition(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	t.Run("empty list", func(t *testing.T) {
		max, err := repo.MaxPosition(ctx)
		if err != nil {
			t.Fatalf("MaxPosition() error = %v", err)
		}
		if max != -1 {
			t.Errorf("MaxPosition() = %d, want -1", max)
		}
	})

	t.Run("with tasks", func(t *testing.T) {
		task1, _ := domain.NewTask("First", 1)
		task1.Position = 0
		task2, _ := domain.NewTask("Second", 1)
		task2.Position = 1
		_ = repo.Save(ctx, task1)
		_ = repo.Save(ctx, task2)

		max, err := repo.MaxPosition(ctx)
		if err != nil {
			t.Fatalf("MaxPosition() error = %v", err)
		}
		if max != 1 {
			t.Errorf("MaxPosition() = %d, want 1", max)
		}
	})
}

func TestTaskRepository_Reorder(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Tasks()

	var ids []string
	for i := 0; i < 3; i++ {
		task, _ := domain.NewTask(fmt.Sprintf("Task %d", i), 1)
		task.Position = i
		_ = repo.Save(ctx, task)
		ids = append(ids, task.ID)
	}

	// Reverse the order
	reversed := []string{ids[2], ids[1], ids[0]}
	if err := repo.Reorder(ctx, reversed); err != nil {
		t.Fatalf("Reorder() error = %v", err)
	}

	tasks, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if tasks[0].Text != "Task 2" || tasks[2].Text != "Task 0" {
		t.Errorf("Reorder() order = %v, %v, %v; want reversed", tasks[0].Text, tasks[1].Text, tasks[2].Text)
	}
}

func TestStatsRepository(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Stats()

	t.Run("day with no data", func(t *testing.T) {
		stats, err := repo.Day(ctx, "2025-06-01")
		if err != nil {
			t.Fatalf("Day() error = %v", err)
		}
		if stats.Pomodoros != 0 || stats.FocusMinutes != 0 {
			t.Errorf("Day() = %+v, want zeroed stats", stats)
		}
		if stats.Date != "2025-06-01" {
			t.Errorf("Day() date = %q, want 2025-06-01", stats.Date)
		}
	})

	t.Run("save and reload", func(t *testing.T) {
		stats := &domain.DailyStats{Date: "2025-06-02", Pomodoros: 3, FocusMinutes: 75}
		if err := repo.SaveDay(ctx, stats); err != nil {
			t.Fatalf("SaveDay() error = %v", err)
		}

		found, err := repo.Day(ctx, "2025-06-02")
		if err != nil {
			t.Fatalf("Day() error = %v", err)
		}
		if found.Pomodoros != 3 || found.FocusMinutes != 75 {
			t.Errorf("Day() = %+v, want 3 pomodoros / 75 minutes", found)
		}
	})

	t.Run("upsert overwrites", func(t *testing.T) {
		stats := &domain.DailyStats{Date: "2025-06-02", Pomodoros: 4, FocusMinutes: 100}
		if err := repo.SaveDay(ctx, stats); err != nil {
			t.Fatalf("SaveDay() error = %v", err)
		}

		found, _ := repo.Day(ctx, "2025-06-02")
		if found.Pomodoros != 4 {
			t.Errorf("Pomodoros = %d, want 4 after upsert", found.Pomodoros)
		}
	})

	t.Run("range", func(t *testing.T) {
		_ = repo.SaveDay(ctx, &domain.DailyStats{Date: "2025-06-03", Pomodoros: 1, FocusMinutes: 25})
		_ = repo.SaveDay(ctx, &domain.DailyStats{Date: "2025-06-05", Pomodoros: 2, FocusMinutes: 50})

		days, err := repo.Range(ctx, "2025-06-02", "2025-06-04")
		if err != nil {
			t.Fatalf("Range() error = %v", err)
		}
		if len(days) != 2 {
			t.Fatalf("Range() returned %d days, want 2", len(days))
		}
		if days[0].Date != "2025-06-02" || days[1].Date != "2025-06-03" {
			t.Errorf("Range() order = %v, %v; want oldest first", days[0].Date, days[1].Date)
		}
	})
}

func TestHistoryRepository_AppendAndRecent(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.History()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := &domain.HistoryEntry{
			CompletedAt:     base.Add(time.Duration(i) * time.Hour),
			DurationMinutes: 25,
			TaskName:        fmt.Sprintf("task %d", i),
			Repository:      "pomo",
			Branch:          "main",
		}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if entry.ID == 0 {
			t.Error("Append() did not backfill entry ID")
		}
	}

	t.Run("recent newest first", func(t *testing.T) {
		entries, err := repo.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("Recent() returned %d entries, want 3", len(entries))
		}
		if entries[0].TaskName != "task 2" {
			t.Errorf("Recent() first entry = %q, want newest", entries[0].TaskName)
		}
	})

	t.Run("recent respects limit", func(t *testing.T) {
		entries, err := repo.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("Recent() error = %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Recent() returned %d entries, want 2", len(entries))
		}
	})

	t.Run("since filters by time", func(t *testing.T) {
		entries, err := repo.Since(ctx, base.Add(90*time.Minute))
		if err != nil {
			t.Fatalf("Since() error = %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("Since() returned %d entries, want 1", len(entries))
		}
		if entries[0].TaskName != "task 2" {
			t.Errorf("Since() entry = %q, want task 2", entries[0].TaskName)
		}
	})

	t.Run("count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 3 {
			t.Errorf("Count() = %d, want 3", count)
		}
	})
}

func TestHistoryRepository_PrunesToCap(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.History()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	total := domain.HistoryCap + 10
	for i := 0; i < total; i++ {
		entry := &domain.HistoryEntry{
			CompletedAt:     base.Add(time.Duration(i) * time.Minute),
			DurationMinutes: 25,
			TaskName:        fmt.Sprintf("entry %d", i),
		}
		if err := repo.Append(ctx, entry); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != domain.HistoryCap {
		t.Errorf("Count() = %d, want cap %d", count, domain.HistoryCap)
	}

	entries, err := repo.Recent(ctx, total)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != domain.HistoryCap {
		t.Fatalf("Recent() returned %d entries, want %d", len(entries), domain.HistoryCap)
	}

	// Oldest survivor should be the first entry past the pruned prefix
	oldest := entries[len(entries)-1]
	if oldest.TaskName != fmt.Sprintf("entry %d", total-domain.HistoryCap) {
		t.Errorf("oldest retained = %q, want entry %d", oldest.TaskName, total-domain.HistoryCap)
	}
}

func TestStateRepository(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.State()

	t.Run("missing key", func(t *testing.T) {
		_, ok, err := repo.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() reported ok for a missing key")
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := repo.Set(ctx, "active_task_id", "abc-123"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		value, ok, err := repo.Get(ctx, "active_task_id")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() reported missing for a set key")
		}
		if value != "abc-123" {
			t.Errorf("Get() = %q, want abc-123", value)
		}
	})

	t.Run("set overwrites", func(t *testing.T) {
		_ = repo.Set(ctx, "streak", "3")
		_ = repo.Set(ctx, "streak", "4")

		value, _, _ := repo.Get(ctx, "streak")
		if value != "4" {
			t.Errorf("Get() = %q, want 4 after overwrite", value)
		}
	})

	t.Run("delete", func(t *testing.T) {
		_ = repo.Set(ctx, "doomed", "x")
		if err := repo.Delete(ctx, "doomed"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		_, ok, _ := repo.Get(ctx, "doomed")
		if ok {
			t.Error("Get() still finds a deleted key")
		}

		// Deleting again is not an error
		if err := repo.Delete(ctx, "doomed"); err != nil {
			t.Errorf("Delete() twice error = %v", err)
		}
	})
}
