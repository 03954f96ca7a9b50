package services

import (
	"context"
	"errors"
	"testing"

	"github.com/xvierd/pomo/internal/adapters/storage"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

func setupTestStorage(t *testing.T) (ports.Storage, func()) {
	store, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return store, func() { store.Close() }
}

func TestTaskService_Add(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	t.Run("add valid task", func(t *testing.T) {
		task, err := service.Add(ctx, AddTaskRequest{Text: "Test Task", Estimated: 3})
		if err != nil {
			t.Errorf("Add() error = %v", err)
		}
		if task == nil {
			t.Fatal("Add() returned nil")
		}
		if task.Text != "Test Task" {
			t.Errorf("Add() text = %v, want Test Task", task.Text)
		}
		if task.Estimated != 3 {
			t.Errorf("Add() estimate = %d, want 3", task.Estimated)
		}
	})

	t.Run("tasks appended in order", func(t *testing.T) {
		second, _ := service.Add(ctx, AddTaskRequest{Text: "Second", Estimated: 1})
		third, _ := service.Add(ctx, AddTaskRequest{Text: "Third", Estimated: 1})
		if second.Position >= third.Position {
			t.Errorf("positions = %d, %d; want increasing", second.Position, third.Position)
		}
	})

	t.Run("add task with empty text", func(t *testing.T) {
		_, err := service.Add(ctx, AddTaskRequest{Text: "   "})
		if err == nil {
			t.Error("Add() should return error for empty text")
		}
	})

	t.Run("estimate clamped", func(t *testing.T) {
		task, err := service.Add(ctx, AddTaskRequest{Text: "Big plans", Estimated: 99})
		if err != nil {
			t.Fatalf("Add() error = %v", err)
		}
		if task.Estimated != domain.MaxEstimate {
			t.Errorf("Add() estimate = %d, want clamped to %d", task.Estimated, domain.MaxEstimate)
		}
	})
}

func TestTaskService_List(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	service.Add(ctx, AddTaskRequest{Text: "Task 1", Estimated: 1})
	service.Add(ctx, AddTaskRequest{Text: "Task 2", Estimated: 1})

	tasks, err := service.List(ctx)
	if err != nil {
		t.Errorf("List() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("List() returned %d tasks, want 2", len(tasks))
	}
	if tasks[0].Text != "Task 1" || tasks[1].Text != "Task 2" {
		t.Errorf("List() order = %v, %v; want insertion order", tasks[0].Text, tasks[1].Text)
	}
}

func TestTaskService_Filter(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	service.Add(ctx, AddTaskRequest{Text: "Fix login bug", Estimated: 1})
	service.Add(ctx, AddTaskRequest{Text: "Write changelog", Estimated: 1})

	tasks, err := service.Filter(ctx, "login")
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("Filter() returned %d tasks, want 1", len(tasks))
	}
	if tasks[0].Text != "Fix login bug" {
		t.Errorf("Filter() matched %q", tasks[0].Text)
	}
}

func TestTaskService_Toggle(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	t.Run("toggle completes and reopens", func(t *testing.T) {
		task, _ := service.Add(ctx, AddTaskRequest{Text: "Toggle Me", Estimated: 1})

		toggled, err := service.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if !toggled.Completed {
			t.Error("Toggle() should complete an open task")
		}
		if toggled.CompletedAt == nil {
			t.Error("Toggle() should stamp CompletedAt")
		}

		reopened, err := service.Toggle(ctx, task.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if reopened.Completed {
			t.Error("Toggle() should reopen a completed task")
		}
		if reopened.CompletedAt != nil {
			t.Error("Toggle() should clear CompletedAt on reopen")
		}
	})

	t.Run("completing the active task clears the selection", func(t *testing.T) {
		task, _ := service.Add(ctx, AddTaskRequest{Text: "Active Work", Estimated: 1})
		if err := service.SetActive(ctx, task.ID); err != nil {
			t.Fatalf("SetActive() error = %v", err)
		}

		if _, err := service.Toggle(ctx, task.ID); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}

		active, err := service.ActiveTask(ctx)
		if err != nil {
			t.Fatalf("ActiveTask() error = %v", err)
		}
		if active != nil {
			t.Errorf("ActiveTask() = %v, want nil after completing it", active.Text)
		}
	})

	t.Run("toggle non-existent", func(t *testing.T) {
		_, err := service.Toggle(ctx, "nope")
		if err == nil {
			t.Error("Toggle() should return error for unknown task")
		}
	})
}

func TestTaskService_Delete(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	t.Run("delete removes task", func(t *testing.T) {
		task, _ := service.Add(ctx, AddTaskRequest{Text: "Delete Me", Estimated: 1})

		if err := service.Delete(ctx, task.ID); err != nil {
			t.Errorf("Delete() error = %v", err)
		}
		if _, err := service.Get(ctx, task.ID); err == nil {
			t.Error("Delete() should remove task")
		}
	})

	t.Run("deleting the active task clears the selection", func(t *testing.T) {
		task, _ := service.Add(ctx, AddTaskRequest{Text: "Active Doomed", Estimated: 1})
		_ = service.SetActive(ctx, task.ID)

		if err := service.Delete(ctx, task.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		active, _ := service.ActiveTask(ctx)
		if active != nil {
			t.Error("ActiveTask() should be nil after deleting the active task")
		}
	})
}

func TestTaskService_MoveTo(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	first, _ := service.Add(ctx, AddTaskRequest{Text: "First", Estimated: 1})
	second, _ := service.Add(ctx, AddTaskRequest{Text: "Second", Estimated: 1})
	third, _ := service.Add(ctx, AddTaskRequest{Text: "Third", Estimated: 1})

	t.Run("move to front", func(t *testing.T) {
		if err := service.MoveTo(ctx, third.ID, 0); err != nil {
			t.Fatalf("MoveTo() error = %v", err)
		}

		tasks, _ := service.List(ctx)
		want := []string{"Third", "First", "Second"}
		for i, text := range want {
			if tasks[i].Text != text {
				t.Errorf("tasks[%d] = %v, want %v", i, tasks[i].Text, text)
			}
		}
	})

	t.Run("move to middle shifts the rest", func(t *testing.T) {
		if err := service.MoveTo(ctx, first.ID, 2); err != nil {
			t.Fatalf("MoveTo() error = %v", err)
		}

		tasks, _ := service.List(ctx)
		want := []string{"Third", "Second", "First"}
		for i, text := range want {
			if tasks[i].Text != text {
				t.Errorf("tasks[%d] = %v, want %v", i, tasks[i].Text, text)
			}
		}
	})

	t.Run("out-of-range index clamps", func(t *testing.T) {
		if err := service.MoveTo(ctx, third.ID, 99); err != nil {
			t.Fatalf("MoveTo() error = %v", err)
		}

		tasks, _ := service.List(ctx)
		if tasks[len(tasks)-1].Text != "Third" {
			t.Errorf("last task = %v, want Third", tasks[len(tasks)-1].Text)
		}
	})

	t.Run("move unknown task", func(t *testing.T) {
		if err := service.MoveTo(ctx, "nope", 0); !errors.Is(err, domain.ErrTaskNotFound) {
			t.Errorf("MoveTo() error = %v, want ErrTaskNotFound", err)
		}
	})

	_ = second
}

func TestTaskService_SetActive(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	task, _ := service.Add(ctx, AddTaskRequest{Text: "Focus Work", Estimated: 2})

	t.Run("set active", func(t *testing.T) {
		if err := service.SetActive(ctx, task.ID); err != nil {
			t.Fatalf("SetActive() error = %v", err)
		}

		active, err := service.ActiveTask(ctx)
		if err != nil {
			t.Fatalf("ActiveTask() error = %v", err)
		}
		if active == nil || active.ID != task.ID {
			t.Error("ActiveTask() should return the selected task")
		}
	})

	t.Run("re-selecting clears", func(t *testing.T) {
		if err := service.SetActive(ctx, task.ID); err != nil {
			t.Fatalf("SetActive() error = %v", err)
		}

		active, _ := service.ActiveTask(ctx)
		if active != nil {
			t.Error("SetActive() on the active task should clear the selection")
		}
	})

	t.Run("only one task active", func(t *testing.T) {
		other, _ := service.Add(ctx, AddTaskRequest{Text: "Other Work", Estimated: 1})
		_ = service.SetActive(ctx, task.ID)
		_ = service.SetActive(ctx, other.ID)

		active, _ := service.ActiveTask(ctx)
		if active == nil || active.ID != other.ID {
			t.Error("ActiveTask() should follow the most recent selection")
		}
	})

	t.Run("rejects completed tasks", func(t *testing.T) {
		done, _ := service.Add(ctx, AddTaskRequest{Text: "Done Work", Estimated: 1})
		_, _ = service.Toggle(ctx, done.ID)

		if err := service.SetActive(ctx, done.ID); !errors.Is(err, domain.ErrTaskCompleted) {
			t.Errorf("SetActive() error = %v, want ErrTaskCompleted", err)
		}
	})

	t.Run("dangling selection reads as none", func(t *testing.T) {
		ghost, _ := service.Add(ctx, AddTaskRequest{Text: "Ghost", Estimated: 1})
		_ = service.SetActive(ctx, ghost.ID)

		// Remove the row underneath the selection.
		_ = store.Tasks().Delete(ctx, ghost.ID)

		active, err := service.ActiveTask(ctx)
		if err != nil {
			t.Fatalf("ActiveTask() error = %v", err)
		}
		if active != nil {
			t.Error("ActiveTask() should clear a dangling selection")
		}
	})
}

func TestTaskService_IncrementActive(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	t.Run("no active task", func(t *testing.T) {
		task, err := service.IncrementActive(ctx)
		if err != nil {
			t.Errorf("IncrementActive() error = %v", err)
		}
		if task != nil {
			t.Error("IncrementActive() should report nil with no active task")
		}
	})

	t.Run("with active task", func(t *testing.T) {
		task, _ := service.Add(ctx, AddTaskRequest{Text: "Count Me", Estimated: 2})
		_ = service.SetActive(ctx, task.ID)

		updated, err := service.IncrementActive(ctx)
		if err != nil {
			t.Fatalf("IncrementActive() error = %v", err)
		}
		if updated.Actual != 1 {
			t.Errorf("Actual = %d, want 1", updated.Actual)
		}

		reloaded, _ := service.Get(ctx, task.ID)
		if reloaded.Actual != 1 {
			t.Errorf("persisted Actual = %d, want 1", reloaded.Actual)
		}
	})
}

func TestTaskService_SetEstimate(t *testing.T) {
	store, cleanup := setupTestStorage(t)
	defer cleanup()

	service := NewTaskService(store)
	ctx := context.Background()

	task, _ := service.Add(ctx, AddTaskRequest{Text: "Estimate Me", Estimated: 1})

	updated, err := service.SetEstimate(ctx, task.ID, 42)
	if err != nil {
		t.Fatalf("SetEstimate() error = %v", err)
	}
	if updated.Estimated != domain.MaxEstimate {
		t.Errorf("Estimated = %d, want clamped to %d", updated.Estimated, domain.MaxEstimate)
	}
}
