package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const taskTimeout = 5 * time.Minute

// Run executes tasks one after another and stops at the first failure.
// Imports are never run concurrently against the same database.
func Run(ctx context.Context, tasks ...TaskInterface) error {
	for _, task := range tasks {
		if err := executeTask(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

func executeTask(ctx context.Context, task TaskInterface) error {
	task.Start()

	taskCtx, cancel := context.WithTimeout(ctx, taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Task execution failed", "type", string(task.GetType()), "id", task.GetID(), "error", err)
		return fmt.Errorf("%s task failed: %w", task.GetType(), err)
	}

	slog.Debug("Task finished", "type", string(task.GetType()), "id", task.GetID(), "duration", task.GetDuration())
	return nil
}
