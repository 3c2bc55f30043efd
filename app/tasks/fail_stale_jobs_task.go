package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/threadletter/threadletter/app/database"
)

// staleJobAge is how long a job may stay in the running state before the
// janitor declares it dead (crashed worker or lost process).
const staleJobAge = 30 * time.Minute

type FailStaleJobsTask struct {
	Task
	jobRepo database.JobRepository
}

func NewFailStaleJobsTask(jobRepo database.JobRepository) *FailStaleJobsTask {
	return &FailStaleJobsTask{
		Task:    NewTask(TaskTypeFailStaleJobs, ""),
		jobRepo: jobRepo,
	}
}

func (t *FailStaleJobsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	count, err := t.jobRepo.FailStaleRunning(time.Now().Add(-staleJobAge))
	if err != nil {
		return fmt.Errorf("failed to fail stale jobs: %w", err)
	}

	if count > 0 {
		slog.Warn("Stale running jobs marked failed", "count", count)
	}

	return nil
}
