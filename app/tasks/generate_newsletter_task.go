package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/threadletter/threadletter/app/database"
	"github.com/threadletter/threadletter/app/newsletter"
)

// GenerateNewsletterTask runs one generation pipeline for a queued job and
// records the outcome on the job row. It never retries: the pipeline is a
// chain of paid external calls, and the job record is the failure surface.
type GenerateNewsletterTask struct {
	Task
	ProfileID     string
	TemplateName  string
	SelectedCount int
	jobRepo       database.JobRepository
	templateCache *newsletter.TemplateCache
	pipeline      *newsletter.Pipeline
}

func NewGenerateNewsletterTask(jobID, profileID, templateName string, selectedCount int,
	jobRepo database.JobRepository, templateCache *newsletter.TemplateCache,
	pipeline *newsletter.Pipeline) *GenerateNewsletterTask {
	task := NewTask(TaskTypeGenerateNewsletter, jobID)
	task.MaxRetries = 0

	return &GenerateNewsletterTask{
		Task:          task,
		ProfileID:     profileID,
		TemplateName:  templateName,
		SelectedCount: selectedCount,
		jobRepo:       jobRepo,
		templateCache: templateCache,
		pipeline:      pipeline,
	}
}

func (t *GenerateNewsletterTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := t.jobRepo.MarkRunning(t.JobID); err != nil {
		return fmt.Errorf("failed to mark job running: %w", err)
	}

	template, err := t.templateCache.GetTemplate(t.TemplateName)
	if err != nil {
		return t.fail(fmt.Errorf("failed to load template: %w", err))
	}

	result, err := t.pipeline.Run(ctx, t.ProfileID, template, t.SelectedCount)
	if err != nil {
		return t.fail(err)
	}

	if err := t.jobRepo.MarkSucceeded(t.JobID, result.NewsletterID); err != nil {
		return fmt.Errorf("failed to mark job succeeded: %w", err)
	}

	slog.Info("Task completed",
		"type", "GenerateNewsletter",
		"job", t.JobID,
		"duration", t.GetDuration(),
		"posts", result.PostCount,
		"email_sent", result.EmailSent)

	return nil
}

// fail records the failure on the job row. Precondition messages are kept
// verbatim (they are user-displayable); everything else is stored as-is
// but only ever surfaced to the caller as a failed status.
func (t *GenerateNewsletterTask) fail(cause error) error {
	message := cause.Error()

	var precondition *newsletter.PreconditionError
	if errors.As(cause, &precondition) {
		message = precondition.Message
	}

	if err := t.jobRepo.MarkFailed(t.JobID, message); err != nil {
		slog.Error("Failed to mark job failed", "job", t.JobID, "error", err)
	}

	return cause
}
