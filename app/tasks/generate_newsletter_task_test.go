package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/threadletter/threadletter/app/database"
	"github.com/threadletter/threadletter/app/newsletter"
)

type fakeJobRepo struct {
	running      []string
	failed       map[string]string
	staleErr     error
	staleCount   int
	staleCutoffs []time.Time
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{failed: make(map[string]string)}
}

func (f *fakeJobRepo) Create(job database.Job) error        { return nil }
func (f *fakeJobRepo) Get(id string) (*database.Job, error) { return nil, nil }

func (f *fakeJobRepo) MarkRunning(id string) error {
	f.running = append(f.running, id)
	return nil
}

func (f *fakeJobRepo) MarkSucceeded(id, newsletterID string) error { return nil }

func (f *fakeJobRepo) MarkFailed(id, errorMessage string) error {
	f.failed[id] = errorMessage
	return nil
}

func (f *fakeJobRepo) FailStaleRunning(cutoff time.Time) (int, error) {
	f.staleCutoffs = append(f.staleCutoffs, cutoff)
	return f.staleCount, f.staleErr
}

func TestGenerateNewsletterTaskNeverRetries(t *testing.T) {
	task := NewGenerateNewsletterTask("job-1", "profile-1", "modern-clean", 10, newFakeJobRepo(), nil, nil)

	if task.GetMaxRetries() != 0 {
		t.Errorf("Expected max retries 0, got %d", task.GetMaxRetries())
	}
	if task.CanRetry() {
		t.Error("Generation tasks must not retry")
	}
}

func TestGenerateNewsletterTaskUnknownTemplate(t *testing.T) {
	jobRepo := newFakeJobRepo()
	templateCache := newsletter.NewTemplateCache(t.TempDir())

	task := NewGenerateNewsletterTask("job-1", "profile-1", "nope", 10, jobRepo, templateCache, nil)

	if err := task.Execute(context.Background()); err == nil {
		t.Fatal("Expected error for unknown template")
	}

	if len(jobRepo.running) != 1 {
		t.Errorf("Expected job marked running first, got %v", jobRepo.running)
	}
	if _, ok := jobRepo.failed["job-1"]; !ok {
		t.Error("Expected job marked failed")
	}
}

func TestGenerateNewsletterTaskCancelledContext(t *testing.T) {
	jobRepo := newFakeJobRepo()
	task := NewGenerateNewsletterTask("job-1", "profile-1", "modern-clean", 10, jobRepo, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(jobRepo.running) != 0 {
		t.Error("Expected no state change on cancelled context")
	}
}

func TestFailStaleJobsTask(t *testing.T) {
	jobRepo := newFakeJobRepo()
	jobRepo.staleCount = 2

	task := NewFailStaleJobsTask(jobRepo)

	before := time.Now()
	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(jobRepo.staleCutoffs) != 1 {
		t.Fatalf("Expected one stale sweep, got %d", len(jobRepo.staleCutoffs))
	}
	cutoff := jobRepo.staleCutoffs[0]
	if cutoff.After(before.Add(-staleJobAge + time.Minute)) {
		t.Errorf("Expected cutoff about %s in the past, got %s", staleJobAge, cutoff)
	}
}

func TestFailStaleJobsTaskPropagatesError(t *testing.T) {
	jobRepo := newFakeJobRepo()
	jobRepo.staleErr = errors.New("database locked")

	task := NewFailStaleJobsTask(jobRepo)

	if err := task.Execute(context.Background()); err == nil {
		t.Error("Expected error propagated from repository")
	}
}
