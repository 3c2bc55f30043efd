package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The API layer enqueues generation tasks through it; the
// scheduler owns the worker pool and the periodic janitor.
// Example usage:
//
//	scheduler := NewScheduler(jobRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewGenerateNewsletterTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
