package api

import (
	"github.com/threadletter/threadletter/app/database"
	"github.com/threadletter/threadletter/app/newsletter"
	"github.com/threadletter/threadletter/app/tasks"
)

type Handler struct {
	profileRepo    database.ProfileRepository
	newsletterRepo database.NewsletterRepository
	jobRepo        database.JobRepository
	templateCache  *newsletter.TemplateCache
	pipeline       *newsletter.Pipeline
	scheduler      tasks.TaskSchedulerInterface
}

type generateRequest struct {
	SelectedCount int    `json:"selected_count"`
	Template      string `json:"template"`
}
