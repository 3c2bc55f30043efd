package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/threadletter/threadletter/app/database"
	"github.com/threadletter/threadletter/app/newsletter"
	"github.com/threadletter/threadletter/app/tasks"
)

func NewHandler(profileRepo database.ProfileRepository, newsletterRepo database.NewsletterRepository,
	jobRepo database.JobRepository, templateCache *newsletter.TemplateCache,
	pipeline *newsletter.Pipeline, scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		profileRepo:    profileRepo,
		newsletterRepo: newsletterRepo,
		jobRepo:        jobRepo,
		templateCache:  templateCache,
		pipeline:       pipeline,
		scheduler:      scheduler,
	}
}

// GenerateNewsletter validates the request, gates on entitlements, records
// a queued job and hands the pipeline to the background scheduler. The
// response is an immediate 202; progress is observable via the job record.
func (h *Handler) GenerateNewsletter(c *gin.Context) {
	profile := currentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !newsletter.IsValidCount(req.SelectedCount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selected_count must be 10, 20 or 30"})
		return
	}

	templateName := req.Template
	if templateName == "" {
		templateName = profile.Template
	}
	if templateName == "" {
		templateName = newsletter.DefaultTemplateName
	}
	if _, err := h.templateCache.GetTemplate(templateName); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown template: " + templateName})
		return
	}

	// Preconditions are checked here so quota and connection failures are
	// reported to the caller instead of a 202 that silently fails.
	if precondition := newsletter.CheckEntitlements(profile, time.Now()); precondition != nil {
		c.JSON(precondition.Status, gin.H{"error": precondition.Message})
		return
	}

	job := database.Job{
		ID:            uuid.NewString(),
		ProfileID:     profile.ID,
		Template:      templateName,
		SelectedCount: req.SelectedCount,
	}

	if err := h.jobRepo.Create(job); err != nil {
		slog.Error("Database error", "operation", "create_job", "profile", profile.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	task := tasks.NewGenerateNewsletterTask(job.ID, profile.ID, templateName, req.SelectedCount,
		h.jobRepo, h.templateCache, h.pipeline)

	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing generation task", "job", job.ID, "error", err)
		if markErr := h.jobRepo.MarkFailed(job.ID, "could not start generation, please try again"); markErr != nil {
			slog.Error("Database error", "operation", "mark_failed", "job", job.ID, "error", markErr)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status":  "processing",
		"message": "Your newsletter is being generated and will arrive by email shortly",
		"job_id":  job.ID,
	})
}

func (h *Handler) GetJob(c *gin.Context) {
	profile := currentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	id := c.Param("id")

	job, err := h.jobRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_job", "job", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if job == nil || job.ProfileID != profile.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	response := gin.H{
		"id":             job.ID,
		"status":         job.Status,
		"template":       job.Template,
		"selected_count": job.SelectedCount,
		"created_at":     job.CreatedAt.Format(time.RFC3339),
	}
	if job.Error != "" {
		response["error"] = job.Error
	}
	if job.NewsletterID != nil {
		response["newsletter_id"] = *job.NewsletterID
	}
	if job.FinishedAt != nil {
		response["finished_at"] = job.FinishedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) ListNewsletters(c *gin.Context) {
	profile := currentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	newsletters, err := h.newsletterRepo.ListByProfile(profile.ID, 50)
	if err != nil {
		slog.Error("Database error", "operation", "list_newsletters", "profile", profile.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := make([]gin.H, 0, len(newsletters))
	for _, n := range newsletters {
		items = append(items, gin.H{
			"id":         n.ID,
			"created_at": n.CreatedAt.Format(time.RFC3339),
			"preview":    preview(n.MarkdownText, 200),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"newsletters": items,
		"total":       len(items),
	})
}

func (h *Handler) GetNewsletter(c *gin.Context) {
	profile := currentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	id := c.Param("id")

	record, err := h.newsletterRepo.Get(id)
	if err != nil {
		slog.Error("Database error", "operation", "get_newsletter", "newsletter", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if record == nil || record.ProfileID != profile.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Newsletter not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            record.ID,
		"markdown_text": record.MarkdownText,
		"created_at":    record.CreatedAt.Format(time.RFC3339),
	})
}

func (h *Handler) ListTemplates(c *gin.Context) {
	templates := h.templateCache.GetTemplates()

	items := make([]gin.H, 0, len(templates))
	for _, t := range templates {
		items = append(items, gin.H{
			"name":       t.Name,
			"subject":    t.Subject,
			"enrichment": t.Enrichment,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"templates": items,
		"default":   newsletter.DefaultTemplateName,
	})
}

// GenerateTweets produces post suggestions synchronously; unlike newsletter
// generation it consumes no credit and has no job record.
func (h *Handler) GenerateTweets(c *gin.Context) {
	profile := currentProfile(c)
	if profile == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		return
	}

	suggestions, err := h.pipeline.GenerateTweets(c.Request.Context(), profile.ID)
	if err != nil {
		var precondition *newsletter.PreconditionError
		if errors.As(err, &precondition) {
			c.JSON(precondition.Status, gin.H{"error": precondition.Message})
			return
		}
		slog.Error("Tweet generation failed", "profile", profile.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tweets": suggestions})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.newsletterRepo.GetCount(); err == nil {
		health["newsletters"] = count
	}

	health["loaded_templates"] = h.templateCache.GetTemplateCount()

	c.JSON(http.StatusOK, health)
}

func preview(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}
