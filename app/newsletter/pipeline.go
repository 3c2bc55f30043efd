package newsletter

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/threadletter/threadletter/app/database"
	"github.com/threadletter/threadletter/app/scraper"
)

// ValidCounts are the only accepted bookmark counts for a generation run.
var ValidCounts = []int{10, 20, 30}

func IsValidCount(count int) bool {
	for _, c := range ValidCounts {
		if count == c {
			return true
		}
	}
	return false
}

// Pipeline runs one newsletter generation end to end. All collaborators
// are injected so every stage can be substituted in tests.
type Pipeline struct {
	profileRepo    database.ProfileRepository
	newsletterRepo database.NewsletterRepository
	source         BookmarkSource
	scraper        ContentScraper
	completer      Completer
	enricher       *Enricher
	renderer       *Renderer
	sender         EmailSender
}

func NewPipeline(profileRepo database.ProfileRepository, newsletterRepo database.NewsletterRepository,
	source BookmarkSource, contentScraper ContentScraper, completer Completer,
	enricher *Enricher, renderer *Renderer, sender EmailSender) *Pipeline {
	return &Pipeline{
		profileRepo:    profileRepo,
		newsletterRepo: newsletterRepo,
		source:         source,
		scraper:        contentScraper,
		completer:      completer,
		enricher:       enricher,
		renderer:       renderer,
		sender:         sender,
	}
}

// CheckEntitlements validates every generation precondition on a profile.
// Each failure maps to a distinct HTTP status and user-displayable message.
func CheckEntitlements(profile *database.Profile, now time.Time) *PreconditionError {
	if profile.SubscriptionTier == nil || *profile.SubscriptionTier == "" {
		return &PreconditionError{
			Status:  http.StatusForbidden,
			Message: "no active subscription, please choose a plan to generate newsletters",
		}
	}

	if profile.Credits <= 0 {
		return &PreconditionError{
			Status:  http.StatusForbidden,
			Message: "you have used all your newsletter generations for this period",
		}
	}

	if profile.AccessToken == "" {
		return &PreconditionError{
			Status:  http.StatusUnauthorized,
			Message: "no connected account found, please connect your account first",
		}
	}

	if !profile.HasValidToken(now) {
		return &PreconditionError{
			Status:  http.StatusUnauthorized,
			Message: "your account connection has expired, please reconnect your account",
		}
	}

	return nil
}

// Run executes the full generation pipeline for one profile. The stages
// are strictly sequential; enrichment and visual enhancement fall back on
// failure, delivery failure is logged but does not abort persistence or
// credit consumption.
func (p *Pipeline) Run(ctx context.Context, profileID string, template *Template, count int) (*Result, error) {
	started := time.Now()

	if !IsValidCount(count) {
		return nil, fmt.Errorf("invalid bookmark count: %d", count)
	}

	profile, err := p.profileRepo.Get(profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("profile %s not found", profileID)
	}

	// Re-checked here even though the API layer gates synchronously:
	// credits can change between enqueue and execution.
	if precondition := CheckEntitlements(profile, time.Now()); precondition != nil {
		return nil, precondition
	}

	platformUserID, err := p.resolveIdentity(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve platform identity: %w", err)
	}

	posts, err := p.source.Recent(ctx, profile.AccessToken, platformUserID, count)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	detailed, err := p.scraper.Lookup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch post content: %w", err)
	}

	slog.Debug("Posts collected", "profile", profile.ID, "bookmarked", len(posts), "detailed", len(detailed))

	analysis, err := p.completer.Complete(ctx, renderPrompt(template.AnalysisPrompt, map[string]string{
		"posts":    formatPosts(detailed),
		"audience": profile.Audience,
		"style":    profile.WritingStyle,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze posts: %w", err)
	}

	enriched := false
	if template.Enrichment && p.enricher != nil {
		merged, err := p.enricher.Run(ctx, template, analysis)
		if err != nil {
			slog.Warn("Web enrichment failed, continuing with unenriched analysis", "profile", profile.ID, "error", err)
		} else {
			analysis = merged
			enriched = true
		}
	}

	markdown, err := p.completer.Complete(ctx, renderPrompt(template.FormatPrompt, map[string]string{
		"analysis": analysis,
		"style":    profile.WritingStyle,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to format newsletter: %w", err)
	}
	markdown = stripCodeFence(markdown)

	if enhanced, err := p.completer.Complete(ctx, renderPrompt(template.EnhancePrompt, map[string]string{
		"markdown": markdown,
	})); err != nil {
		slog.Warn("Visual enhancement failed, continuing with formatted markdown", "profile", profile.ID, "error", err)
	} else {
		markdown = stripCodeFence(enhanced)
	}

	html, err := p.renderer.Run(markdown, template)
	if err != nil {
		return nil, fmt.Errorf("failed to render newsletter: %w", err)
	}

	// Delivery is best-effort: the archive copy and the credit are kept
	// regardless of whether the email arrives.
	emailSent := true
	if err := p.sender.Send(ctx, profile.Email, template.Subject, html, markdown); err != nil {
		slog.Error("Email delivery failed, continuing", "profile", profile.ID, "error", err)
		emailSent = false
	}

	newsletterID, err := p.newsletterRepo.Insert(profile.ID, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to store newsletter: %w", err)
	}

	consumed, err := p.profileRepo.ConsumeCredit(profile.ID)
	if err != nil {
		slog.Error("Failed to consume generation credit", "profile", profile.ID, "error", err)
	} else if !consumed {
		slog.Warn("No generation credit left to consume", "profile", profile.ID)
	}

	slog.Info("Newsletter generated",
		"profile", profile.ID,
		"template", template.Name,
		"duration", time.Since(started),
		"posts", len(detailed),
		"enriched", enriched,
		"email_sent", emailSent,
		"newsletter_id", newsletterID)

	return &Result{
		NewsletterID: newsletterID,
		MarkdownText: markdown,
		EmailSent:    emailSent,
		PostCount:    len(detailed),
	}, nil
}

// resolveIdentity returns the numeric platform identifier, looking it up
// once and memoizing it back into the profile.
func (p *Pipeline) resolveIdentity(ctx context.Context, profile *database.Profile) (string, error) {
	if profile.PlatformUserID != nil && *profile.PlatformUserID != "" {
		return *profile.PlatformUserID, nil
	}

	if profile.PlatformHandle == "" {
		return "", fmt.Errorf("profile has no platform handle")
	}

	platformUserID, err := p.source.UserID(ctx, profile.AccessToken, profile.PlatformHandle)
	if err != nil {
		return "", err
	}

	if err := p.profileRepo.SetPlatformUserID(profile.ID, platformUserID); err != nil {
		// Memoization only; the resolved id is still usable for this run.
		slog.Warn("Failed to store platform user id", "profile", profile.ID, "error", err)
	}

	return platformUserID, nil
}

func formatPosts(posts []scraper.DetailedPost) string {
	var b strings.Builder

	for i, post := range posts {
		fmt.Fprintf(&b, "%d. @%s", i+1, post.AuthorHandle)
		if post.AuthorName != "" {
			fmt.Fprintf(&b, " (%s)", post.AuthorName)
		}
		b.WriteString(":\n")
		b.WriteString(post.Text)
		b.WriteString("\n")
		fmt.Fprintf(&b, "Engagement: %d likes, %d reposts, %d replies\n", post.LikeCount, post.RepostCount, post.ReplyCount)
		if post.MediaURL != "" {
			fmt.Fprintf(&b, "Media: %s\n", post.MediaURL)
		}
		b.WriteString("\n")
	}

	return b.String()
}
