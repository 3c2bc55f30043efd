package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/threadletter/threadletter/app/cfg"
	"github.com/threadletter/threadletter/app/database"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, profileRepo database.ProfileRepository) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	r.Use(corsMiddleware())

	// Routes
	setupRoutes(r, handler, profileRepo)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, profileRepo database.ProfileRepository) {
	r.GET("/health", handler.GetHealth)

	authorized := r.Group("/api")
	authorized.Use(authMiddleware(profileRepo))
	{
		authorized.POST("/newsletters", handler.GenerateNewsletter)
		authorized.GET("/newsletters", handler.ListNewsletters)
		authorized.GET("/newsletters/:id", handler.GetNewsletter)
		authorized.GET("/jobs/:id", handler.GetJob)
		authorized.GET("/templates", handler.ListTemplates)
		authorized.POST("/tweets", handler.GenerateTweets)
	}

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Threadletter",
			"version":     cfg.Get().Version,
			"description": "Turns bookmarked posts into a styled email newsletter",
			"endpoints": map[string]string{
				"generate":    "/api/newsletters (POST, requires Authorization: Bearer <token>)",
				"job_status":  "/api/jobs/<id>",
				"newsletters": "/api/newsletters",
				"templates":   "/api/templates",
				"tweets":      "/api/tweets (POST)",
				"health":      "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// corsMiddleware answers preflights with a fixed allow-list; the allowed
// origin is environment-gated (localhost in development, the configured
// production origin otherwise).
func corsMiddleware() gin.HandlerFunc {
	appCfg := cfg.Get()

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if allowedOrigin(appCfg, origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func allowedOrigin(appCfg *cfg.Cfg, origin string) bool {
	if origin == "" {
		return false
	}

	if appCfg.IsProduction() {
		return appCfg.AllowedOrigin != "" && origin == appCfg.AllowedOrigin
	}

	return strings.HasPrefix(origin, "http://localhost:") ||
		strings.HasPrefix(origin, "http://127.0.0.1:")
}

// authMiddleware resolves the profile from the bearer token and stores it
// in the request context.
func authMiddleware(profileRepo database.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "authorization required",
				"message": "Provide a token in the Authorization: Bearer <token> header",
			})
			c.Abort()
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		profile, err := profileRepo.GetByToken(token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			c.Abort()
			return
		}
		if profile == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid token",
				"message": "The provided token is not valid",
			})
			c.Abort()
			return
		}

		c.Set("profile", profile)
		c.Next()
	}
}

// currentProfile returns the profile resolved by authMiddleware.
func currentProfile(c *gin.Context) *database.Profile {
	value, ok := c.Get("profile")
	if !ok {
		return nil
	}
	profile, ok := value.(*database.Profile)
	if !ok {
		return nil
	}
	return profile
}
