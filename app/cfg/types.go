package cfg

type Cfg struct {
	// Server configuration
	Port              string
	Environment       string
	AllowedOrigin     string
	WorkerCount       int
	SchedulerInterval int

	// Storage configuration
	DBPath       string
	TemplatesDir string

	// External API configuration
	BookmarkAPIURL string
	ScraperAPIURL  string
	ScraperAPIKey  string
	LLMAPIURL      string
	LLMAPIKey      string
	LLMModel       string
	SearchAPIURL   string
	SearchAPIKey   string
	EmailAPIKey    string
	SenderAddress  string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}

// IsProduction reports whether the service runs with the production
// CORS origin policy.
func (c *Cfg) IsProduction() bool {
	return c.Environment == "production"
}
