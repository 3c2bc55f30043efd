package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port              string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	Environment       string `long:"environment" env:"ENVIRONMENT" default:"development" description:"Runtime environment (development or production)"`
	AllowedOrigin     string `long:"allowed-origin" env:"ALLOWED_ORIGIN" description:"Allowed CORS origin in production (e.g. https://app.threadletter.io)"`
	WorkerCount       int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for newsletter generation"`
	SchedulerInterval int    `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`

	// Storage configuration
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./data/threadletter.db" description:"Path to the sqlite database file"`
	TemplatesDir string `long:"templates-dir" env:"TEMPLATES_DIR" default:"./templates" description:"Directory containing newsletter template overrides"`

	// External API configuration
	BookmarkAPIURL string `long:"bookmark-api-url" env:"BOOKMARK_API_URL" default:"https://api.x.com/2" description:"Base URL of the bookmark API"`
	ScraperAPIURL  string `long:"scraper-api-url" env:"SCRAPER_API_URL" default:"https://api.socialdata.tools" description:"Base URL of the content-scraping API"`
	ScraperAPIKey  string `long:"scraper-api-key" env:"SCRAPER_API_KEY" description:"API key for the content-scraping API"`
	LLMAPIURL      string `long:"llm-api-url" env:"LLM_API_URL" default:"https://api.openai.com/v1" description:"Base URL of the completion API"`
	LLMAPIKey      string `long:"llm-api-key" env:"LLM_API_KEY" description:"API key for the completion API"`
	LLMModel       string `long:"llm-model" env:"LLM_MODEL" default:"gpt-4o-mini" description:"Completion model name"`
	SearchAPIURL   string `long:"search-api-url" env:"SEARCH_API_URL" default:"https://google.serper.dev" description:"Base URL of the web-search API"`
	SearchAPIKey   string `long:"search-api-key" env:"SEARCH_API_KEY" description:"API key for the web-search API"`
	EmailAPIKey    string `long:"email-api-key" env:"EMAIL_API_KEY" description:"API key for the email-delivery API"`
	SenderAddress  string `long:"sender-address" env:"SENDER_ADDRESS" default:"Threadletter <digest@threadletter.io>" description:"From address for delivered newsletters"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Threadletter/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		Environment:       raw.Environment,
		AllowedOrigin:     raw.AllowedOrigin,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		DBPath:            raw.DBPath,
		TemplatesDir:      raw.TemplatesDir,
		BookmarkAPIURL:    raw.BookmarkAPIURL,
		ScraperAPIURL:     raw.ScraperAPIURL,
		ScraperAPIKey:     raw.ScraperAPIKey,
		LLMAPIURL:         raw.LLMAPIURL,
		LLMAPIKey:         raw.LLMAPIKey,
		LLMModel:          raw.LLMModel,
		SearchAPIURL:      raw.SearchAPIURL,
		SearchAPIKey:      raw.SearchAPIKey,
		EmailAPIKey:       raw.EmailAPIKey,
		SenderAddress:     raw.SenderAddress,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
