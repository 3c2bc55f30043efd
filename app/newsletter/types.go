package newsletter

// PreconditionError is a user-displayable entitlement failure with the
// HTTP status the API layer should return. Everything else in the pipeline
// collapses to a generic 500 / failed job.
type PreconditionError struct {
	Status  int
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// Template is a newsletter strategy: the prompt set and styling of one
// variant. All variants share the same pipeline.
type Template struct {
	Name    string `yaml:"name"`
	Subject string `yaml:"subject"`

	// Prompt templates. Placeholders: {{posts}}, {{analysis}},
	// {{findings}}, {{markdown}}, {{audience}}, {{style}}.
	AnalysisPrompt string `yaml:"analysis_prompt"`
	QueryPrompt    string `yaml:"query_prompt"`
	MergePrompt    string `yaml:"merge_prompt"`
	FormatPrompt   string `yaml:"format_prompt"`
	EnhancePrompt  string `yaml:"enhance_prompt"`

	// CSS is injected into the rendered email shell and inlined for
	// email-client compatibility.
	CSS string `yaml:"css"`

	// Enrichment toggles the optional web-enrichment stage.
	Enrichment bool `yaml:"enrichment"`
}

// Result is the outcome of a successful pipeline run.
type Result struct {
	NewsletterID string
	MarkdownText string
	EmailSent    bool
	PostCount    int
}
