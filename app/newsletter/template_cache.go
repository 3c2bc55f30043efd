package newsletter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultTemplateName = "modern-clean"

// TemplateCache serves the built-in template strategies and any YAML
// overrides found in the templates directory. Overrides with a built-in's
// name replace it; new names add variants.
type TemplateCache struct {
	templatesDir string
	cache        map[string]*Template
	mu           sync.RWMutex
}

func NewTemplateCache(templatesDir string) *TemplateCache {
	return &TemplateCache{
		templatesDir: templatesDir,
		cache:        builtinTemplates(),
	}
}

func (tc *TemplateCache) Run() error {
	if _, err := os.Stat(tc.templatesDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(tc.templatesDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		// Derive template name from filename (remove .yml extension)
		fileName := filepath.Base(file)
		templateName := fileName[:len(fileName)-4]

		template, err := tc.LoadTemplate(templateName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Template loaded", "template", templateName, "enrichment", template.Enrichment)
	}

	return nil
}

func (tc *TemplateCache) LoadTemplate(templateName string) (*Template, error) {
	templateFile := tc.getTemplateFilePath(templateName)
	template, err := tc.parseTemplate(templateFile)
	if err != nil {
		return nil, err
	}

	// Set template name from parameter
	template.Name = templateName

	if err := tc.validateTemplate(template); err != nil {
		return nil, fmt.Errorf("invalid template %s: %w", templateFile, err)
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.cache[template.Name] = template

	return template, nil
}

func (tc *TemplateCache) GetTemplate(templateName string) (*Template, error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	template, ok := tc.cache[templateName]
	if !ok {
		return nil, fmt.Errorf("template with name '%s' not found", templateName)
	}
	return template, nil
}

func (tc *TemplateCache) GetTemplates() map[string]*Template {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	templatesCopy := make(map[string]*Template, len(tc.cache))
	for k, v := range tc.cache {
		templatesCopy[k] = v
	}
	return templatesCopy
}

func (tc *TemplateCache) GetTemplateCount() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.cache)
}

func (tc *TemplateCache) parseTemplate(templateFile string) (*Template, error) {
	data, err := os.ReadFile(templateFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var template Template
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Prompts the override leaves empty fall back to the default variant's
	defaults := builtinTemplates()[DefaultTemplateName]
	if template.Subject == "" {
		template.Subject = defaults.Subject
	}
	if template.QueryPrompt == "" {
		template.QueryPrompt = defaults.QueryPrompt
	}
	if template.MergePrompt == "" {
		template.MergePrompt = defaults.MergePrompt
	}
	if template.EnhancePrompt == "" {
		template.EnhancePrompt = defaults.EnhancePrompt
	}
	if template.CSS == "" {
		template.CSS = defaults.CSS
	}

	return &template, nil
}

func (tc *TemplateCache) validateTemplate(template *Template) error {
	if template == nil {
		return fmt.Errorf("template is nil")
	}

	requiredFields := map[string]string{
		"template name":   template.Name,
		"analysis prompt": template.AnalysisPrompt,
		"format prompt":   template.FormatPrompt,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	return nil
}

func (tc *TemplateCache) getTemplateFilePath(templateName string) string {
	return filepath.Join(tc.templatesDir, templateName+".yml")
}
