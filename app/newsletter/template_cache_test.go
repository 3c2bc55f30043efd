package newsletter

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTemplateCacheBuiltins(t *testing.T) {
	tc := NewTemplateCache(filepath.Join(t.TempDir(), "missing"))
	if err := tc.Run(); err != nil {
		t.Fatalf("Run with missing templates dir should succeed, got %v", err)
	}

	if tc.GetTemplateCount() != 3 {
		t.Errorf("Expected 3 built-in templates, got %d", tc.GetTemplateCount())
	}

	for _, name := range []string{"modern-clean", "twin-focus", "press-review"} {
		template, err := tc.GetTemplate(name)
		if err != nil {
			t.Errorf("Expected built-in template %s, got error %v", name, err)
			continue
		}
		if template.AnalysisPrompt == "" || template.FormatPrompt == "" {
			t.Errorf("Built-in template %s is missing required prompts", name)
		}
		if template.CSS == "" {
			t.Errorf("Built-in template %s has no styling", name)
		}
	}

	if _, err := tc.GetTemplate("nope"); err == nil {
		t.Error("Expected error for unknown template")
	}
}

func TestTemplateCacheYAMLOverride(t *testing.T) {
	dir := t.TempDir()

	override := `subject: "Custom digest"
analysis_prompt: "Analyze: {{posts}}"
format_prompt: "Format: {{analysis}}"
enrichment: true
`
	if err := os.WriteFile(filepath.Join(dir, "custom.yml"), []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	tc := NewTemplateCache(dir)
	if err := tc.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	template, err := tc.GetTemplate("custom")
	if err != nil {
		t.Fatalf("Expected custom template loaded, got %v", err)
	}
	if template.Name != "custom" {
		t.Errorf("Expected name derived from filename, got %q", template.Name)
	}
	if template.Subject != "Custom digest" {
		t.Errorf("Expected override subject, got %q", template.Subject)
	}
	if !template.Enrichment {
		t.Error("Expected enrichment enabled")
	}

	// Fields the override omits fall back to the default variant's.
	defaults := builtinTemplates()[DefaultTemplateName]
	if template.QueryPrompt != defaults.QueryPrompt {
		t.Error("Expected query prompt fallback to default variant")
	}
	if template.CSS != defaults.CSS {
		t.Error("Expected CSS fallback to default variant")
	}

	if tc.GetTemplateCount() != 4 {
		t.Errorf("Expected 3 builtins plus override, got %d", tc.GetTemplateCount())
	}
}

func TestTemplateCacheRejectsIncompleteOverride(t *testing.T) {
	dir := t.TempDir()

	// No analysis_prompt, which has no fallback.
	override := `subject: "Broken"
format_prompt: "Format: {{analysis}}"
`
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	tc := NewTemplateCache(dir)
	if err := tc.Run(); err == nil {
		t.Error("Expected error for override without analysis prompt")
	}
}
