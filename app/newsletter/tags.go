package newsletter

import (
	"fmt"
	"regexp"
	"strings"
)

// extractTags pulls <tag1>..</tag1> .. <tagN>..</tagN> values out of an
// LLM response. This is the only structure ever imposed on completion
// output; missing tags are simply absent from the result.
func extractTags(text, tag string, max int) []string {
	var values []string

	for i := 1; i <= max; i++ {
		name := fmt.Sprintf("%s%d", tag, i)
		re := regexp.MustCompile(`(?s)<` + name + `>(.*?)</` + name + `>`)

		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		value := strings.TrimSpace(match[1])
		if value != "" {
			values = append(values, value)
		}
	}

	return values
}

// stripCodeFence removes a wrapping markdown code fence, which completion
// models frequently add around document output.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}

	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// renderPrompt substitutes {{placeholder}} values into a prompt template.
func renderPrompt(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for key, value := range values {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
